package textutil

import (
	"strconv"
	"strings"
)

// FormatTokens produces the canonical "k1@@::@@v1,k2@@::@@v2,..." encoding
// of a token bag. Pairs are emitted in the bag's first-seen order: one
// order must be fixed so the hash over this string is reproducible, and
// first-seen order is the one this build freezes.
func FormatTokens(bag *TokenBag) string {
	var b strings.Builder
	first := true
	bag.Each(func(token string, count int) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(token)
		b.WriteString("@@::@@")
		b.WriteString(strconv.Itoa(count))
	})
	return b.String()
}

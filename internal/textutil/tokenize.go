package textutil

import (
	"strings"

	"github.com/sourcerercc/tokenpipe/internal/langprofile"
)

// TokenBag is an ordered multiset of token occurrences. Order is the order
// in which each distinct key was first seen -- this is the deterministic
// order FormatTokens freezes into the canonical serialization.
type TokenBag struct {
	order  []string
	counts map[string]int
}

// NewTokenBag returns an empty bag ready for Add.
func NewTokenBag() *TokenBag {
	return &TokenBag{counts: make(map[string]int)}
}

// Add records one occurrence of token.
func (b *TokenBag) Add(token string) {
	if _, seen := b.counts[token]; !seen {
		b.order = append(b.order, token)
	}
	b.counts[token]++
}

// Len returns the number of distinct tokens (unique_tokens).
func (b *TokenBag) Len() int { return len(b.order) }

// Total returns the sum of all occurrence counts (total_tokens).
func (b *TokenBag) Total() int {
	total := 0
	for _, c := range b.counts {
		total += c
	}
	return total
}

// Each iterates the bag's tokens in first-seen order.
func (b *TokenBag) Each(fn func(token string, count int)) {
	for _, tok := range b.order {
		fn(tok, b.counts[tok])
	}
}

// Tokenize removes every configured separator from s via plain string
// substitution (not regex -- this is deliberate, to match legacy corpora
// whose separator lists are not regex-safe), then splits the result on
// runs of ASCII whitespace to produce the token stream.
func Tokenize(s string, p *langprofile.Profile) (bag *TokenBag, total, unique int) {
	for _, sep := range p.Separators {
		if sep == "" {
			continue
		}
		s = strings.ReplaceAll(s, sep, " ")
	}

	bag = NewTokenBag()
	for _, tok := range strings.FieldsFunc(s, isASCIIWhitespace) {
		bag.Add(tok)
	}
	return bag, bag.Total(), bag.Len()
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

package textutil

import (
	"crypto/md5" //nolint:gosec // required by spec: the corpus wire format is MD5-hex, not a security boundary
	"encoding/hex"
)

// MD5Hex returns the lowercase hex digest of s encoded as UTF-8. The spec
// mandates MD5 for both the file-content hash and the formatted-tokens
// hash, so crypto/md5 is the correct tool here rather than a third-party
// hashing library -- there is no faster or safer substitute that still
// produces the wire-compatible digest downstream tooling expects.
func MD5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

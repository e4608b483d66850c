package textutil

import (
	"strings"

	"github.com/sourcerercc/tokenpipe/internal/langprofile"
)

// StripComments removes block comments, then line comments, from s.
//
// Order is load-bearing: block comments must go first, or a "//" that
// happens to sit inside a "/* ... */" span would truncate the block
// pattern's non-greedy match prematurely.
func StripComments(s string, p *langprofile.Profile) string {
	s = p.BlockPattern.ReplaceAllString(s, "")
	s = p.InlinePattern.ReplaceAllString(s, "")
	return s
}

// LineStats is the (code, lines, LOC, SLOC) tuple produced by LinesStats.
type LineStats struct {
	Code  string
	Lines int
	LOC   int
	SLOC  int
}

// LinesStats computes the physical line count of the raw text, LOC after
// dropping whitespace-only lines, and SLOC after also stripping comments.
// Code is the final, comment-stripped and blank-line dropped text, ready
// for tokenization.
func LinesStats(s string, p *langprofile.Profile) LineStats {
	lines := CountLines(s, true)

	code1 := dropBlankLines(s)
	loc := CountLines(code1, true)

	code2 := StripComments(code1, p)
	code2 = strings.TrimSpace(dropBlankLines(code2))
	sloc := CountLines(code2, false)

	return LineStats{Code: code2, Lines: lines, LOC: loc, SLOC: sloc}
}

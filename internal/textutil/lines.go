// Package textutil implements the language-agnostic text transformations the
// tokenization pipeline is built from: line accounting, comment stripping,
// separator-driven tokenization, canonical bag formatting and content
// hashing. Every function here is pure and allocation-light so it can run
// on the hot path of the archive walker.
package textutil

import "strings"

// CountLines counts physical lines: the base count is the number of '\n'
// bytes in s. If s is non-empty and does not end in a newline, one more
// line is added for its trailing partial line. A bare "" reports 0 lines
// under either mode; countEmpty does not change the result.
func CountLines(s string, countEmpty bool) int {
	result := strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		result++
	}
	return result
}

// dropBlankLines joins the non-blank lines of s with "\n", mirroring the
// original implementation's use of splitlines(keepends) plus a strip()
// filter: a line is blank if it is empty after trimming whitespace.
func dropBlankLines(s string) string {
	lines := splitKeepingStructure(s)
	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// splitKeepingStructure splits s on "\n" the way Python's str.splitlines
// does for our purposes: no trailing empty element is produced for a
// string that ends in "\n", matching CountLines' treatment of that edge.
func splitKeepingStructure(s string) []string {
	if s == "" {
		return nil
	}
	trimmedTrailingNewline := strings.HasSuffix(s, "\n")
	parts := strings.Split(s, "\n")
	if trimmedTrailingNewline {
		parts = parts[:len(parts)-1]
	}
	return parts
}

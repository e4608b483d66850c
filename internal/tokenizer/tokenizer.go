// Package tokenizer implements the whole-file pipeline: it composes
// internal/langprofile and internal/textutil into the (FileStats,
// TokenRecord) pair every downstream sink writes out, regardless of
// whether the caller is processing an entire file or one extracted
// block's body text.
package tokenizer

import (
	"github.com/sourcerercc/tokenpipe/internal/langprofile"
	"github.com/sourcerercc/tokenpipe/internal/model"
	"github.com/sourcerercc/tokenpipe/internal/textutil"
)

// Result bundles everything one pipeline pass over a piece of text
// produces.
type Result struct {
	Stats  model.FileStats
	Tokens model.TokenRecord
}

// Run hashes raw, computes its line statistics, tokenizes the stripped
// code, and hashes the formatted token bag. bytes is the declared
// uncompressed size to carry into the stats record (for a whole file, the
// archive entry's size; for a block, its body length).
func Run(raw string, bytes int64, p *langprofile.Profile) Result {
	fileHash := textutil.MD5Hex(raw)
	lineStats := textutil.LinesStats(raw, p)
	bag, total, unique := textutil.Tokenize(lineStats.Code, p)
	formatted := textutil.FormatTokens(bag)
	tokenHash := textutil.MD5Hex(formatted)

	return Result{
		Stats: model.FileStats{
			Hash:  fileHash,
			Lines: lineStats.Lines,
			LOC:   lineStats.LOC,
			SLOC:  lineStats.SLOC,
			Bytes: bytes,
		},
		Tokens: model.TokenRecord{
			Total:     total,
			Unique:    unique,
			Hash:      tokenHash,
			Formatted: formatted,
		},
	}
}

// Package blocktokenizer implements the block-level pipeline: per file,
// select the right blockextract.Extractor by extension, then apply the
// file-level tokenizer to every extracted block's body.
package blocktokenizer

import (
	"fmt"

	"github.com/sourcerercc/tokenpipe/internal/blockextract"
	"github.com/sourcerercc/tokenpipe/internal/langprofile"
	"github.com/sourcerercc/tokenpipe/internal/model"
	"github.com/sourcerercc/tokenpipe/internal/tokenizer"
)

// MaxBlocks is the hard per-file block cap: a block id has only five
// decimal digits of room for its relative index.
const MaxBlocks = model.MaxBlocksPerFile

// Outcome is everything the caller needs to turn one file into its
// f-record plus a b-record/tokens-record pair per block.
type Outcome struct {
	Skipped    bool   // true if the file produced no f-record at all
	SkipReason string // set when Skipped
	File       model.FileStats
	Blocks     []BlockOutcome
}

// BlockOutcome is one extracted block, its source range and stats, and its
// tokenization result. The block id is assigned by the caller.
type BlockOutcome struct {
	Block  model.Block
	Stats  model.BlockStats
	Tokens model.TokenRecord
}

// Process runs the block-mode pipeline over one file's raw contents. ext
// is the file's lowercased extension (".java", ".py", ...), used to pick
// the extractor via blockextract.ForExtension.
func Process(raw string, ext string, bytes int64, p *langprofile.Profile) Outcome {
	extractor := blockextract.ForExtension(ext)
	if extractor == nil {
		return Outcome{Skipped: true, SkipReason: fmt.Sprintf("no block extractor for %q", ext)}
	}
	return ProcessWith(raw, extractor, bytes, p)
}

// ProcessWith runs the block-mode pipeline against an explicit extractor,
// bypassing extension dispatch. Exported so tests can exercise the
// skip/cap logic with a stub extractor instead of a real grammar.
func ProcessWith(raw string, extractor blockextract.Extractor, bytes int64, p *langprofile.Profile) Outcome {
	blocks, err := extractor.Extract([]byte(raw))
	if err != nil || blocks == nil {
		return Outcome{Skipped: true, SkipReason: "parse error: no blocks"}
	}
	if len(blocks) > MaxBlocks {
		return Outcome{Skipped: true, SkipReason: fmt.Sprintf("block count %d exceeds cap %d", len(blocks), MaxBlocks)}
	}

	fileHash := tokenizer.Run(raw, bytes, p)

	out := Outcome{
		File:   fileHash.Stats,
		Blocks: make([]BlockOutcome, 0, len(blocks)),
	}
	for _, b := range blocks {
		res := tokenizer.Run(b.Body, int64(len(b.Body)), p)
		out.Blocks = append(out.Blocks, BlockOutcome{
			Block: b,
			Stats: model.BlockStats{
				FileStats: res.Stats,
				StartLine: b.StartLine,
				EndLine:   b.EndLine,
			},
			Tokens: res.Tokens,
		})
	}
	return out
}

// Package blockextract extracts function/method bodies from source files
// for block-level tokenization. Each supported language owns its own
// tree-sitter grammar dependency and implements Extractor; the pipeline
// dispatches on file extension and treats a parse failure as "no blocks"
// rather than a fatal error, mirroring the original tokenizer's per-file
// fault isolation.
package blockextract

import "github.com/sourcerercc/tokenpipe/internal/model"

// Extractor pulls every function/method body out of one file's contents.
// Implementations must not retain content beyond the call.
type Extractor interface {
	// Extract returns one model.Block per function/method found. A file
	// that fails to parse returns (nil, nil): no blocks, not an error.
	Extract(content []byte) ([]model.Block, error)
}

// registry maps a lowercased file extension (including the leading dot) to
// a constructor for the Extractor responsible for it. Each call to
// ForExtension builds a fresh Extractor: a tree-sitter Parser is not safe
// to share across goroutines, and workers must never share mutable state.
var registry = map[string]func() Extractor{}

func register(ext string, newFn func() Extractor) {
	registry[ext] = newFn
}

// ForExtension returns a new Extractor for ext, or nil if block extraction
// isn't supported for that language.
func ForExtension(ext string) Extractor {
	newFn := registry[ext]
	if newFn == nil {
		return nil
	}
	return newFn()
}

func init() {
	register(".java", func() Extractor { return NewJavaExtractor() })
	register(".py", func() Extractor { return NewPythonExtractor() })
}

// Package archivewalker opens one project's ZIP archive, iterates entries
// matching the language profile's configured extensions, decodes them as
// UTF-8, and dispatches each to the whole-file or block-level pipeline
// before writing its records to the worker's sink.
package archivewalker

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sourcerercc/tokenpipe/internal/blocktokenizer"
	"github.com/sourcerercc/tokenpipe/internal/debug"
	pipelineerrors "github.com/sourcerercc/tokenpipe/internal/errors"
	"github.com/sourcerercc/tokenpipe/internal/idalloc"
	"github.com/sourcerercc/tokenpipe/internal/langprofile"
	"github.com/sourcerercc/tokenpipe/internal/model"
	"github.com/sourcerercc/tokenpipe/internal/sink"
	"github.com/sourcerercc/tokenpipe/internal/tokenizer"
)

// Mode selects the whole-file pipeline or the block-level pipeline. A
// worker runs in exactly one mode for its entire invocation; the original
// tool never mixes modes within one run.
type Mode int

const (
	FileMode Mode = iota
	BlockMode
)

// Walk processes one project's archive end to end: it writes the
// project's bookkeeping record, then every matching entry's stats/tokens
// records, allocating a fresh model.FileID per entry from alloc.
//
// A malformed archive is reported as an error and the whole project is
// abandoned; per-entry failures are logged and the entry is skipped, with
// the rest of the archive continuing.
func Walk(projectID model.ProjectID, archivePath string, displayProjID model.DisplayProjectID, mode Mode, profile *langprofile.Profile, alloc *idalloc.Allocator, s *sink.Sink) error {
	if err := s.WriteProject(displayProjID, archivePath); err != nil {
		debug.LogArchive("failed to write project bookkeeping record for %s: %v", archivePath, err)
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return pipelineerrors.NewArchiveError(projectID, archivePath, err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if !matchesProfile(entry.Name, profile) {
			continue
		}
		processEntry(archivePath, entry, displayProjID, mode, profile, alloc, s)
	}
	return nil
}

// matchesProfile reports whether entryName's extension belongs to the
// profile, matched with doublestar glob patterns ("*.ext") rather than a
// bare suffix comparison -- the same "glob every candidate path" shape the
// teacher uses for its own include/exclude filtering.
func matchesProfile(entryName string, profile *langprofile.Profile) bool {
	base := path.Base(entryName)
	for ext := range profile.Extensions {
		pattern := "*" + ext
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func processEntry(archivePath string, entry *zip.File, displayProjID model.DisplayProjectID, mode Mode, profile *langprofile.Profile, alloc *idalloc.Allocator, s *sink.Sink) {
	rc, err := entry.Open()
	if err != nil {
		debug.LogArchive("%v", pipelineerrors.NewEntryError("open", entry.Name, err))
		return
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		debug.LogArchive("%v", pipelineerrors.NewEntryError("read", entry.Name, err))
		return
	}

	if !utf8.Valid(raw) {
		debug.LogArchive("%v", pipelineerrors.NewEntryError("decode", entry.Name, fmt.Errorf("invalid UTF-8")))
		return
	}
	text := string(raw)

	fileID := alloc.Next()
	fullPath := archivePath + "/" + entry.Name
	ext := strings.ToLower(path.Ext(entry.Name))
	bytesSize := int64(entry.UncompressedSize64)

	switch mode {
	case FileMode:
		writeWholeFile(s, displayProjID, fileID, fullPath, text, bytesSize, profile)
	case BlockMode:
		writeBlocks(s, displayProjID, fileID, fullPath, ext, text, bytesSize, profile)
	}
}

func writeWholeFile(s *sink.Sink, displayProjID model.DisplayProjectID, fileID model.FileID, fullPath, text string, bytesSize int64, profile *langprofile.Profile) {
	result := tokenizer.Run(text, bytesSize, profile)
	if err := s.WriteFileStatsWhole(displayProjID, fileID, fullPath, result.Stats); err != nil {
		debug.LogArchive("writer failure for %s: %v", fullPath, err)
	}
	if err := s.WriteTokensWhole(displayProjID, fileID, result.Tokens); err != nil {
		debug.LogArchive("writer failure for %s: %v", fullPath, err)
	}
}

func writeBlocks(s *sink.Sink, displayProjID model.DisplayProjectID, fileID model.FileID, fullPath, ext, text string, bytesSize int64, profile *langprofile.Profile) {
	outcome := blocktokenizer.Process(text, ext, bytesSize, profile)
	if outcome.Skipped {
		debug.LogArchive("skipping %s: %s", fullPath, outcome.SkipReason)
		return
	}

	if err := s.WriteFileRecord(displayProjID, fileID, fullPath, outcome.File); err != nil {
		debug.LogArchive("writer failure for %s: %v", fullPath, err)
	}

	for k, block := range outcome.Blocks {
		blockID := model.NewBlockID(fileID, k)
		if err := s.WriteBlockRecord(displayProjID, blockID, block.Stats); err != nil {
			debug.LogArchive("writer failure for block %d of %s: %v", k, fullPath, err)
		}
		if err := s.WriteTokensBlock(displayProjID, blockID, block.Block.QualifiedName, block.Tokens); err != nil {
			debug.LogArchive("writer failure for block %d of %s: %v", k, fullPath, err)
		}
	}
}

// Package sink implements the three append-only sidecar streams the
// pipeline emits per worker: bookkeeping (.projs), stats (.stats), and
// tokens (.tokens). Each stream is a single comma-separated line per
// record; free-text fields are quoted with double quotes and the writer
// performs no escaping of embedded quotes or newlines, matching the
// original corpus format's documented limitation.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourcerercc/tokenpipe/internal/model"
)

// Sink owns one worker slot's three output streams, opened in append
// mode so re-running against a freshly bootstrapped output directory
// starts empty.
type Sink struct {
	tokensFile io.Closer
	statsFile  io.Closer
	projsFile  io.Closer

	tokens *bufio.Writer
	stats  *bufio.Writer
	projs  *bufio.Writer
}

// Open creates (or appends to) the three streams for worker slot at the
// given directories: files-tokens-{slot}.tokens, files-stats-{slot}.stats,
// bookkeeping-proj-{slot}.projs.
func Open(tokensDir, statsDir, bookkeepingDir string, slot int) (*Sink, error) {
	tokensPath := filepath.Join(tokensDir, fmt.Sprintf("files-tokens-%d.tokens", slot))
	statsPath := filepath.Join(statsDir, fmt.Sprintf("files-stats-%d.stats", slot))
	projsPath := filepath.Join(bookkeepingDir, fmt.Sprintf("bookkeeping-proj-%d.projs", slot))

	tokensFile, err := openAppend(tokensPath)
	if err != nil {
		return nil, err
	}
	statsFile, err := openAppend(statsPath)
	if err != nil {
		tokensFile.Close()
		return nil, err
	}
	projsFile, err := openAppend(projsPath)
	if err != nil {
		tokensFile.Close()
		statsFile.Close()
		return nil, err
	}

	return &Sink{
		tokensFile: tokensFile,
		statsFile:  statsFile,
		projsFile:  projsFile,
		tokens:     bufio.NewWriter(tokensFile),
		stats:      bufio.NewWriter(statsFile),
		projs:      bufio.NewWriter(projsFile),
	}, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// Close flushes and closes all three streams. It collects, rather than
// short-circuits on, the first close failure so every stream gets a
// chance to flush.
func (s *Sink) Close() error {
	var firstErr error
	for _, w := range []*bufio.Writer{s.tokens, s.stats, s.projs} {
		if err := w.Flush(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, c := range []io.Closer{s.tokensFile, s.statsFile, s.projsFile} {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// quote wraps s in double quotes without escaping; callers (the archive
// walker) are responsible for ensuring paths and hashes never contain a
// literal '"' or newline.
func quote(s string) string {
	return `"` + s + `"`
}

// WriteProject appends one bookkeeping record: {display_proj_id},"{archive_path}".
func (s *Sink) WriteProject(displayProjID model.DisplayProjectID, archivePath string) error {
	_, err := fmt.Fprintf(s.projs, "%s,%s\n", displayProjID, quote(archivePath))
	return err
}

// WriteFileStatsWhole appends a whole-file-mode stats record:
// {display_proj_id},{file_id},"{full_path}","{file_hash}",{bytes},{lines},{LOC},{SLOC}
func (s *Sink) WriteFileStatsWhole(displayProjID model.DisplayProjectID, fileID model.FileID, fullPath string, st model.FileStats) error {
	_, err := fmt.Fprintf(s.stats, "%s,%d,%s,%s,%d,%d,%d,%d\n",
		displayProjID, fileID, quote(fullPath), quote(st.Hash), st.Bytes, st.Lines, st.LOC, st.SLOC)
	return err
}

// WriteFileRecord appends a block-mode f-record:
// f,{display_proj_id},{file_id},"{full_path}","","{file_hash}",{bytes},{lines},{LOC},{SLOC}
func (s *Sink) WriteFileRecord(displayProjID model.DisplayProjectID, fileID model.FileID, fullPath string, st model.FileStats) error {
	_, err := fmt.Fprintf(s.stats, "f,%s,%d,%s,\"\",%s,%d,%d,%d,%d\n",
		displayProjID, fileID, quote(fullPath), quote(st.Hash), st.Bytes, st.Lines, st.LOC, st.SLOC)
	return err
}

// WriteBlockRecord appends a block-mode b-record:
// b,{display_proj_id},{block_id},"{block_hash}",{block_lines},{block_LOC},{block_SLOC},{start_line},{end_line}
func (s *Sink) WriteBlockRecord(displayProjID model.DisplayProjectID, blockID model.BlockID, st model.BlockStats) error {
	_, err := fmt.Fprintf(s.stats, "b,%s,%d,%s,%d,%d,%d,%d,%d\n",
		displayProjID, blockID, quote(st.Hash), st.Lines, st.LOC, st.SLOC, st.StartLine, st.EndLine)
	return err
}

// WriteTokensWhole appends a whole-file-mode tokens record:
// {display_proj_id},{file_id},{total},{unique},{token_hash}@#@{formatted}
func (s *Sink) WriteTokensWhole(displayProjID model.DisplayProjectID, fileID model.FileID, rec model.TokenRecord) error {
	_, err := fmt.Fprintf(s.tokens, "%s,%d,%d,%d,%s@#@%s\n",
		displayProjID, fileID, rec.Total, rec.Unique, rec.Hash, rec.Formatted)
	return err
}

// WriteTokensBlock appends a block-mode tokens record:
// {display_proj_id},{block_id},{total},{unique},{qualified_name_with_commas_replaced_by_semicolons},{token_hash}@#@{formatted}
func (s *Sink) WriteTokensBlock(displayProjID model.DisplayProjectID, blockID model.BlockID, qualifiedName string, rec model.TokenRecord) error {
	safeName := strings.ReplaceAll(qualifiedName, ",", ";")
	_, err := fmt.Fprintf(s.tokens, "%s,%d,%d,%d,%s,%s@#@%s\n",
		displayProjID, blockID, rec.Total, rec.Unique, safeName, rec.Hash, rec.Formatted)
	return err
}

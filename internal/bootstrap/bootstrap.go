// Package bootstrap resolves and validates the three output directories
// before a run starts: it refuses to run if any of them already exists,
// so a re-run never silently appends to stale data.
package bootstrap

import (
	"fmt"
	"os"

	pipelineerrors "github.com/sourcerercc/tokenpipe/internal/errors"
)

// Layout is the resolved, not-yet-created set of output directories for
// one run.
type Layout struct {
	StatsDir       string
	BookkeepingDir string
	TokensDir      string
}

// Prepare refuses to run if any directory in layout already exists, then
// creates all three. This is the only place a stale output directory can
// be rejected -- once Prepare returns successfully, every worker's Open
// append-mode call is guaranteed to start from an empty file.
func Prepare(layout Layout) error {
	dirs := []string{layout.StatsDir, layout.BookkeepingDir, layout.TokensDir}
	for _, dir := range dirs {
		if exists(dir) {
			return pipelineerrors.NewConfigError("output directory", fmt.Errorf("%s already exists; refusing to overwrite", dir))
		}
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return pipelineerrors.NewConfigError("output directory", err)
		}
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

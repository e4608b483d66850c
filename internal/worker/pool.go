// Package worker implements the parent/worker fan-out pool: a fixed
// number of worker slots, each with its own persistent base_file_id,
// dispatched batches of projects at a time through a bounded return
// queue.
//
// The original tool fans out over OS processes. This implementation fans
// out over goroutines instead -- each batch's goroutine opens its own
// sink and its own idalloc.Allocator and touches no state any other
// goroutine touches, which is the isolation boundary an OS process would
// otherwise provide: workers share no mutable state, so goroutines are
// safe here even though the grammar parsers underneath
// (internal/blockextract) are not safe to share across them -- each
// archivewalker.Walk call builds its own fresh parser instances rather
// than reusing one.
//
// Goroutine lifecycle is tracked with golang.org/x/sync/errgroup rather
// than a bare sync.WaitGroup: a plain errgroup.Group (no WithContext)
// never cancels sibling goroutines on error, so a crash in one worker
// only loses that worker's in-flight batch rather than the whole run,
// while still giving Run a single error to return.
package worker

import (
	"golang.org/x/sync/errgroup"

	"github.com/sourcerercc/tokenpipe/internal/archivewalker"
	"github.com/sourcerercc/tokenpipe/internal/debug"
	pipelineerrors "github.com/sourcerercc/tokenpipe/internal/errors"
	"github.com/sourcerercc/tokenpipe/internal/idalloc"
	"github.com/sourcerercc/tokenpipe/internal/langprofile"
	"github.com/sourcerercc/tokenpipe/internal/projectlist"
	"github.com/sourcerercc/tokenpipe/internal/sink"
)

// Config parameterizes one pool run: worker count, batch size, the
// compiled language profile, the three output directories, and the two
// config-file values that seed id generation (the config file's "Config"
// section).
type Config struct {
	NProcesses     int
	ProjectsBatch  int
	Mode           archivewalker.Mode
	Profile        *langprofile.Profile
	TokensDir      string
	StatsDir       string
	BookkeepingDir string
	InitFileID     int64
	ProjFlag       int64
}

// completion is the (worker_ordinal, files_processed_in_last_batch)
// message a worker goroutine posts back to the parent on exit.
type completion struct {
	slot      int
	processed int64
}

// Run drives the dispatch loop over projects to completion. It returns the
// first error any worker slot hit with a catastrophic failure (e.g. its
// sink could not be opened); per-project and per-entry failures are
// logged and skipped internally and never surface here.
func Run(projects []projectlist.Project, cfg Config) error {
	queue := make(chan completion, cfg.NProcesses)
	for i := 0; i < cfg.NProcesses; i++ {
		queue <- completion{slot: i, processed: 0}
	}

	baseFileID := make([]int64, cfg.NProcesses)
	for i := range baseFileID {
		baseFileID[i] = cfg.InitFileID
	}
	busy := make([]bool, cfg.NProcesses)

	var g errgroup.Group

	remaining := projects
	activeSlots := 0

	for len(remaining) > 0 || activeSlots > 0 {
		msg := <-queue
		baseFileID[msg.slot] += msg.processed
		if busy[msg.slot] {
			busy[msg.slot] = false
			activeSlots--
		}

		if len(remaining) == 0 {
			continue
		}

		batchSize := cfg.ProjectsBatch
		if batchSize > len(remaining) {
			batchSize = len(remaining)
		}
		batch := remaining[:batchSize]
		remaining = remaining[batchSize:]

		slot := msg.slot
		base := baseFileID[slot]
		busy[slot] = true
		activeSlots++

		g.Go(func() error {
			processed, err := runWorker(slot, base, batch, cfg)
			queue <- completion{slot: slot, processed: processed}
			return err
		})
	}

	return g.Wait()
}

// runWorker is one worker slot's invocation: it opens its own
// append-mode sink, processes its assigned batch sequentially with a
// fresh id allocator seeded at base, and reports how many files it
// processed so the parent can grow the slot's base_file_id for next time.
func runWorker(slot int, base int64, batch []projectlist.Project, cfg Config) (int64, error) {
	debug.LogWorker(slot, "starting batch of %d projects, base_file_id=%d", len(batch), base)

	s, err := sink.Open(cfg.TokensDir, cfg.StatsDir, cfg.BookkeepingDir, slot)
	if err != nil {
		return 0, pipelineerrors.NewWriterError("open", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			debug.LogWorker(slot, "sink close failed: %v", cerr)
		}
	}()

	alloc := idalloc.New(int64(slot), base)

	for _, proj := range batch {
		displayID := projectlist.DisplayID(cfg.ProjFlag, proj)
		if err := archivewalker.Walk(proj.ID, proj.ArchivePath, displayID, cfg.Mode, cfg.Profile, alloc, s); err != nil {
			debug.LogWorker(slot, "abandoning project %d (%s): %v", proj.ID, proj.ArchivePath, err)
		}
	}

	debug.LogWorker(slot, "finished batch, processed %d files", alloc.FilesProcessed())
	return alloc.FilesProcessed(), nil
}

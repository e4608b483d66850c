// Package idalloc assigns the globally unique file identifiers the
// pipeline emits (block ids are derived from them by model.NewBlockID). Each worker owns one Allocator; workers never share
// state, which is what keeps their id ranges disjoint.
package idalloc

import "github.com/sourcerercc/tokenpipe/internal/model"

// Multiplier is the per-worker id range width: it must exceed the
// largest plausible per-worker file count so that ranges assigned to
// different workers never overlap.
const Multiplier = 50_000_000

// Allocator hands out FileIDs for one worker. BaseFileID is the running
// total of files this worker has processed across all batches it has been
// given so far; Counter resets to zero at the start of each worker
// invocation and increments on every file processed within that
// invocation.
type Allocator struct {
	WorkerOrdinal int64
	BaseFileID    int64
	Counter       int64
}

// New returns an Allocator for the given worker slot, seeded with the
// slot's running base file id.
func New(workerOrdinal, baseFileID int64) *Allocator {
	return &Allocator{WorkerOrdinal: workerOrdinal, BaseFileID: baseFileID}
}

// Next returns the next FileID and advances the per-invocation counter.
func (a *Allocator) Next() model.FileID {
	id := a.WorkerOrdinal*Multiplier + a.BaseFileID + a.Counter
	a.Counter++
	return model.FileID(id)
}

// FilesProcessed is the count to report back to the parent so it can grow
// this worker's BaseFileID for the next batch.
func (a *Allocator) FilesProcessed() int64 {
	return a.Counter
}

// Package errors defines the typed error hierarchy the pipeline uses to
// distinguish fatal startup failures from per-entry conditions that are
// logged and skipped.
package errors

import (
	"fmt"
	"time"

	"github.com/sourcerercc/tokenpipe/internal/model"
)

// ErrorType classifies an error for logging.
type ErrorType string

const (
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeArchive  ErrorType = "archive"
	ErrorTypeEntry    ErrorType = "entry"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeWriter   ErrorType = "writer"
	ErrorTypeInternal ErrorType = "internal"
)

// ConfigError reports a fatal problem with the configuration file itself:
// missing or unreadable configuration is always fatal on startup.
type ConfigError struct {
	Field      string
	Underlying error
	Timestamp  time.Time
}

func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Underlying: err, Timestamp: time.Now()}
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %v", e.Underlying)
	}
	return fmt.Sprintf("config error for field %s: %v", e.Field, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// ArchiveError reports a problem opening or reading a project's archive as
// a whole (missing file, malformed ZIP). The owning project is abandoned;
// other projects continue.
type ArchiveError struct {
	ProjectID  model.ProjectID
	Path       string
	Underlying error
	Timestamp  time.Time
}

func NewArchiveError(projectID model.ProjectID, path string, err error) *ArchiveError {
	return &ArchiveError{ProjectID: projectID, Path: path, Underlying: err, Timestamp: time.Now()}
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive error for project %d (%s): %v", e.ProjectID, e.Path, e.Underlying)
}

func (e *ArchiveError) Unwrap() error { return e.Underlying }

// EntryError reports a problem with one archive entry: open/read failure
// or UTF-8 decode failure. The entry is skipped; other entries continue.
type EntryError struct {
	EntryPath  string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

func NewEntryError(op, entryPath string, err error) *EntryError {
	return &EntryError{Operation: op, EntryPath: entryPath, Underlying: err, Timestamp: time.Now()}
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %s failed for %s: %v", e.Operation, e.EntryPath, e.Underlying)
}

func (e *EntryError) Unwrap() error { return e.Underlying }

// ParseError reports a block-extractor failure (grammar parse error or
// stack overflow during tree walk). The file is skipped at block mode;
// no f-record is emitted for it.
type ParseError struct {
	EntryPath  string
	Language   string
	Underlying error
	Timestamp  time.Time
}

func NewParseError(language, entryPath string, err error) *ParseError {
	return &ParseError{Language: language, EntryPath: entryPath, Underlying: err, Timestamp: time.Now()}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parse error for %s: %v", e.Language, e.EntryPath, e.Underlying)
}

func (e *ParseError) Unwrap() error { return e.Underlying }

// WriterError reports a failure appending a record to a sidecar stream.
// The record is dropped and the pipeline continues with the next one --
// there is no retry and no rollback.
type WriterError struct {
	Stream     string
	Underlying error
	Timestamp  time.Time
}

func NewWriterError(stream string, err error) *WriterError {
	return &WriterError{Stream: stream, Underlying: err, Timestamp: time.Now()}
}

func (e *WriterError) Error() string {
	return fmt.Sprintf("writer error on %s: %v", e.Stream, e.Underlying)
}

func (e *WriterError) Unwrap() error { return e.Underlying }

// MultiError aggregates independent failures (e.g. the entry errors
// accumulated while walking one archive) without forcing the caller to
// pick just one to report.
type MultiError struct {
	Errors []error
}

func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
	}
}

func (e *MultiError) Unwrap() []error { return e.Errors }

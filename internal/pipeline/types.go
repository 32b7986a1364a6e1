// Package pipeline describes per-file progress events of a formatting run.
package pipeline

import "time"

// Stage describes a step of processing one file.
type Stage string

const (
	// StageRead is loading the file from disk.
	StageRead Stage = "read"
	// StageParse is tokenizing and parsing the file.
	StageParse Stage = "parse"
	// StageNormalize is rewriting the extracted docstrings.
	StageNormalize Stage = "normalize"
	// StageWrite is writing the result back.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is currently processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file is finished and unchanged.
	StatusDone Status = "done"
	// StatusChanged indicates the file is finished and was (or would be) rewritten.
	StatusChanged Status = "changed"
	// StatusCached indicates the file was skipped as known clean.
	StatusCached Status = "cached"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Finished reports whether s is a terminal status.
func (s Status) Finished() bool {
	switch s {
	case StatusDone, StatusChanged, StatusCached, StatusError:
		return true
	}
	return false
}

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; FormatPaths calls OnEvent from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

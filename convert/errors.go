package convert

import "errors"

var (
	// ErrAborted is returned when the operator does not confirm the run.
	ErrAborted = errors.New("aborted by operator")

	// Pre-check failures. Nothing has been discovered or touched yet.
	ErrNoPermission    = errors.New("no write permission on input folder")
	ErrPoolUnreachable = errors.New("worker pool unreachable")

	// ErrPartialFailure means the run finished but at least one file failed.
	ErrPartialFailure = errors.New("one or more files failed")

	// ErrInArchive is returned for a source that already sits at its own
	// archive destination.
	ErrInArchive = errors.New("source is already in the archive")

	// ErrNoPool is returned when the parallel strategy has no pool attached.
	ErrNoPool = errors.New("parallel strategy requires a worker pool")
)

package cmd

import (
	"errors"

	"github.com/dendrascience/lazconv/convert"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitAborted    = 2
	ExitPrecheck   = 3
	ExitIncomplete = 4
)

// ExitCode maps the error returned by a command onto a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, convert.ErrAborted):
		return ExitAborted
	case errors.Is(err, convert.ErrNoPermission), errors.Is(err, convert.ErrPoolUnreachable):
		return ExitPrecheck
	case errors.Is(err, convert.ErrPartialFailure):
		return ExitIncomplete
	default:
		return ExitError
	}
}

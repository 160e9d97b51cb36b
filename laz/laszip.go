package laz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Laszip converts through a LAStools-compatible command line binary invoked as
// `<bin> -i <source> -o <target>`. The binary owns all format handling: header
// copy, point records, VLRs.
type Laszip struct {
	Binary string
	log    *zap.Logger
}

// NewLaszip returns a codec that shells out to binary, looked up on PATH when
// it carries no directory component.
func NewLaszip(binary string, log *zap.Logger) *Laszip {
	if log == nil {
		log = zap.NewNop()
	}
	return &Laszip{Binary: binary, log: log.Named("laszip")}
}

// Convert runs the binary for one job. When the binary fails, a target it
// created is removed again so a half-written LAS never looks like a finished
// conversion. A LAS that existed before the call is left alone.
func (l *Laszip) Convert(ctx context.Context, job Job) error {
	if _, err := os.Stat(job.Source); err != nil {
		return &DecodeError{Source: job.Source, Detail: "unreadable source", Err: err}
	}

	_, statErr := os.Stat(job.Target)
	created := errors.Is(statErr, fs.ErrNotExist)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, l.Binary, "-i", job.Source, "-o", job.Target)
	cmd.Stderr = &stderr

	l.log.Debug("Running codec",
		zap.String("binary", l.Binary),
		zap.String("source", job.Source),
		zap.String("target", job.Target),
	)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %s: %w", ErrCodecUnavailable, l.Binary, err)
		}
		if created {
			os.Remove(job.Target)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &DecodeError{Source: job.Source, Detail: strings.TrimSpace(stderr.String()), Err: err}
	}

	info, err := os.Stat(job.Target)
	if err != nil {
		return &DecodeError{Source: job.Source, Detail: "codec produced no output", Err: err}
	}
	if info.Size() == 0 {
		if created {
			os.Remove(job.Target)
		}
		return &DecodeError{Source: job.Source, Detail: "codec produced an empty file"}
	}
	return nil
}

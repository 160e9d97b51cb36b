package laz

import (
	"context"
	"errors"
	"fmt"
)

const (
	// SourceExt is the compressed point-cloud extension searched for.
	SourceExt = ".laz"
	// TargetExt is the extension of decompressed output.
	TargetExt = ".las"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("decode failed")
	// ErrCodecUnavailable means the external codec could not be started.
	ErrCodecUnavailable = errors.New("codec unavailable")
)

// Job is one LAZ file and the LAS path it decompresses to.
type Job struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Codec rewrites a LAZ file as LAS, keeping the header and every point record.
type Codec interface {
	Convert(ctx context.Context, job Job) error
}

// CodecFunc adapts a plain function to Codec.
type CodecFunc func(ctx context.Context, job Job) error

func (f CodecFunc) Convert(ctx context.Context, job Job) error {
	return f(ctx, job)
}

// DecodeError reports a source that the codec could not turn into LAS.
type DecodeError struct {
	Source string
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode %s", e.Source)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

package pool

import (
	"context"

	"github.com/dendrascience/lazconv/laz"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Local runs conversions on goroutines in this process, at most Limit at once.
type Local struct {
	Limit  int
	codec  laz.Codec
	logger *zap.Logger
}

func NewLocal(codec laz.Codec, limit int, logger *zap.Logger) *Local {
	if limit < 1 {
		limit = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Local{Limit: limit, codec: codec, logger: logger.Named("local")}
}

func (l *Local) Connect(context.Context) error { return nil }

func (l *Local) Close() error { return nil }

// ConvertAll never returns early on a failed job; every job gets its own
// result slot.
func (l *Local) ConvertAll(ctx context.Context, jobs []laz.Job) []error {
	errs := make([]error, len(jobs))
	var g errgroup.Group
	g.SetLimit(l.Limit)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = l.codec.Convert(ctx, job)
			if errs[i] != nil {
				l.logger.Warn("Conversion failed", zap.String("source", job.Source), zap.Error(errs[i]))
			}
			return nil
		})
	}
	g.Wait()
	return errs
}

package pool

import (
	"context"
	"errors"
	"fmt"

	"github.com/dendrascience/lazconv/internal/config"
	"github.com/dendrascience/lazconv/laz"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ConvertHandler runs the codec for laz:convert tasks.
type ConvertHandler struct {
	codec  laz.Codec
	logger *zap.Logger
}

func NewConvertHandler(codec laz.Codec, logger *zap.Logger) *ConvertHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConvertHandler{codec: codec, logger: logger}
}

// ProcessTask implements asynq.Handler. Bad payloads and undecodable sources
// skip retries since another attempt cannot succeed.
func (h *ConvertHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	job, err := ParseConvertTask(t)
	if err != nil {
		h.logger.Error("Failed to parse task",
			zap.Error(err),
			zap.ByteString("payload", t.Payload()),
		)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	h.logger.Info("Processing conversion", zap.String("source", job.Source))

	if err := h.codec.Convert(ctx, job); err != nil {
		h.logger.Error("Conversion failed",
			zap.String("source", job.Source),
			zap.Error(err),
		)
		if errors.Is(err, laz.ErrDecode) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	h.logger.Info("Conversion finished",
		zap.String("source", job.Source),
		zap.String("target", job.Target),
	)
	return nil
}

// Consumer is the worker side of the pool.
type Consumer struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewConsumer creates a consumer serving the configured queue.
func NewConsumer(rcfg config.RedisConfig, qcfg config.QueueConfig, codec laz.Codec, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     rcfg.Addr(),
			Password: rcfg.Password,
			DB:       rcfg.DB,
		},
		asynq.Config{
			Concurrency: qcfg.Concurrency,
			Queues: map[string]int{
				qcfg.Name: 1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	consumer := &Consumer{
		server: server,
		mux:    asynq.NewServeMux(),
		logger: logger,
	}
	consumer.mux.Handle(TypeConvert, NewConvertHandler(codec, logger.Named("convert")))
	return consumer
}

// Start begins processing tasks in the background.
func (c *Consumer) Start() error {
	c.logger.Info("Starting task consumer")
	return c.server.Start(c.mux)
}

// Stop stops pulling new tasks and waits for active ones to finish.
func (c *Consumer) Stop() {
	c.logger.Info("Stopping task consumer")
	c.server.Stop()
	c.server.Shutdown()
}

// asynqLogger adapts zap to asynq.Logger.
type asynqLogger struct {
	logger *zap.Logger
}

func newAsynqLogger(logger *zap.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.Named("asynq")}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Fatal(fmt.Sprint(args...))
}

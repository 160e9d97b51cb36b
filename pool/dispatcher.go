package pool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dendrascience/lazconv/internal/config"
	"github.com/dendrascience/lazconv/laz"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrTaskFailed is returned for a conversion the worker pool gave up on.
var ErrTaskFailed = errors.New("conversion task failed")

// Dispatcher submits conversions to the asynq worker pool and waits for them.
type Dispatcher struct {
	redisOpt asynq.RedisClientOpt
	queue    config.QueueConfig

	rdb       *redis.Client
	client    *asynq.Client
	inspector *asynq.Inspector
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher. No connection is made until Connect.
func NewDispatcher(rcfg config.RedisConfig, qcfg config.QueueConfig, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		redisOpt: asynq.RedisClientOpt{
			Addr:     rcfg.Addr(),
			Password: rcfg.Password,
			DB:       rcfg.DB,
		},
		queue:  qcfg,
		logger: logger.Named("dispatcher"),
	}
}

// Connect pings the broker and opens the asynq client and inspector.
func (d *Dispatcher) Connect(ctx context.Context) error {
	d.rdb = redis.NewClient(&redis.Options{
		Addr:     d.redisOpt.Addr,
		Password: d.redisOpt.Password,
		DB:       d.redisOpt.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.rdb.Ping(pingCtx).Err(); err != nil {
		d.rdb.Close()
		d.rdb = nil
		return fmt.Errorf("ping %s: %w", d.redisOpt.Addr, err)
	}

	d.client = asynq.NewClient(d.redisOpt)
	d.inspector = asynq.NewInspector(d.redisOpt)
	d.logger.Info("Connected to worker pool",
		zap.String("addr", d.redisOpt.Addr),
		zap.String("queue", d.queue.Name),
	)
	return nil
}

// Close releases every connection opened by Connect.
func (d *Dispatcher) Close() error {
	var errs []error
	if d.client != nil {
		errs = append(errs, d.client.Close())
	}
	if d.inspector != nil {
		errs = append(errs, d.inspector.Close())
	}
	if d.rdb != nil {
		errs = append(errs, d.rdb.Close())
	}
	return errors.Join(errs...)
}

// ConvertAll enqueues one task per job, then polls until every task is
// completed or archived. There is no per-task deadline; only ctx ends the
// wait early.
func (d *Dispatcher) ConvertAll(ctx context.Context, jobs []laz.Job) []error {
	errs := make([]error, len(jobs))
	if d.client == nil || d.inspector == nil {
		for i := range errs {
			errs[i] = errors.New("dispatcher is not connected")
		}
		return errs
	}

	pending := make(map[int]string, len(jobs))
	for i, job := range jobs {
		id, err := d.enqueue(ctx, job)
		if err != nil {
			errs[i] = err
			d.logger.Warn("Failed to enqueue conversion", zap.String("source", job.Source), zap.Error(err))
			continue
		}
		pending[i] = id
	}
	d.logger.Info("Conversions enqueued", zap.Int("submitted", len(pending)), zap.Int("jobs", len(jobs)))

	ticker := time.NewTicker(d.queue.PollInterval)
	defer ticker.Stop()

	for len(pending) > 0 {
		for i, id := range pending {
			done, err := d.settled(id)
			if !done {
				continue
			}
			errs[i] = err
			delete(pending, i)
			if err != nil {
				d.logger.Warn("Conversion failed on worker", zap.String("source", jobs[i].Source), zap.Error(err))
			} else {
				d.logger.Debug("Conversion finished on worker", zap.String("source", jobs[i].Source))
			}
		}
		if len(pending) == 0 {
			break
		}

		select {
		case <-ctx.Done():
			for i := range pending {
				errs[i] = ctx.Err()
			}
			return errs
		case <-ticker.C:
		}
	}
	return errs
}

func (d *Dispatcher) enqueue(ctx context.Context, job laz.Job) (string, error) {
	id := uuid.NewString()
	task, err := NewConvertTask(job,
		asynq.TaskID(id),
		asynq.Queue(d.queue.Name),
		asynq.MaxRetry(d.queue.MaxRetry),
		asynq.Retention(d.queue.Retention),
	)
	if err != nil {
		return "", err
	}
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		return "", fmt.Errorf("failed to enqueue task: %w", err)
	}
	return id, nil
}

// settled reports whether task id has reached a final state and, if so, its
// result. Broker errors other than a missing task are treated as transient.
func (d *Dispatcher) settled(id string) (bool, error) {
	info, err := d.inspector.GetTaskInfo(d.queue.Name, id)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) {
			return true, fmt.Errorf("%w: task %s disappeared from queue %s", ErrTaskFailed, id, d.queue.Name)
		}
		d.logger.Debug("Task state lookup failed, retrying", zap.String("task_id", id), zap.Error(err))
		return false, nil
	}
	return taskOutcome(info.State, info.LastErr)
}

// taskOutcome maps an asynq task state onto a final result.
func taskOutcome(state asynq.TaskState, lastErr string) (bool, error) {
	switch state {
	case asynq.TaskStateCompleted:
		return true, nil
	case asynq.TaskStateArchived:
		if lastErr == "" {
			lastErr = "archived without error message"
		}
		return true, fmt.Errorf("%w: %s", ErrTaskFailed, lastErr)
	default:
		return false, nil
	}
}

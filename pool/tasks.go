package pool

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dendrascience/lazconv/laz"
	"github.com/hibiken/asynq"
)

// Task types
const (
	TypeConvert = "laz:convert"
)

var ErrBadPayload = errors.New("invalid conversion payload")

// ConvertPayload is the wire form of a laz.Job.
type ConvertPayload struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewConvertTask wraps job in an asynq task.
func NewConvertTask(job laz.Job, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(ConvertPayload{Source: job.Source, Target: job.Target})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeConvert, payload, opts...), nil
}

// ParseConvertTask recovers the job carried by t.
func ParseConvertTask(t *asynq.Task) (laz.Job, error) {
	if t.Type() != TypeConvert {
		return laz.Job{}, fmt.Errorf("%w: unexpected task type %q", ErrBadPayload, t.Type())
	}
	var p ConvertPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return laz.Job{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	if p.Source == "" || p.Target == "" {
		return laz.Job{}, fmt.Errorf("%w: source and target are required", ErrBadPayload)
	}
	return laz.Job{Source: p.Source, Target: p.Target}, nil
}

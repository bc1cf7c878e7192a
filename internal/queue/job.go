package queue

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/you/orderq/internal/domain"
)

// State is the queue-native lifecycle state of a job, distinct from the
// domain status exposed to callers.
type State string

const (
	StateCreated   State = "created"
	StateQueued    State = "queued"
	StateDeferred  State = "deferred"
	StateScheduled State = "scheduled"
	StateStarted   State = "started"
	StateCanceled  State = "canceled"
	StateFailed    State = "failed"
	StateStopped   State = "stopped"
	StateFinished  State = "finished"
)

var ErrJobNotFound = errors.New("job not found")

// Options controls how a job is enqueued. TTLs bound how long a finished or
// failed job's record stays fetchable.
type Options struct {
	Timeout    time.Duration
	ResultTTL  time.Duration
	FailureTTL time.Duration
	RetryCount int
}

// Job is a snapshot of one queued unit of work. The worker borrows it for
// the duration of execution; the queue owns it otherwise.
type Job struct {
	ID          uuid.UUID
	State       State
	Payload     []byte
	Result      []byte
	EnqueuedAt  time.Time
	StartedAt   time.Time
	EndedAt     time.Time
	Timeout     time.Duration
	ResultTTL   time.Duration
	FailureTTL  time.Duration
	RetriesLeft int
}

// Outcome decodes the job's return payload. A finished job with no payload
// yields nil without error.
func (j *Job) Outcome() (*domain.Outcome, error) {
	if len(j.Result) == 0 {
		return nil, nil
	}
	var out domain.Outcome
	if err := json.Unmarshal(j.Result, &out); err != nil {
		return nil, errors.Wrap(err, "decode job result")
	}
	return &out, nil
}

const (
	fieldStatus      = "status"
	fieldPayload     = "payload"
	fieldResult      = "result"
	fieldEnqueuedAt  = "enqueued_at"
	fieldStartedAt   = "started_at"
	fieldEndedAt     = "ended_at"
	fieldTimeout     = "timeout"
	fieldResultTTL   = "result_ttl"
	fieldFailureTTL  = "failure_ttl"
	fieldRetriesLeft = "retries_left"
)

// jobFromHash rebuilds a Job from its redis hash. Unparseable fields are
// left at their zero value: an unknown state is still surfaced so the
// translator can report the job as invalid instead of dropping it.
func jobFromHash(id uuid.UUID, vals map[string]string) *Job {
	j := &Job{
		ID:      id,
		State:   State(vals[fieldStatus]),
		Payload: []byte(vals[fieldPayload]),
	}
	if v := vals[fieldResult]; v != "" {
		j.Result = []byte(v)
	}
	j.EnqueuedAt = parseTime(vals[fieldEnqueuedAt])
	j.StartedAt = parseTime(vals[fieldStartedAt])
	j.EndedAt = parseTime(vals[fieldEndedAt])
	j.Timeout = parseSeconds(vals[fieldTimeout])
	j.ResultTTL = parseSeconds(vals[fieldResultTTL])
	j.FailureTTL = parseSeconds(vals[fieldFailureTTL])
	if n, err := strconv.Atoi(vals[fieldRetriesLeft]); err == nil {
		j.RetriesLeft = n
	}
	return j
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseSeconds(v string) time.Duration {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Second
}

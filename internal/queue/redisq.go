// Package queue is a redis-backed work queue with per-job state tracking:
// one list per queue carrying job ids, one hash per job carrying lifecycle
// state, payload and result. It is the durable FIFO the order service
// enqueues into and the worker pulls from.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	r "github.com/redis/go-redis/v9"

	"github.com/you/orderq/internal/domain"
)

type RedisQ struct {
	rdb  *r.Client
	name string
}

func New(rdb *r.Client, name string) *RedisQ { return &RedisQ{rdb, name} }

func (q *RedisQ) listKey() string         { return "queue:" + q.name }
func (q *RedisQ) jobKey(id string) string { return "job:" + q.name + ":" + id }

// Enqueue records the job hash and pushes its id onto the queue list in one
// transaction. The payload is stored as JSON; uuids travel as canonical
// strings end to end.
func (q *RedisQ) Enqueue(ctx context.Context, id uuid.UUID, payload any, opts Options) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal job payload")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	pipe := q.rdb.TxPipeline()
	pipe.HSet(ctx, q.jobKey(id.String()), map[string]any{
		fieldStatus:      string(StateQueued),
		fieldPayload:     body,
		fieldEnqueuedAt:  now,
		fieldTimeout:     int(opts.Timeout.Seconds()),
		fieldResultTTL:   int(opts.ResultTTL.Seconds()),
		fieldFailureTTL:  int(opts.FailureTTL.Seconds()),
		fieldRetriesLeft: opts.RetryCount,
	})
	pipe.LPush(ctx, q.listKey(), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "enqueue job")
	}
	return nil
}

// FetchJob returns a snapshot of the job or ErrJobNotFound once its record
// has expired or never existed.
func (q *RedisQ) FetchJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	vals, err := q.rdb.HGetAll(ctx, q.jobKey(id.String())).Result()
	if err != nil {
		return nil, errors.Wrap(err, "fetch job")
	}
	if len(vals) == 0 {
		return nil, ErrJobNotFound
	}
	return jobFromHash(id, vals), nil
}

// Dequeue blocks up to block for the next job id and loads its record.
// A nil job without error means nothing was due (timeout, or the popped id's
// record already expired).
func (q *RedisQ) Dequeue(ctx context.Context, block time.Duration) (*Job, error) {
	res, err := q.rdb.BRPop(ctx, block, q.listKey()).Result()
	if err == r.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "dequeue job")
	}
	if len(res) != 2 {
		return nil, nil
	}
	id, err := uuid.Parse(res[1])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed job id %q", res[1])
	}
	job, err := q.FetchJob(ctx, id)
	if err == ErrJobNotFound {
		return nil, nil
	}
	return job, err
}

// MarkStarted transitions the job to started before the task body runs.
func (q *RedisQ) MarkStarted(ctx context.Context, j *Job) error {
	err := q.rdb.HSet(ctx, q.jobKey(j.ID.String()),
		fieldStatus, string(StateStarted),
		fieldStartedAt, time.Now().UTC().Format(time.RFC3339Nano),
	).Err()
	return errors.Wrap(err, "mark job started")
}

// MarkFinished stores the outcome, transitions to finished and applies the
// result TTL to the job record.
func (q *RedisQ) MarkFinished(ctx context.Context, j *Job, out domain.Outcome) error {
	body, err := json.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "marshal job result")
	}
	key := q.jobKey(j.ID.String())
	pipe := q.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		fieldStatus, string(StateFinished),
		fieldResult, body,
		fieldEndedAt, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if j.ResultTTL > 0 {
		pipe.Expire(ctx, key, j.ResultTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "mark job finished")
	}
	return nil
}

// MarkFailed transitions to failed and applies the failure TTL.
func (q *RedisQ) MarkFailed(ctx context.Context, j *Job) error {
	key := q.jobKey(j.ID.String())
	pipe := q.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		fieldStatus, string(StateFailed),
		fieldEndedAt, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if j.FailureTTL > 0 {
		pipe.Expire(ctx, key, j.FailureTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "mark job failed")
	}
	return nil
}

// Requeue puts a failed job back on the queue with one retry consumed.
func (q *RedisQ) Requeue(ctx context.Context, j *Job) error {
	pipe := q.rdb.TxPipeline()
	pipe.HSet(ctx, q.jobKey(j.ID.String()),
		fieldStatus, string(StateQueued),
		fieldRetriesLeft, j.RetriesLeft-1,
	)
	pipe.LPush(ctx, q.listKey(), j.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "requeue job")
	}
	return nil
}

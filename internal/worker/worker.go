// Package worker runs the sequential job loop. Each worker owns its own
// database pool for its whole run and hands the processor a session per job;
// sessions are never shared across workers.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/processor"
	"github.com/you/orderq/internal/queue"
	"github.com/you/orderq/internal/storage"
)

const (
	dequeueBlock = 5 * time.Second
	errorBackoff = time.Second
	recordGrace  = 5 * time.Second
)

// JobQueue is the slice of the queue client the worker needs.
type JobQueue interface {
	Dequeue(ctx context.Context, block time.Duration) (*queue.Job, error)
	MarkStarted(ctx context.Context, j *queue.Job) error
	MarkFinished(ctx context.Context, j *queue.Job, out domain.Outcome) error
	MarkFailed(ctx context.Context, j *queue.Job) error
	Requeue(ctx context.Context, j *queue.Job) error
}

type Worker struct {
	name string
	q    JobQueue
	proc *processor.Processor
	dsn  string
	log  *zap.Logger
}

func New(q JobQueue, dsn string, log *zap.Logger) *Worker {
	name := workerName()
	return &Worker{
		name: name,
		q:    q,
		proc: processor.New(log),
		dsn:  dsn,
		log:  log.With(zap.String("worker", name)),
	}
}

func workerName() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s.%d.%s", host, os.Getpid(), uuid.NewString()[:8])
}

// Run pulls and executes jobs strictly one at a time until ctx is canceled.
// The database pool is acquired up front, tagged with the worker's name, and
// disposed on every exit path.
func (w *Worker) Run(ctx context.Context) error {
	pool, err := storage.NewWorkerPool(ctx, w.dsn, w.name)
	if err != nil {
		return fmt.Errorf("worker %s: open database pool: %w", w.name, err)
	}
	defer pool.Close()
	store := storage.New(pool)

	w.log.Info("worker started")
	defer w.log.Info("worker stopped")

	for {
		job, err := w.q.Dequeue(ctx, dequeueBlock)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			w.log.Error("dequeue failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(errorBackoff):
			}
			continue
		}
		if job == nil {
			continue
		}
		w.execute(ctx, store, job)
	}
}

func (w *Worker) execute(ctx context.Context, store processor.OrderStore, job *queue.Job) {
	log := w.log.With(zap.String("job_id", job.ID.String()))

	if err := w.q.MarkStarted(ctx, job); err != nil {
		log.Error("failed to mark job started", zap.Error(err))
	}

	var req domain.OrderRequest
	if err := json.Unmarshal(job.Payload, &req); err != nil {
		// corrupted payload: retrying cannot help
		log.Error("undecodable job payload", zap.Error(err))
		w.record(func(rctx context.Context) error { return w.q.MarkFailed(rctx, job) }, log)
		return
	}

	jctx := ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		jctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	out, err := w.proc.Process(jctx, store, job.ID, req)
	if err != nil {
		w.fail(job, err, log)
		return
	}
	log.Info("job finished", zap.String("outcome", string(out.Status)))
	w.record(func(rctx context.Context) error { return w.q.MarkFinished(rctx, job, out) }, log)
}

// fail runs the queue's retry accounting for an infrastructure fault:
// requeue while the retry budget lasts, otherwise the job goes terminal.
func (w *Worker) fail(job *queue.Job, cause error, log *zap.Logger) {
	if job.RetriesLeft > 0 {
		log.Warn("job failed, requeueing",
			zap.Int("retries_left", job.RetriesLeft-1), zap.Error(cause))
		w.record(func(rctx context.Context) error { return w.q.Requeue(rctx, job) }, log)
		return
	}
	log.Error("job failed permanently", zap.Error(cause))
	w.record(func(rctx context.Context) error { return w.q.MarkFailed(rctx, job) }, log)
}

// record writes job state with a detached context so results survive a
// shutdown that cancels the run context mid-job.
func (w *Worker) record(op func(context.Context) error, log *zap.Logger) {
	rctx, cancel := context.WithTimeout(context.Background(), recordGrace)
	defer cancel()
	if err := op(rctx); err != nil {
		log.Error("failed to record job state", zap.Error(err))
	}
}

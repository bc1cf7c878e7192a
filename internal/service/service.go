// Package service is the client-facing order façade: it enqueues order jobs
// without waiting for processing and answers status queries by translating
// queue job state into the domain order status.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/orderq/internal/config"
	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/queue"
)

var ErrOrderNotFound = errors.New("order not found")

// JobQueue is the slice of the queue client the façade needs.
type JobQueue interface {
	Enqueue(ctx context.Context, id uuid.UUID, payload any, opts queue.Options) error
	FetchJob(ctx context.Context, id uuid.UUID) (*queue.Job, error)
}

type Service struct {
	q    JobQueue
	opts queue.Options
	log  *zap.Logger
}

func New(q JobQueue, cfg config.Config, log *zap.Logger) *Service {
	opts := queue.Options{
		Timeout:    cfg.JobTimeout(),
		ResultTTL:  cfg.JobResultTTL(),
		FailureTTL: cfg.JobFailureTTL(),
	}
	if cfg.JobRetry {
		opts.RetryCount = cfg.JobRetryCount
	}
	return &Service{q: q, opts: opts, log: log}
}

// CreateOrder assigns a fresh job id and enqueues the raw request. It
// returns as soon as the job is durably queued; validation and persistence
// happen later in a worker.
func (s *Service) CreateOrder(ctx context.Context, req domain.OrderRequest) (uuid.UUID, error) {
	id := uuid.New()
	if err := s.q.Enqueue(ctx, id, req, s.opts); err != nil {
		s.log.Error("failed to create order", zap.String("job_id", id.String()), zap.Error(err))
		return uuid.Nil, fmt.Errorf("create order: %w", err)
	}
	return id, nil
}

// GetOrderStatus fetches the order's job and translates its state. An
// unknown id is ErrOrderNotFound, never an ERROR status; queue transport
// errors propagate to the caller.
func (s *Service) GetOrderStatus(ctx context.Context, id uuid.UUID) (domain.StatusInfo, error) {
	job, err := s.q.FetchJob(ctx, id)
	if err != nil {
		if errors.Is(err, queue.ErrJobNotFound) {
			return domain.StatusInfo{}, ErrOrderNotFound
		}
		return domain.StatusInfo{}, fmt.Errorf("fetch order status: %w", err)
	}
	return Translate(job), nil
}

// Package processor holds the order task body executed inside a worker.
package processor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/storage"
	"github.com/you/orderq/internal/validate"
)

// OrderStore is the database session the worker attaches per execution.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *domain.Order) error
}

type Processor struct{ log *zap.Logger }

func New(log *zap.Logger) *Processor { return &Processor{log} }

// Process validates the submitted order and persists it under the job id.
// Domain rejections (bad input, duplicate phone) come back as an Outcome;
// only infrastructure faults are returned as errors, which sends the job
// down the queue's retry/failure path. Invalid input never touches the
// database.
func (p *Processor) Process(ctx context.Context, store OrderStore, jobID uuid.UUID, req domain.OrderRequest) (domain.Outcome, error) {
	normalized, err := validate.Request(req)
	if err != nil {
		return domain.Outcome{Status: domain.ProcessingRejected, Detail: err.Error()}, nil
	}

	order := &domain.Order{
		ID:          jobID,
		UserName:    normalized.UserName,
		PhoneNumber: normalized.PhoneNumber,
		Status:      domain.StoredPending,
	}
	if err := store.CreateOrder(ctx, order); err != nil {
		switch {
		case errors.Is(err, storage.ErrPhoneRegistered):
			return domain.Outcome{
				Status: domain.ProcessingRejected,
				Detail: "Phone number is already registered",
			}, nil
		case errors.Is(err, storage.ErrOrderExists):
			// a prior attempt of this job already committed the row
			p.log.Info("order already persisted, treating as accepted",
				zap.String("job_id", jobID.String()))
			return domain.Outcome{Status: domain.ProcessingAccepted}, nil
		default:
			p.log.Error("database error while creating order",
				zap.String("job_id", jobID.String()), zap.Error(err))
			return domain.Outcome{}, err
		}
	}
	return domain.Outcome{Status: domain.ProcessingAccepted}, nil
}

package service

import (
	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/queue"
)

const invalidOrderDetail = "Order is invalid"

// stateStatuses maps every non-finished queue state to a caller-facing
// status. Anything in flight is PROCESSING regardless of sub-state; the
// halted states are ERROR, which tells the caller a retry may help.
var stateStatuses = map[queue.State]domain.Status{
	queue.StateCreated:   domain.StatusProcessing,
	queue.StateDeferred:  domain.StatusProcessing,
	queue.StateQueued:    domain.StatusProcessing,
	queue.StateScheduled: domain.StatusProcessing,
	queue.StateStarted:   domain.StatusProcessing,
	queue.StateCanceled:  domain.StatusError,
	queue.StateFailed:    domain.StatusError,
	queue.StateStopped:   domain.StatusError,
}

// Translate derives the domain order status from a job snapshot. It is a
// pure function of the job's state and return payload.
func Translate(job *queue.Job) domain.StatusInfo {
	if job.State == queue.StateFinished {
		return translateFinished(job)
	}
	status, ok := stateStatuses[job.State]
	if !ok {
		return domain.StatusInfo{Status: domain.StatusError, Detail: invalidOrderDetail}
	}
	return domain.StatusInfo{Status: status, Detail: status.Description()}
}

func translateFinished(job *queue.Job) domain.StatusInfo {
	out, err := job.Outcome()
	if err != nil {
		return domain.StatusInfo{Status: domain.StatusError, Detail: invalidOrderDetail}
	}
	if out == nil {
		return domain.StatusInfo{Status: domain.StatusRejected, Detail: domain.StatusRejected.Description()}
	}
	if out.Status == domain.ProcessingAccepted {
		return domain.StatusInfo{Status: domain.StatusAccepted, Detail: domain.StatusAccepted.Description()}
	}
	detail := out.Detail
	if detail == "" {
		detail = domain.StatusRejected.Description()
	}
	return domain.StatusInfo{Status: domain.StatusRejected, Detail: detail}
}

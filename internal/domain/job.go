package domain

// ProcessingStatus is the verdict a processed job reports back to the queue.
type ProcessingStatus string

const (
	ProcessingAccepted ProcessingStatus = "ACCEPTED"
	ProcessingRejected ProcessingStatus = "REJECTED"
)

// Outcome is the return payload stored with a finished job. Detail carries
// the rejection reason verbatim; it is empty for accepted orders.
type Outcome struct {
	Status ProcessingStatus `json:"status"`
	Detail string           `json:"detail,omitempty"`
}

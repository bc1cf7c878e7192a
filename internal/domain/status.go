package domain

// Status is the order status exposed to API callers. It is derived from the
// job's queue state on every query and never persisted.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusAccepted   Status = "ACCEPTED"
	StatusRejected   Status = "REJECTED"
	StatusError      Status = "ERROR"
)

var statusDescriptions = map[Status]string{
	StatusProcessing: "Order is currently undergoing processing",
	StatusAccepted:   "Order has been accepted and queued",
	StatusRejected:   "Order has been rejected due to invalid data",
	StatusError:      "Unable to process order due to temporary error. Please try again later",
}

// Description returns the default caller-facing text for the status.
func (s Status) Description() string { return statusDescriptions[s] }

// StatusInfo pairs a status with its caller-facing detail.
type StatusInfo struct {
	Status Status `json:"status"`
	Detail string `json:"detail"`
}

// StoredStatus is the status column of the orders table. It is a separate
// state machine from Status: inserts write StoredPending and nothing in the
// processing path advances it afterwards.
type StoredStatus string

const (
	StoredPending   StoredStatus = "PENDING"
	StoredConfirmed StoredStatus = "CONFIRMED"
	StoredCanceled  StoredStatus = "CANCELED"
)

var storedStatusDescriptions = map[StoredStatus]string{
	StoredPending:   "Order is pending confirmation",
	StoredConfirmed: "Order has been confirmed and accepted for processing",
	StoredCanceled:  "Order has been canceled",
}

func (s StoredStatus) Description() string { return storedStatusDescriptions[s] }

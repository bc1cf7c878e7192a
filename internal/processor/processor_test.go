package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/storage"
)

type fakeStore struct {
	created []*domain.Order
	err     error
}

func (f *fakeStore) CreateOrder(_ context.Context, o *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, o)
	return nil
}

func TestProcessValidOrder(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	jobID := uuid.New()
	out, err := New(zap.NewNop()).Process(context.Background(), store, jobID, domain.OrderRequest{
		UserName:    " John   Doe ",
		PhoneNumber: "+375 29 111-11-11",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ProcessingAccepted {
		t.Fatalf("outcome = %+v", out)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d rows, want 1", len(store.created))
	}
	o := store.created[0]
	if o.ID != jobID {
		t.Fatalf("order id = %s, want job id %s", o.ID, jobID)
	}
	if o.UserName != "John Doe" || o.PhoneNumber != "+375291111111" {
		t.Fatalf("order not normalized: %+v", o)
	}
	if o.Status != domain.StoredPending {
		t.Fatalf("stored status = %s, want PENDING", o.Status)
	}
}

func TestProcessInvalidNameSkipsDatabase(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	out, err := New(zap.NewNop()).Process(context.Background(), store, uuid.New(), domain.OrderRequest{
		UserName:    "John123",
		PhoneNumber: "+375 29 111-11-11",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ProcessingRejected || !strings.Contains(out.Detail, "invalid characters") {
		t.Fatalf("outcome = %+v", out)
	}
	if len(store.created) != 0 {
		t.Fatal("database touched for invalid input")
	}
}

func TestProcessShortPhone(t *testing.T) {
	t.Parallel()

	out, err := New(zap.NewNop()).Process(context.Background(), &fakeStore{}, uuid.New(), domain.OrderRequest{
		UserName:    "John Doe",
		PhoneNumber: "123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ProcessingRejected || !strings.Contains(out.Detail, "7 to 15") {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestProcessDuplicatePhone(t *testing.T) {
	t.Parallel()

	store := &fakeStore{err: storage.ErrPhoneRegistered}
	out, err := New(zap.NewNop()).Process(context.Background(), store, uuid.New(), domain.OrderRequest{
		UserName:    "John Doe",
		PhoneNumber: "+375 29 111-11-11",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ProcessingRejected || out.Detail != "Phone number is already registered" {
		t.Fatalf("outcome = %+v", out)
	}
}

// A retried job whose earlier attempt already committed collides on the
// primary key. Policy: report it accepted, the row is there.
func TestProcessRetriedJobAlreadyPersisted(t *testing.T) {
	t.Parallel()

	store := &fakeStore{err: storage.ErrOrderExists}
	out, err := New(zap.NewNop()).Process(context.Background(), store, uuid.New(), domain.OrderRequest{
		UserName:    "John Doe",
		PhoneNumber: "+375 29 111-11-11",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ProcessingAccepted {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestProcessInfrastructureFaultPropagates(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")
	store := &fakeStore{err: dbErr}
	_, err := New(zap.NewNop()).Process(context.Background(), store, uuid.New(), domain.OrderRequest{
		UserName:    "John Doe",
		PhoneNumber: "+375 29 111-11-11",
	})
	if !errors.Is(err, dbErr) {
		t.Fatalf("err = %v, want wrapped %v", err, dbErr)
	}
}

package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/you/orderq/internal/domain"
)

func TestJobFromHash(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	j := jobFromHash(id, map[string]string{
		"status":       "queued",
		"payload":      `{"user_name":"John Doe","phone_number":"+375291111111"}`,
		"enqueued_at":  "2026-08-29T10:00:00.5Z",
		"timeout":      "60",
		"result_ttl":   "300",
		"failure_ttl":  "3600",
		"retries_left": "3",
	})

	if j.ID != id {
		t.Fatalf("id = %s, want %s", j.ID, id)
	}
	if j.State != StateQueued {
		t.Fatalf("state = %q", j.State)
	}
	if j.Timeout != 60*time.Second || j.ResultTTL != 300*time.Second || j.FailureTTL != time.Hour {
		t.Fatalf("durations = %v %v %v", j.Timeout, j.ResultTTL, j.FailureTTL)
	}
	if j.RetriesLeft != 3 {
		t.Fatalf("retries = %d", j.RetriesLeft)
	}
	if j.EnqueuedAt.IsZero() || !j.StartedAt.IsZero() || !j.EndedAt.IsZero() {
		t.Fatalf("timestamps = %v %v %v", j.EnqueuedAt, j.StartedAt, j.EndedAt)
	}
	if len(j.Result) != 0 {
		t.Fatalf("unexpected result %q", j.Result)
	}
}

func TestJobFromHashKeepsUnknownState(t *testing.T) {
	t.Parallel()

	j := jobFromHash(uuid.New(), map[string]string{"status": "mangled"})
	if j.State != State("mangled") {
		t.Fatalf("state = %q, want raw value preserved", j.State)
	}
}

func TestJobOutcome(t *testing.T) {
	t.Parallel()

	j := &Job{Result: []byte(`{"status":"REJECTED","detail":"Phone number is not valid"}`)}
	out, err := j.Outcome()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != domain.ProcessingRejected || out.Detail != "Phone number is not valid" {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestJobOutcomeAbsent(t *testing.T) {
	t.Parallel()

	out, err := (&Job{}).Outcome()
	if err != nil || out != nil {
		t.Fatalf("out = %v, err = %v, want nil, nil", out, err)
	}
}

func TestJobOutcomeCorrupt(t *testing.T) {
	t.Parallel()

	if _, err := (&Job{Result: []byte("{not json")}).Outcome(); err == nil {
		t.Fatal("expected decode error")
	}
}

package service

import (
	"testing"

	"github.com/you/orderq/internal/domain"
	"github.com/you/orderq/internal/queue"
)

func TestTranslateStateTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state queue.State
		want  domain.Status
	}{
		{queue.StateCreated, domain.StatusProcessing},
		{queue.StateDeferred, domain.StatusProcessing},
		{queue.StateQueued, domain.StatusProcessing},
		{queue.StateScheduled, domain.StatusProcessing},
		{queue.StateStarted, domain.StatusProcessing},
		{queue.StateCanceled, domain.StatusError},
		{queue.StateFailed, domain.StatusError},
		{queue.StateStopped, domain.StatusError},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			got := Translate(&queue.Job{State: tt.state})
			if got.Status != tt.want {
				t.Fatalf("Translate(%s) = %s, want %s", tt.state, got.Status, tt.want)
			}
			if got.Detail != tt.want.Description() {
				t.Fatalf("detail = %q, want default description", got.Detail)
			}
		})
	}
}

func TestTranslateFinishedAccepted(t *testing.T) {
	t.Parallel()

	got := Translate(&queue.Job{State: queue.StateFinished, Result: []byte(`{"status":"ACCEPTED"}`)})
	if got.Status != domain.StatusAccepted || got.Detail != domain.StatusAccepted.Description() {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslateFinishedRejectedWithDetail(t *testing.T) {
	t.Parallel()

	got := Translate(&queue.Job{
		State:  queue.StateFinished,
		Result: []byte(`{"status":"REJECTED","detail":"Phone number is already registered"}`),
	})
	if got.Status != domain.StatusRejected || got.Detail != "Phone number is already registered" {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslateFinishedRejectedWithoutDetail(t *testing.T) {
	t.Parallel()

	got := Translate(&queue.Job{State: queue.StateFinished, Result: []byte(`{"status":"REJECTED"}`)})
	if got.Status != domain.StatusRejected || got.Detail != domain.StatusRejected.Description() {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslateFinishedNoPayload(t *testing.T) {
	t.Parallel()

	got := Translate(&queue.Job{State: queue.StateFinished})
	if got.Status != domain.StatusRejected || got.Detail != domain.StatusRejected.Description() {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslateFinishedCorruptPayload(t *testing.T) {
	t.Parallel()

	got := Translate(&queue.Job{State: queue.StateFinished, Result: []byte("{broken")})
	if got.Status != domain.StatusError || got.Detail != "Order is invalid" {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslateUnknownState(t *testing.T) {
	t.Parallel()

	got := Translate(&queue.Job{State: queue.State("mangled")})
	if got.Status != domain.StatusError || got.Detail != "Order is invalid" {
		t.Fatalf("got %+v", got)
	}
}

func TestTranslateIsPure(t *testing.T) {
	t.Parallel()

	job := &queue.Job{State: queue.StateFinished, Result: []byte(`{"status":"ACCEPTED"}`)}
	if a, b := Translate(job), Translate(job); a != b {
		t.Fatalf("two translations differ: %+v vs %+v", a, b)
	}
}

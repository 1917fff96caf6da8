package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"requested", "pending", "scheduled", "cancelled", " Completed "} {
		if _, err := ParseStatus(s); err != nil {
			t.Fatalf("ParseStatus(%q): %v", s, err)
		}
	}

	_, err := ParseStatus("agendado")
	if !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusRequested, StatusScheduled, true},
		{StatusRequested, StatusPending, true},
		{StatusRequested, StatusCancelled, true},
		{StatusRequested, StatusCompleted, true},
		{StatusPending, StatusScheduled, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusRequested, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusRequested, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tt.from, tt.to, err)
		}
		if !tt.ok && !httperr.IsBusiness(err, "invalid_transition") {
			t.Fatalf("%s -> %s: expected invalid_transition, got %v", tt.from, tt.to, err)
		}
	}
}

func TestTransition_StampsTimestamps(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	changed, err := Cancel(ap, now)
	if err != nil || !changed {
		t.Fatalf("cancel: changed=%v err=%v", changed, err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil || !ap.CancelledAt.Equal(now) {
		t.Fatalf("unexpected appointment after cancel: %+v", ap)
	}

	changed, err = Cancel(ap, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second cancel must be accepted: %v", err)
	}
	if changed {
		t.Fatalf("second cancel must not change anything")
	}
	if !ap.CancelledAt.Equal(now) {
		t.Fatalf("cancelled_at must keep the first timestamp")
	}

	done := &models.Appointment{Status: string(StatusScheduled)}
	if _, err := Complete(done, now); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatalf("expected completed_at")
	}
	if _, err := Cancel(done, now); err == nil {
		t.Fatalf("a completed appointment cannot be cancelled")
	}
}

func TestNotifiesRequester(t *testing.T) {
	if !NotifiesRequester(StatusScheduled) || !NotifiesRequester(StatusCancelled) {
		t.Fatalf("scheduled and cancelled notify the requester")
	}
	if NotifiesRequester(StatusCompleted) || NotifiesRequester(StatusPending) {
		t.Fatalf("only scheduled and cancelled notify")
	}
}

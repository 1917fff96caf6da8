package appointment

import (
	"time"

	"github.com/BruksfildServices01/medagenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves the appointment to next and stamps the matching timestamp.
// It reports whether the status actually changed.
func Transition(ap *models.Appointment, next Status, now time.Time) (bool, error) {
	current := Status(ap.Status)
	if err := CanTransition(current, next); err != nil {
		return false, err
	}
	if current == next {
		return false, nil
	}

	ap.Status = string(next)
	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return true, nil
}

func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) (bool, error) {
	return Transition(ap, StatusCompleted, now)
}

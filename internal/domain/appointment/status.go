package appointment

import (
	"strings"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusRequested Status = "requested"
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusRequested: {StatusPending, StatusScheduled, StatusCancelled, StatusCompleted},
	StatusPending:   {StatusScheduled, StatusCancelled},
	StatusScheduled: {StatusCancelled, StatusCompleted},
	StatusCancelled: nil,
	StatusCompleted: nil,
}

// ActiveStatuses are the states in which an appointment still occupies the
// practitioner's time.
var ActiveStatuses = []Status{StatusRequested, StatusPending, StatusScheduled}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitions[st]; !ok {
		return "", httperr.Validation("invalid_status", "Status inválido.")
	}
	return st, nil
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransition allows staying in the same state, so repeating a
// cancellation is harmless.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.Validation(
		"invalid_transition",
		"Não é possível alterar o status de "+string(from)+" para "+string(to)+".",
	)
}

func InitialStatus() Status {
	return StatusRequested
}

// NotifiesRequester reports whether entering this status sends mail to the
// requester.
func NotifiesRequester(s Status) bool {
	return s == StatusScheduled || s == StatusCancelled
}

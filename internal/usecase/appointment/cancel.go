package appointment

import (
	"context"

	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/appointment"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

// CancelAppointment is UpdateStatus pinned to cancelled. Cancelling twice
// leaves the appointment untouched.
type CancelAppointment struct {
	update *UpdateStatus
}

func NewCancelAppointment(update *UpdateStatus) *CancelAppointment {
	return &CancelAppointment{update: update}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.update.Execute(ctx, actor, appointmentID, string(domain.StatusCancelled))
}

package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/appointment"
	"github.com/BruksfildServices01/medagenda/internal/models"
	"github.com/BruksfildServices01/medagenda/internal/notify"
)

type UpdateStatus struct {
	repo     domain.Repository
	audit    audit.Recorder
	notifier notify.Notifier
	opts     Options
}

func NewUpdateStatus(
	repo domain.Repository,
	audit audit.Recorder,
	notifier notify.Notifier,
	opts Options,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		opts:     opts.withDefaults(),
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actor access.Actor,
	appointmentID uint,
	rawStatus string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFoundOr(err, errAppointmentNotFound)
	}

	if err := access.RequireParticipant(ap, actor); err != nil {
		return nil, err
	}

	next, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	changed, err := domain.Transition(ap, next, uc.opts.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if domain.NotifiesRequester(next) {
		uc.notifyRequester(ap, next)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_" + string(next),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.Status,
		},
	})

	uc.opts.Log.Info("appointment status changed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("from", previous),
		zap.String("to", ap.Status),
		zap.Uint("actor_id", actor.UserID),
	)

	return ap, nil
}

func (uc *UpdateStatus) notifyRequester(ap *models.Appointment, next domain.Status) {
	at := ap.ScheduledAt.In(uc.opts.Location)
	switch next {
	case domain.StatusScheduled:
		uc.notifier.Notify(notify.AppointmentScheduled(ap.Requester.Email, ap.Practitioner.Name, at))
	case domain.StatusCancelled:
		uc.notifier.Notify(notify.AppointmentCancelled(ap.Requester.Email, ap.Practitioner.Name, at))
	}
}

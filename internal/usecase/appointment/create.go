package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/appointment"
	"github.com/BruksfildServices01/medagenda/internal/domain/availability"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
	"github.com/BruksfildServices01/medagenda/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	PractitionerID uint
	ScheduledAt    time.Time
	Notes          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    audit.Recorder
	notifier notify.Notifier
	opts     Options
}

func NewCreateAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	notifier notify.Notifier,
	opts Options,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		opts:     opts.withDefaults(),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor access.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	if in.PractitionerID == 0 {
		return nil, httperr.Validation("practitioner_required", "Informe o médico.")
	}
	if in.ScheduledAt.IsZero() {
		return nil, httperr.Validation("invalid_date_or_time", "Data e hora inválidas.")
	}
	at := in.ScheduledAt.In(uc.opts.Location).Truncate(time.Minute)

	// --------------------------------------------------
	// 2. Partes
	// --------------------------------------------------
	requester, err := uc.repo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, httperr.NotFoundErr("user_not_found", "Usuário não encontrado."))
	}

	practitioner, err := uc.repo.GetPractitioner(ctx, in.PractitionerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.Validation("practitioner_not_found", "Médico não encontrado.")
	}
	if err != nil {
		return nil, err
	}

	if practitioner.ID == requester.ID {
		return nil, httperr.Validation("self_booking", "Não é possível agendar uma consulta consigo mesmo.")
	}

	// --------------------------------------------------
	// 3. Grade de horários (opcional)
	// --------------------------------------------------
	if uc.opts.EnforceAvailability {
		windows, err := uc.repo.ListWindowsForWeekday(
			ctx,
			practitioner.ID,
			availability.WeekdayName(at.Weekday()),
		)
		if err != nil {
			return nil, err
		}
		if !availability.MatchesWindow(windows, at) {
			return nil, httperr.Validation("outside_availability", "Horário fora da grade de atendimento do médico.")
		}
	}

	// --------------------------------------------------
	// 4. Conflito de horário
	// --------------------------------------------------
	busy, err := uc.repo.HasActiveAt(ctx, practitioner.ID, at)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, httperr.Validation("time_conflict", "O médico já possui uma consulta neste horário.")
	}

	// --------------------------------------------------
	// 5. Criação
	// --------------------------------------------------
	ap := &models.Appointment{
		RequesterID:    requester.ID,
		PractitionerID: practitioner.ID,
		ScheduledAt:    at,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	ap.Requester = *requester
	ap.Practitioner = *practitioner

	uc.notifier.Notify(notify.AppointmentRequested(
		practitioner.Email,
		requester.Name,
		at,
	))

	uc.audit.Dispatch(audit.Event{
		UserID:   &requester.ID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"practitioner_id": practitioner.ID,
			"scheduled_at":    at,
		},
	})

	uc.opts.Log.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("requester_id", requester.ID),
		zap.Uint("practitioner_id", practitioner.ID),
	)

	return ap, nil
}

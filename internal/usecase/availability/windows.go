package availability

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/availability"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

var errWindowNotFound = httperr.NotFoundErr("window_not_found", "Horário de atendimento não encontrado.")

// ======================================================
// INPUT
// ======================================================

type WindowInput struct {
	Weekday         string
	StartTimes      []string
	Location        string
	DurationMinutes int
	BufferMinutes   int
	Unavailable     bool
}

// WindowPatch carries only the fields being changed.
type WindowPatch struct {
	Weekday         *string
	StartTimes      *[]string
	Location        *string
	DurationMinutes *int
	BufferMinutes   *int
	Unavailable     *bool
}

func (p WindowPatch) apply(w *models.AvailabilityWindow) {
	if p.Weekday != nil {
		w.Weekday = *p.Weekday
	}
	if p.StartTimes != nil {
		w.StartTimes = *p.StartTimes
	}
	if p.Location != nil {
		w.Location = *p.Location
	}
	if p.DurationMinutes != nil {
		w.DurationMinutes = *p.DurationMinutes
	}
	if p.BufferMinutes != nil {
		w.BufferMinutes = *p.BufferMinutes
	}
	if p.Unavailable != nil {
		w.Unavailable = *p.Unavailable
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateWindow struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateWindow(repo domain.Repository, audit audit.Recorder) *CreateWindow {
	return &CreateWindow{repo: repo, audit: audit}
}

// Execute always creates the window for the caller.
func (uc *CreateWindow) Execute(
	ctx context.Context,
	actor access.Actor,
	in WindowInput,
) (*models.AvailabilityWindow, error) {

	if err := access.RequirePractitioner(actor); err != nil {
		return nil, err
	}

	w := &models.AvailabilityWindow{
		PractitionerID:  actor.UserID,
		Weekday:         in.Weekday,
		StartTimes:      in.StartTimes,
		Location:        in.Location,
		DurationMinutes: in.DurationMinutes,
		BufferMinutes:   in.BufferMinutes,
		Unavailable:     in.Unavailable,
	}
	if err := domain.Validate(w); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateWindow(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "window_created",
		Entity:   "availability_window",
		EntityID: &w.ID,
	})

	return w, nil
}

// ======================================================
// LIST
// ======================================================

type ListWindows struct {
	repo domain.Repository
}

func NewListWindows(repo domain.Repository) *ListWindows {
	return &ListWindows{repo: repo}
}

// Execute returns the caller's own windows when the caller is a practitioner.
// Anyone else browses every window, optionally narrowed to one practitioner.
func (uc *ListWindows) Execute(
	ctx context.Context,
	actor access.Actor,
	practitionerID uint,
) ([]models.AvailabilityWindow, error) {

	if access.IsPractitioner(actor) {
		practitionerID = actor.UserID
	}
	return uc.repo.ListWindows(ctx, practitionerID)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateWindow struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateWindow(repo domain.Repository, audit audit.Recorder) *UpdateWindow {
	return &UpdateWindow{repo: repo, audit: audit}
}

func (uc *UpdateWindow) Execute(
	ctx context.Context,
	actor access.Actor,
	windowID uint,
	patch WindowPatch,
) (*models.AvailabilityWindow, error) {

	w, err := uc.repo.GetWindow(ctx, windowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errWindowNotFound
		}
		return nil, err
	}

	if err := access.RequireWindowOwner(w, actor); err != nil {
		return nil, err
	}

	patch.apply(w)
	if err := domain.Validate(w); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateWindow(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "window_updated",
		Entity:   "availability_window",
		EntityID: &w.ID,
	})

	return w, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteWindow struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteWindow(repo domain.Repository, audit audit.Recorder) *DeleteWindow {
	return &DeleteWindow{repo: repo, audit: audit}
}

func (uc *DeleteWindow) Execute(
	ctx context.Context,
	actor access.Actor,
	windowID uint,
) error {

	w, err := uc.repo.GetWindow(ctx, windowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errWindowNotFound
		}
		return err
	}

	if err := access.RequireWindowOwner(w, actor); err != nil {
		return err
	}

	if err := uc.repo.DeleteWindow(ctx, w.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errWindowNotFound
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "window_deleted",
		Entity:   "availability_window",
		EntityID: &w.ID,
	})

	return nil
}

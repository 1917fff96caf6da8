package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medagenda/internal/domain/access"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/appointment"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type ListFilters struct {
	Status string
	From   *time.Time
	To     *time.Time
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists the caller's appointments as practitioner or as requester,
// depending on the caller's role.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor access.Actor,
	in ListFilters,
) ([]models.Appointment, error) {

	f := domain.ListFilter{From: in.From, To: in.To}
	if access.IsPractitioner(actor) {
		f.PractitionerID = actor.UserID
	} else {
		f.RequesterID = actor.UserID
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, httperr.Validation("invalid_date_range", "A data final deve ser posterior à inicial.")
	}

	return uc.repo.ListAppointments(ctx, f)
}

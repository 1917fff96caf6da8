package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medagenda/internal/domain/appointment"
	"github.com/BruksfildServices01/medagenda/internal/domain/availability"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
)

type FreeSlots struct {
	repo domain.Repository
	opts Options
}

func NewFreeSlots(repo domain.Repository, opts Options) *FreeSlots {
	return &FreeSlots{repo: repo, opts: opts.withDefaults()}
}

// Execute expands the practitioner's windows for the day of date, minus the
// time taken by active appointments.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	practitionerID uint,
	date time.Time,
) ([]availability.Slot, error) {

	if _, err := uc.repo.GetPractitioner(ctx, practitionerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFoundErr("practitioner_not_found", "Médico não encontrado.")
		}
		return nil, err
	}

	loc := uc.opts.Location
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	windows, err := uc.repo.ListWindowsForWeekday(ctx, practitionerID, availability.WeekdayName(day.Weekday()))
	if err != nil {
		return nil, err
	}

	from := day.Add(-availability.LongestOccupancy(windows))
	booked, err := uc.repo.ListActiveForPeriod(ctx, practitionerID, from, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for i := range booked {
		booked[i].ScheduledAt = booked[i].ScheduledAt.In(loc)
	}

	return availability.ExpandSlots(windows, day, booked), nil
}

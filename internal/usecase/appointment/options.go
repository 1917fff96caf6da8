package appointment

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
)

type Options struct {
	// Location is where wall-clock times and weekdays are read.
	Location *time.Location
	// EnforceAvailability rejects bookings that miss every published start time.
	EnforceAvailability bool
	Now                 func() time.Time
	Log                 *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

var errAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Agendamento não encontrado.")

func notFoundOr(err error, nf error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nf
	}
	return err
}

package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medagenda/internal/models"
)

type ListFilter struct {
	RequesterID    uint
	PractitionerID uint
	Status         *Status
	From           *time.Time
	To             *time.Time
}

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetPractitioner(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	HasActiveAt(
		ctx context.Context,
		practitionerID uint,
		at time.Time,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Listing --------
	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)

	ListActiveForPeriod(
		ctx context.Context,
		practitionerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Attachments --------
	ListAttachments(
		ctx context.Context,
		appointmentID uint,
	) ([]models.Attachment, error)

	// -------- Availability --------
	ListWindowsForWeekday(
		ctx context.Context,
		practitionerID uint,
		weekday string,
	) ([]models.AvailabilityWindow, error)
}

package attachment

import (
	"context"

	"github.com/BruksfildServices01/medagenda/internal/models"
)

type Repository interface {
	GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error)

	// CreateAttachments stores every record or none.
	CreateAttachments(ctx context.Context, files []models.Attachment) error
	GetAttachment(ctx context.Context, id uint) (*models.Attachment, error)
	ListAttachments(ctx context.Context, appointmentID uint) ([]models.Attachment, error)
	DeleteAttachment(ctx context.Context, id uint) error
}

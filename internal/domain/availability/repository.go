package availability

import (
	"context"

	"github.com/BruksfildServices01/medagenda/internal/models"
)

type Repository interface {
	CreateWindow(ctx context.Context, w *models.AvailabilityWindow) error
	GetWindow(ctx context.Context, id uint) (*models.AvailabilityWindow, error)
	UpdateWindow(ctx context.Context, w *models.AvailabilityWindow) error
	DeleteWindow(ctx context.Context, id uint) error

	// practitionerID 0 lists every practitioner's windows.
	ListWindows(ctx context.Context, practitionerID uint) ([]models.AvailabilityWindow, error)
}

package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medagenda/internal/domain/availability"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

func (r *AvailabilityGormRepository) CreateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *AvailabilityGormRepository) GetWindow(
	ctx context.Context,
	id uint,
) (*models.AvailabilityWindow, error) {

	var w models.AvailabilityWindow
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *AvailabilityGormRepository) UpdateWindow(
	ctx context.Context,
	w *models.AvailabilityWindow,
) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *AvailabilityGormRepository) DeleteWindow(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.AvailabilityWindow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AvailabilityGormRepository) ListWindows(
	ctx context.Context,
	practitionerID uint,
) ([]models.AvailabilityWindow, error) {

	q := r.db.WithContext(ctx)
	if practitionerID != 0 {
		q = q.Where("practitioner_id = ?", practitionerID)
	}

	var windows []models.AvailabilityWindow
	if err := q.Order("practitioner_id ASC, id ASC").Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

var _ domain.Repository = (*AvailabilityGormRepository)(nil)

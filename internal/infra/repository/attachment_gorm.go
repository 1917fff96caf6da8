package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medagenda/internal/domain/attachment"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type AttachmentGormRepository struct {
	db *gorm.DB
}

func NewAttachmentGormRepository(db *gorm.DB) *AttachmentGormRepository {
	return &AttachmentGormRepository{db: db}
}

func (r *AttachmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AttachmentGormRepository) CreateAttachments(
	ctx context.Context,
	files []models.Attachment,
) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range files {
			if err := tx.Create(&files[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AttachmentGormRepository) GetAttachment(
	ctx context.Context,
	id uint,
) (*models.Attachment, error) {

	var f models.Attachment
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *AttachmentGormRepository) ListAttachments(
	ctx context.Context,
	appointmentID uint,
) ([]models.Attachment, error) {

	var files []models.Attachment
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("uploaded_at ASC, id ASC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *AttachmentGormRepository) DeleteAttachment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Attachment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var _ domain.Repository = (*AttachmentGormRepository)(nil)

package codestore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/medagenda/internal/domain/verification"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

// GormStore is used when no redis is configured. Rows are replaced in place,
// never swept; an old row only matters until the next Save for that email.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, rec verification.Record) error {
	row := models.VerificationCode{
		Email:     rec.Email,
		Code:      rec.Code,
		Purpose:   string(rec.Purpose),
		CreatedAt: rec.CreatedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "purpose", "created_at"}),
		}).
		Create(&row).Error
}

func (s *GormStore) Find(ctx context.Context, email string) (*verification.Record, error) {
	var row models.VerificationCode
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, verification.ErrNoCode
	}
	if err != nil {
		return nil, err
	}

	return &verification.Record{
		Email:     row.Email,
		Code:      row.Code,
		Purpose:   verification.Purpose(row.Purpose),
		CreatedAt: row.CreatedAt,
	}, nil
}

func (s *GormStore) Delete(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.VerificationCode{}).Error
}

var _ verification.Store = (*GormStore)(nil)

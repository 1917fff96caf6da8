package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return uniqueError(err)
	}
	return err
}

func (r *UserGormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Save(u).Error
	if isUniqueViolation(err) {
		return uniqueError(err)
	}
	return err
}

func (r *UserGormRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserGormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) CPFExists(ctx context.Context, cpf string, exceptID uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("cpf = ?", cpf)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) ListPractitioners(ctx context.Context, specialty string) ([]models.User, error) {
	q := r.db.WithContext(ctx).
		Where("role = ? AND active = ?", string(domain.RolePractitioner), true)
	if s := strings.TrimSpace(specialty); s != "" {
		q = q.Where("LOWER(specialty) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// isUniqueViolation covers both the translated gorm error and a raw
// postgres 23505 that slipped past translation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func uniqueError(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "cpf") {
		return httperr.Validation("cpf_taken", "CPF já cadastrado.")
	}
	return httperr.Validation("email_taken", "E-mail já cadastrado.")
}

var _ domain.Repository = (*UserGormRepository)(nil)

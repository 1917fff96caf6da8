package account

import (
	"context"

	"github.com/BruksfildServices01/medagenda/internal/models"
)

type Repository interface {
	// Create fails with a validation error when email or CPF is taken.
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, userID uint, hash string) error

	EmailExists(ctx context.Context, email string) (bool, error)
	// CPFExists ignores the user identified by exceptID.
	CPFExists(ctx context.Context, cpf string, exceptID uint) (bool, error)

	// ListPractitioners filters by specialty when it is not empty.
	ListPractitioners(ctx context.Context, specialty string) ([]models.User, error)
}

package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/auth"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type Session struct {
	Pair auth.TokenPair
	User *models.User
}

// Login exchanges e-mail and password for an access/refresh pair.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !u.Active || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuer.IssuePair(u.ID, u.Role)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID: &u.ID,
		Action: "login",
		Entity: "user",
	})

	return &Session{Pair: pair, User: u}, nil
}

// Refresh issues a new access token. The user's current role is used, not
// the one recorded in the refresh token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.Parse(refreshToken, auth.TypeRefresh)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	id, err := claims.UserID()
	if err != nil {
		return "", ErrInvalidCredentials
	}

	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !u.Active {
		return "", ErrInvalidCredentials
	}

	return s.issuer.IssueAccess(u.ID, u.Role)
}

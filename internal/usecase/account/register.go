package account

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/auth"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/models"
)

type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Role      string
	CPF       string
	BirthDate string
	Sex       string
	Address   string
	City      string
	State     string
	Phone     string
	CRM       string
	Specialty string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if err := s.checkEmail(ctx, email); err != nil {
		return nil, err
	}
	if len(in.Password) < MinPasswordLength {
		return nil, httperr.Validation("weak_password", "A senha deve ter pelo menos 8 caracteres.")
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.Validation("email_taken", "E-mail já cadastrado.")
	}

	u := &models.User{
		Email:   email,
		Name:    strings.TrimSpace(in.Name),
		Role:    string(role),
		Sex:     strings.TrimSpace(in.Sex),
		Address: strings.TrimSpace(in.Address),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Phone:   strings.TrimSpace(in.Phone),
		Active:  true,
	}

	if strings.TrimSpace(in.CPF) != "" {
		cpf, err := s.checkCPF(ctx, in.CPF, 0)
		if err != nil {
			return nil, err
		}
		u.CPF = &cpf
	}

	if u.BirthDate, err = s.parseBirthDate(in.BirthDate); err != nil {
		return nil, err
	}

	if role == domain.RolePractitioner {
		u.CRM = strings.TrimSpace(in.CRM)
		u.Specialty = strings.TrimSpace(in.Specialty)
		if u.CRM == "" {
			return nil, httperr.Validation("crm_required", "Informe o CRM do médico.")
		}
	}

	if u.PasswordHash, err = auth.HashPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
		Metadata: map[string]any{"role": u.Role},
	})

	s.opts.Log.Info("user registered", zap.Uint("user_id", u.ID), zap.String("role", u.Role))

	return u, nil
}

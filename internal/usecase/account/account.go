package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/auth"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/account"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/infra/storage"
	"github.com/BruksfildServices01/medagenda/internal/validators"
)

const MinPasswordLength = 8

// ErrInvalidCredentials is answered with 401, never with the reason.
var ErrInvalidCredentials = errors.New("invalid credentials")

var errUserNotFound = httperr.NotFoundErr("user_not_found", "Usuário não encontrado.")

type Options struct {
	// CheckEmailDomain resolves the e-mail domain before accepting it.
	CheckEmailDomain bool
	Location         *time.Location
	Log              *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

type Service struct {
	users  domain.Repository
	issuer *auth.Issuer
	blobs  storage.Store
	audit  audit.Recorder
	opts   Options
}

func NewService(
	users domain.Repository,
	issuer *auth.Issuer,
	blobs storage.Store,
	audit audit.Recorder,
	opts Options,
) *Service {
	return &Service{
		users:  users,
		issuer: issuer,
		blobs:  blobs,
		audit:  audit,
		opts:   opts.withDefaults(),
	}
}

func (s *Service) checkEmail(ctx context.Context, email string) error {
	if !validators.IsEmailSyntaxValid(email) {
		return httperr.Validation("invalid_email", "E-mail inválido.")
	}
	if s.opts.CheckEmailDomain && !validators.IsEmailDomainValid(ctx, email) {
		return httperr.Validation("invalid_email_domain", "O domínio do e-mail não existe.")
	}
	return nil
}

func (s *Service) checkCPF(ctx context.Context, raw string, exceptID uint) (string, error) {
	cpf, ok := domain.NormalizeCPF(raw)
	if !ok {
		return "", httperr.Validation("invalid_cpf", "CPF inválido.")
	}
	taken, err := s.users.CPFExists(ctx, cpf, exceptID)
	if err != nil {
		return "", err
	}
	if taken {
		return "", httperr.Validation("cpf_taken", "CPF já cadastrado.")
	}
	return cpf, nil
}

func (s *Service) parseBirthDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if d, err := time.ParseInLocation(layout, raw, s.opts.Location); err == nil {
			return &d, nil
		}
	}
	return nil, httperr.Validation("invalid_birth_date", "Data de nascimento inválida.")
}

// ValidateEmail answers the pre-registration check: well formed and free.
func (s *Service) ValidateEmail(ctx context.Context, raw string) error {
	email := domain.NormalizeEmail(raw)
	if err := s.checkEmail(ctx, email); err != nil {
		return err
	}
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if taken {
		return httperr.Validation("email_taken", "E-mail já cadastrado.")
	}
	return nil
}

// ValidateCPF returns the formatted CPF when it is valid and free.
func (s *Service) ValidateCPF(ctx context.Context, raw string) (string, error) {
	cpf, err := s.checkCPF(ctx, raw, 0)
	if err != nil {
		return "", err
	}
	return domain.FormatCPF(cpf), nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errUserNotFound
	}
	return err
}

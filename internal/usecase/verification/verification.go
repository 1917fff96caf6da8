package verification

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medagenda/internal/audit"
	"github.com/BruksfildServices01/medagenda/internal/auth"
	"github.com/BruksfildServices01/medagenda/internal/domain/account"
	domain "github.com/BruksfildServices01/medagenda/internal/domain/verification"
	"github.com/BruksfildServices01/medagenda/internal/httperr"
	"github.com/BruksfildServices01/medagenda/internal/infra/mailer"
	"github.com/BruksfildServices01/medagenda/internal/notify"
)

const MinPasswordLength = 8

var errInvalidCode = httperr.Validation("invalid_code", "Código inválido.")

type Options struct {
	Policy domain.Policy
	Now    func() time.Time
	Log    *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Policy.TTL <= 0 {
		o.Policy = domain.DefaultPolicy()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

// Service issues and redeems e-mail codes. Mail is sent synchronously here:
// a code the user never receives is a failure the caller must see.
type Service struct {
	users  account.Repository
	codes  domain.Store
	sender mailer.Sender
	audit  audit.Recorder
	opts   Options
}

func NewService(
	users account.Repository,
	codes domain.Store,
	sender mailer.Sender,
	audit audit.Recorder,
	opts Options,
) *Service {
	return &Service{
		users:  users,
		codes:  codes,
		sender: sender,
		audit:  audit,
		opts:   opts.withDefaults(),
	}
}

// ======================================================
// ISSUE
// ======================================================

func (s *Service) Issue(ctx context.Context, rawEmail, rawPurpose string) error {
	email := account.NormalizeEmail(rawEmail)
	if email == "" || !strings.Contains(email, "@") {
		return httperr.Validation("invalid_email", "E-mail inválido.")
	}

	purpose, err := domain.ParsePurpose(rawPurpose)
	if err != nil {
		return err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	switch purpose {
	case domain.PurposeRegistration:
		if exists {
			return httperr.Validation("email_taken", "E-mail já cadastrado.")
		}
	case domain.PurposeRecovery:
		if !exists {
			return httperr.NotFoundErr("user_not_found", "Nenhuma conta encontrada para este e-mail.")
		}
	}

	code, err := domain.GenerateCode()
	if err != nil {
		return err
	}

	if err := s.codes.Save(ctx, domain.Record{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: s.opts.Now().UTC(),
	}); err != nil {
		return err
	}

	msg := notify.RegistrationCode(email, code, s.opts.Policy.TTL)
	if purpose == domain.PurposeRecovery {
		msg = notify.RecoveryCode(email, code, s.opts.Policy.TTL)
	}

	if err := s.sender.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
		s.opts.Log.Error("verification code not delivered",
			zap.String("email", email),
			zap.String("purpose", string(purpose)),
			zap.Error(err),
		)
		return httperr.Delivery("email_failed", "Não foi possível enviar o e-mail. Tente novamente.", err)
	}

	s.opts.Log.Info("verification code issued",
		zap.String("email", email),
		zap.String("purpose", string(purpose)),
	)
	return nil
}

// ======================================================
// VERIFY / RESET
// ======================================================

// check validates the code. A registration code is consumed here; a recovery
// code stays until ResetPassword so the client can check it first.
func (s *Service) check(ctx context.Context, email, code string) error {
	rec, err := s.codes.Find(ctx, email)
	if errors.Is(err, domain.ErrNoCode) {
		return errInvalidCode
	}
	if err != nil {
		return err
	}

	if err := s.opts.Policy.Check(rec, code, s.opts.Now()); err != nil {
		return err
	}

	if rec.Purpose == domain.PurposeRecovery {
		return nil
	}
	return s.codes.Delete(ctx, email)
}

func (s *Service) Verify(ctx context.Context, rawEmail, code string) error {
	email := account.NormalizeEmail(rawEmail)
	if email == "" || strings.TrimSpace(code) == "" {
		return httperr.Validation("missing_fields", "Informe e-mail e código.")
	}
	return s.check(ctx, email, code)
}

func (s *Service) ResetPassword(ctx context.Context, rawEmail, code, newPassword string) error {
	email := account.NormalizeEmail(rawEmail)
	if email == "" || strings.TrimSpace(code) == "" {
		return httperr.Validation("missing_fields", "Informe e-mail e código.")
	}
	if len(newPassword) < MinPasswordLength {
		return httperr.Validation("weak_password", "A senha deve ter pelo menos 8 caracteres.")
	}

	rec, err := s.codes.Find(ctx, email)
	if errors.Is(err, domain.ErrNoCode) {
		return httperr.Validation("code_not_found", "Nenhum código solicitado para este e-mail.")
	}
	if err != nil {
		return err
	}
	if err := s.opts.Policy.Check(rec, code, s.opts.Now()); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundErr("user_not_found", "Nenhuma conta encontrada para este e-mail.")
	}
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	if err := s.codes.Delete(ctx, email); err != nil {
		s.opts.Log.Warn("verification code not removed", zap.String("email", email), zap.Error(err))
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_reset",
		Entity:   "user",
		EntityID: &user.ID,
	})

	return nil
}

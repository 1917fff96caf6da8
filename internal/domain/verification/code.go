package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
)

type Purpose string

const (
	PurposeRegistration Purpose = "cadastro"
	PurposeRecovery     Purpose = "recuperacao"
)

func ParsePurpose(s string) (Purpose, error) {
	switch Purpose(strings.ToLower(strings.TrimSpace(s))) {
	case "", PurposeRegistration:
		return PurposeRegistration, nil
	case PurposeRecovery:
		return PurposeRecovery, nil
	default:
		return "", httperr.Validation("invalid_purpose", "Finalidade do código inválida.")
	}
}

type Record struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Purpose   Purpose   `json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNoCode = errors.New("verification: no code for email")

// Store keeps at most one live record per email.
type Store interface {
	// Save replaces whatever record the email had.
	Save(ctx context.Context, rec Record) error
	// Find returns ErrNoCode when the email has no record.
	Find(ctx context.Context, email string) (*Record, error)
	Delete(ctx context.Context, email string) error
}

// Policy is the single validity rule for codes. Stores keep records for
// Retention so that a stale code is reported as expired, not unknown.
type Policy struct {
	TTL time.Duration
}

func DefaultPolicy() Policy {
	return Policy{TTL: 30 * time.Minute}
}

func (p Policy) Expired(rec *Record, now time.Time) bool {
	return now.Sub(rec.CreatedAt) > p.TTL
}

func (p Policy) Retention() time.Duration {
	return 2 * p.TTL
}

// Check compares code against rec and applies the validity window.
func (p Policy) Check(rec *Record, code string, now time.Time) error {
	if rec == nil || subtle.ConstantTimeCompare([]byte(rec.Code), []byte(strings.TrimSpace(code))) != 1 {
		return httperr.Validation("invalid_code", "Código inválido.")
	}
	if p.Expired(rec, now) {
		return httperr.Expired("expired_code", "Código expirado. Solicite um novo código.")
	}
	return nil
}

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random six digit code, leading zeros kept.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

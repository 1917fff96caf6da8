package verification

import (
	"regexp"
	"testing"
	"time"

	"github.com/BruksfildServices01/medagenda/internal/httperr"
)

func TestGenerateCode(t *testing.T) {
	re := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("unexpected code %q", code)
		}
	}
}

func TestParsePurpose(t *testing.T) {
	if p, err := ParsePurpose(""); err != nil || p != PurposeRegistration {
		t.Fatalf("empty purpose must default to registration, got %q %v", p, err)
	}
	if p, err := ParsePurpose("RECUPERACAO"); err != nil || p != PurposeRecovery {
		t.Fatalf("expected recovery, got %q %v", p, err)
	}
	if _, err := ParsePurpose("login"); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPolicyCheck(t *testing.T) {
	p := DefaultPolicy()
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := &Record{Email: "a@b.com", Code: "012345", CreatedAt: created}

	if err := p.Check(rec, "012345", created.Add(29*time.Minute)); err != nil {
		t.Fatalf("fresh code must verify: %v", err)
	}
	if err := p.Check(rec, "012345", created.Add(30*time.Minute)); err != nil {
		t.Fatalf("code at exactly the ttl must verify: %v", err)
	}
	if err := p.Check(rec, "012345", created.Add(31*time.Minute)); !httperr.IsKind(err, httperr.KindExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}
	if err := p.Check(rec, "999999", created); !httperr.IsBusiness(err, "invalid_code") {
		t.Fatalf("expected invalid_code, got %v", err)
	}
	if err := p.Check(nil, "012345", created); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error for missing record, got %v", err)
	}
	if p.Retention() != time.Hour {
		t.Fatalf("expected retention of twice the ttl, got %s", p.Retention())
	}
}

package auth

import (
	"testing"
	"time"
)

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("segredo123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(h, "segredo123") || CheckPassword(h, "outra") {
		t.Fatalf("password check mismatch")
	}
}

func TestIssuer_PairRoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour, 24*time.Hour)

	pair, err := iss.IssuePair(42, "medico")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := iss.Parse(pair.Access, TypeAccess)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	id, err := c.UserID()
	if err != nil || id != 42 || c.Role != "medico" {
		t.Fatalf("unexpected claims %+v", c)
	}

	if _, err := iss.Parse(pair.Refresh, TypeAccess); err == nil {
		t.Fatalf("refresh token must not pass as access")
	}
	if _, err := iss.Parse(pair.Access, TypeRefresh); err == nil {
		t.Fatalf("access token must not pass as refresh")
	}
	if _, err := NewIssuer("other", time.Hour, time.Hour).Parse(pair.Access, TypeAccess); err == nil {
		t.Fatalf("token signed with another secret must fail")
	}
}

func TestIssuer_Expiry(t *testing.T) {
	iss := NewIssuer("secret", time.Minute, time.Hour)
	start := time.Now()
	iss.now = func() time.Time { return start }

	tok, err := iss.IssueAccess(1, "comum")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := iss.Parse(tok, TypeAccess); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

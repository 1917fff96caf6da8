package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestFromError_MapsKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Validation("invalid_status", "Status inválido."), http.StatusBadRequest, "invalid_status"},
		{"permission", Permission("forbidden", ""), http.StatusForbidden, "forbidden"},
		{"not found", NotFoundErr("appointment_not_found", ""), http.StatusNotFound, "appointment_not_found"},
		{"expired", Expired("expired_code", ""), http.StatusBadRequest, "expired_code"},
		{"delivery", Delivery("email_failed", "", errors.New("smtp down")), http.StatusBadGateway, "email_failed"},
		{"storage", Storage("file_missing", "", nil), http.StatusInternalServerError, "file_missing"},
		{"wrapped", fmt.Errorf("outer: %w", Permission("forbidden", "")), http.StatusForbidden, "forbidden"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, w.Code)
			}

			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tt.code {
				t.Fatalf("expected code %q, got %q", tt.code, body.Code)
			}
			if body.Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("ctx: %w", Storage("x", "", errors.New("io")))

	kind, ok := KindOf(err)
	if !ok || kind != KindStorage {
		t.Fatalf("expected storage kind, got %v %v", kind, ok)
	}
	if !IsKind(err, KindStorage) {
		t.Fatalf("expected IsKind true")
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatalf("plain error must not have a kind")
	}
	if !IsBusiness(ErrBusiness("time_conflict"), "time_conflict") {
		t.Fatalf("expected business match")
	}
}

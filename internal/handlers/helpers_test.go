package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		raw    string
		ok     bool
		status int
	}{
		{"42", true, http.StatusOK},
		{"0", false, http.StatusBadRequest},
		{"abc", false, http.StatusBadRequest},
		{"-1", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: tt.raw}}

		id, ok := idParam(c, "id")
		if ok != tt.ok {
			t.Fatalf("%q: expected ok=%v, got %v", tt.raw, tt.ok, ok)
		}
		if ok && id != 42 {
			t.Fatalf("expected 42, got %d", id)
		}
		if !ok && w.Code != tt.status {
			t.Fatalf("%q: expected %d, got %d", tt.raw, tt.status, w.Code)
		}
	}
}

func TestBindJSON_RejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst TokenRequest
	if bindJSON(c, &dst) {
		t.Fatalf("expected bind failure")
	}
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "invalid_request") {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acme/account-service/internal/api/middleware"
	"github.com/acme/account-service/internal/core/domain"
)

func TestTokenHandler_IssueRoundTrips(t *testing.T) {
	h := NewTokenHandler("test-secret", time.Hour)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/token", "")
	c.Set(middleware.ContextUser, &domain.User{
		Email: "jane@acme.com",
		Roles: []domain.Role{domain.RoleAccountant, domain.RoleUser},
	})

	if err := h.Issue(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] == "" || resp["expires_at"] == "" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(resp["token"], claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["email"] != "jane@acme.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	roles, _ := claims["roles"].([]any)
	if len(roles) != 2 {
		t.Fatalf("unexpected roles claim: %v", claims["roles"])
	}
}

func TestTokenHandler_RequiresAuthentication(t *testing.T) {
	h := NewTokenHandler("test-secret", time.Hour)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/token", "")

	if err := h.Issue(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

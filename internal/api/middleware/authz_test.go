package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/acme/account-service/internal/core/authz"
	"github.com/acme/account-service/internal/core/domain"
)

type stubAudit struct {
	actions  []domain.SecurityEventAction
	subjects []string
}

func (s *stubAudit) Log(ctx context.Context, action domain.SecurityEventAction, subject, object, path string) error {
	s.actions = append(s.actions, action)
	s.subjects = append(s.subjects, subject)
	return nil
}

func (s *stubAudit) Events(ctx context.Context) ([]*domain.SecurityEvent, error) {
	return nil, nil
}

func invokeAuthz(t *testing.T, user *domain.User, capability authz.Capability, audit *stubAudit) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/security/events/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(ContextUser, user)
	}

	mw := RequireCapability(capability, audit)
	return mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
}

func TestRequireCapability_Allowed(t *testing.T) {
	audit := &stubAudit{}
	user := &domain.User{Email: "auditor@acme.com", Roles: []domain.Role{domain.RoleAuditor}}

	if err := invokeAuthz(t, user, authz.CapViewSecurityEvents, audit); err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if len(audit.actions) != 0 {
		t.Fatalf("no event expected on success, got %v", audit.actions)
	}
}

func TestRequireCapability_DeniedIsAudited(t *testing.T) {
	audit := &stubAudit{}
	user := &domain.User{Email: "john@acme.com", Roles: []domain.Role{domain.RoleUser}}

	err := invokeAuthz(t, user, authz.CapViewSecurityEvents, audit)
	if err != domain.ErrAccessDenied {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if len(audit.actions) != 1 || audit.actions[0] != domain.ActionAccessDenied {
		t.Fatalf("expected ACCESS_DENIED event, got %v", audit.actions)
	}
	if audit.subjects[0] != "john@acme.com" {
		t.Fatalf("expected acting principal as subject, got %q", audit.subjects[0])
	}
}

func TestRequireCapability_NoUser(t *testing.T) {
	audit := &stubAudit{}

	err := invokeAuthz(t, nil, authz.CapManageUsers, audit)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(audit.actions) != 0 {
		t.Fatalf("unauthenticated requests are not audited, got %v", audit.actions)
	}
}

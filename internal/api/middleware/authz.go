package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/acme/account-service/internal/core/authz"
	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
	"github.com/acme/account-service/internal/metrics"
)

// RequireCapability gates a route on the authorization gate. A refusal is
// itself a security event: ACCESS_DENIED is appended before the 403 with
// "Access Denied!" goes out.
func RequireCapability(capability authz.Capability, audit ports.AuditLog) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextUser).(*domain.User)
			if user == nil {
				return domain.ErrInvalidCredentials
			}
			if !authz.Allowed(capability, user.Roles) {
				metrics.AccessDeniedTotal.Inc()
				path := c.Request().URL.Path
				if err := audit.Log(c.Request().Context(), domain.ActionAccessDenied, user.Email, path, path); err != nil {
					return err
				}
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}

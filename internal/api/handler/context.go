package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/acme/account-service/internal/api/middleware"
	"github.com/acme/account-service/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Auth
// middleware. Its absence means the route was wired without the middleware;
// reject with 401 rather than proceed unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextUser).(*domain.User)
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

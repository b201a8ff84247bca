package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the audit envelope: {timestamp, status, error, message, path}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Status:    code,
			Error:     http.StatusText(code),
			Message:   msg,
			Path:      c.Request().URL.Path,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes with their exact
	// client-facing messages.
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrBreachedPassword),
		errors.Is(err, domain.ErrPasswordReuse),
		errors.Is(err, domain.ErrGroupConflict),
		errors.Is(err, domain.ErrRoleNotHeld),
		errors.Is(err, domain.ErrProtectedRole),
		errors.Is(err, domain.ErrLastRole),
		errors.Is(err, domain.ErrLockAdmin),
		errors.Is(err, domain.ErrBadOperation),
		errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrDuplicatePayment),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrWrongPeriod),
		errors.Is(err, domain.ErrNegativeSalary):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserLocked):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

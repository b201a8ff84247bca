package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
)

// EventHandler exposes the audit trail to auditors.
type EventHandler struct {
	audit ports.AuditLog
}

func NewEventHandler(audit ports.AuditLog) *EventHandler {
	return &EventHandler{audit: audit}
}

// List handles GET /api/security/events/. Events come back in append order,
// oldest first.
//
// @Summary      List all security events
// @Tags         security
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}   domain.SecurityEvent
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/security/events/ [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.audit.Events(c.Request().Context())
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.SecurityEvent{}
	}
	return c.JSON(http.StatusOK, events)
}

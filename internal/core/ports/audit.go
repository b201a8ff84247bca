package ports

import (
	"context"

	"github.com/acme/account-service/internal/core/domain"
)

// AuditLog is the append-only recorder of security events.
//
// Log fills in the timestamp, defaults an empty subject to "Anonymous",
// and must not drop events: callers treat a returned error as fatal to the
// enclosing operation.
type AuditLog interface {
	Log(ctx context.Context, action domain.SecurityEventAction, subject, object, path string) error
	Events(ctx context.Context) ([]*domain.SecurityEvent, error)
}

package ports

import (
	"context"

	"github.com/acme/account-service/internal/core/domain"
)

// EventRepository persists the append-only security audit trail.
//
// Append assigns the event ID from a single monotonic sequence; the ID
// order observed by any one caller matches its append order. Events are
// never mutated or deleted.
type EventRepository interface {
	Append(ctx context.Context, event *domain.SecurityEvent) (*domain.SecurityEvent, error)
	// List returns all events ordered by ascending ID.
	List(ctx context.Context) ([]*domain.SecurityEvent, error)
}

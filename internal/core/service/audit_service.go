package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
	"github.com/acme/account-service/internal/metrics"
)

// AuditService implements ports.AuditLog on top of an EventRepository.
type AuditService struct {
	events ports.EventRepository
	log    zerolog.Logger
}

// NewAuditService returns an AuditLog backed by the given repository.
func NewAuditService(events ports.EventRepository, log zerolog.Logger) *AuditService {
	return &AuditService{events: events, log: log}
}

// Log appends one security event. An empty subject is recorded as
// "Anonymous". The append is atomic; a failed append is returned to the
// caller so the enclosing operation fails with it.
func (s *AuditService) Log(ctx context.Context, action domain.SecurityEventAction, subject, object, path string) error {
	if subject == "" {
		subject = domain.AnonymousSubject
	}
	event := &domain.SecurityEvent{
		Date:    time.Now().UTC(),
		Action:  action,
		Subject: subject,
		Object:  object,
		Path:    path,
	}

	appended, err := s.events.Append(ctx, event)
	if err != nil {
		s.log.Error().Err(err).
			Str("action", string(action)).
			Str("subject", subject).
			Msg("audit append failed")
		return fmt.Errorf("audit append: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(action)).Inc()
	s.log.Info().
		Int64("event_id", appended.ID).
		Str("action", string(action)).
		Str("subject", subject).
		Str("object", object).
		Msg("security event recorded")
	return nil
}

// Events returns the full trail ordered by ascending ID.
func (s *AuditService) Events(ctx context.Context) ([]*domain.SecurityEvent, error) {
	return s.events.List(ctx)
}

package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
)

func TestAuditService_AssignsOrderedIDs(t *testing.T) {
	events := newStubEventRepo()
	svc := NewAuditService(events, zerolog.Nop())

	actions := []domain.SecurityEventAction{
		domain.ActionCreateUser,
		domain.ActionLoginFailed,
		domain.ActionGrantRole,
	}
	for _, a := range actions {
		if err := svc.Log(context.Background(), a, "admin@acme.com", "obj", "/api/test"); err != nil {
			t.Fatalf("Log(%s): %v", a, err)
		}
	}

	listed, err := svc.Events(context.Background())
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(listed) != len(actions) {
		t.Fatalf("expected %d events, got %d", len(actions), len(listed))
	}
	for i, e := range listed {
		if e.Action != actions[i] {
			t.Fatalf("event %d action = %s, want %s", i, e.Action, actions[i])
		}
		if i > 0 && e.ID <= listed[i-1].ID {
			t.Fatalf("ids not strictly ascending: %d then %d", listed[i-1].ID, e.ID)
		}
		if e.Date.IsZero() {
			t.Fatalf("event %d has no timestamp", i)
		}
	}
}

func TestAuditService_EmptySubjectBecomesAnonymous(t *testing.T) {
	events := newStubEventRepo()
	svc := NewAuditService(events, zerolog.Nop())

	if err := svc.Log(context.Background(), domain.ActionAccessDenied, "", "/api/admin/user", "/api/admin/user"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if events.events[0].Subject != domain.AnonymousSubject {
		t.Fatalf("subject = %q, want Anonymous", events.events[0].Subject)
	}
}

func TestAuditService_AppendFailureSurfaces(t *testing.T) {
	events := newStubEventRepo()
	events.failNext = true
	svc := NewAuditService(events, zerolog.Nop())

	if err := svc.Log(context.Background(), domain.ActionCreateUser, "x", "y", "z"); err == nil {
		t.Fatalf("expected append failure to surface")
	}
}

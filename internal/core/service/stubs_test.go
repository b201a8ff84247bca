package service

import (
	"context"
	"errors"
	"sort"

	"github.com/acme/account-service/internal/core/domain"
)

// stubUserRepo is an in-memory user directory keyed by lower-cased email.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	key := domain.NormalizeEmail(user.Email)
	if _, exists := r.users[key]; exists {
		return nil, domain.ErrUserExists
	}
	stored := user.Clone()
	stored.Email = key
	if stored.ID == 0 {
		stored.ID = r.nextID
		r.nextID++
	}
	r.users[key] = stored
	return stored.Clone(), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user.Clone(), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	key := domain.NormalizeEmail(user.Email)
	if _, ok := r.users[key]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[key] = user.Clone()
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, email string) error {
	key := domain.NormalizeEmail(email)
	if _, ok := r.users[key]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, key)
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// stubEventRepo is an in-memory append-only event store. Setting failNext
// makes the next append fail, to exercise rollback paths.
type stubEventRepo struct {
	events   []*domain.SecurityEvent
	nextID   int64
	failNext bool
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{nextID: 1}
}

func (r *stubEventRepo) Append(_ context.Context, event *domain.SecurityEvent) (*domain.SecurityEvent, error) {
	if r.failNext {
		r.failNext = false
		return nil, errors.New("event store unavailable")
	}
	stored := *event
	stored.ID = r.nextID
	r.nextID++
	r.events = append(r.events, &stored)
	return &stored, nil
}

func (r *stubEventRepo) List(_ context.Context) ([]*domain.SecurityEvent, error) {
	out := make([]*domain.SecurityEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *stubEventRepo) actions() []domain.SecurityEventAction {
	actions := make([]domain.SecurityEventAction, 0, len(r.events))
	for _, e := range r.events {
		actions = append(actions, e.Action)
	}
	return actions
}

// stubPaymentRepo is an in-memory payroll store keyed by employee|period.
type stubPaymentRepo struct {
	payments map[string]*domain.Payment
	nextID   int64
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[string]*domain.Payment), nextID: 1}
}

func paymentKey(employee, period string) string {
	return employee + "|" + period
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	key := paymentKey(p.Employee, p.Period)
	if _, exists := r.payments[key]; exists {
		return domain.ErrDuplicatePayment
	}
	stored := *p
	stored.ID = r.nextID
	r.nextID++
	r.payments[key] = &stored
	return nil
}

func (r *stubPaymentRepo) FindByEmployeeAndPeriod(_ context.Context, employee, period string) (*domain.Payment, error) {
	p, ok := r.payments[paymentKey(employee, period)]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, p *domain.Payment) error {
	key := paymentKey(p.Employee, p.Period)
	if _, ok := r.payments[key]; !ok {
		return domain.ErrPaymentNotFound
	}
	stored := *p
	r.payments[key] = &stored
	return nil
}

func (r *stubPaymentRepo) ListByEmployee(_ context.Context, employee string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.Employee == employee {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

// plainHasher is a transparent hasher for tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
	"github.com/acme/account-service/internal/metrics"
)

// BruteForceThreshold is the number of consecutive failed authentication
// attempts that locks a non-admin account.
const BruteForceThreshold = 5

// LockoutTracker consumes authentication outcomes and drives the per-user
// lockout state machine. It must be called synchronously on the request
// path: the lock set by the fifth failure has to be visible to the sixth
// attempt.
type LockoutTracker struct {
	users     ports.UserRepository
	audit     ports.AuditLog
	locks     *UserLocks
	threshold int
	log       zerolog.Logger
}

// NewLockoutTracker builds a tracker over the shared user directory and
// audit log. The locks table must be the same one used by the account
// service so that both serialize on the same per-user critical sections.
func NewLockoutTracker(users ports.UserRepository, audit ports.AuditLog, locks *UserLocks, log zerolog.Logger) *LockoutTracker {
	return &LockoutTracker{
		users:     users,
		audit:     audit,
		locks:     locks,
		threshold: BruteForceThreshold,
		log:       log,
	}
}

// OnAuthenticationFailure records a failed attempt against the principal.
//
// Unknown principals only produce a LOGIN_FAILED event. Administrators are
// exempt from counting and locking entirely. For everyone else the counter
// is incremented and, on reaching the threshold while still unlocked, the
// account is locked with BRUTE_FORCE and LOCK_USER events appended after
// the LOGIN_FAILED one.
func (t *LockoutTracker) OnAuthenticationFailure(ctx context.Context, email, path string) error {
	key := domain.NormalizeEmail(email)
	unlock := t.locks.Lock(key)
	defer unlock()

	user, err := t.users.FindByEmail(ctx, key)
	if err == domain.ErrUserNotFound {
		return t.audit.Log(ctx, domain.ActionLoginFailed, email, path, path)
	}
	if err != nil {
		return fmt.Errorf("lockout: find user: %w", err)
	}

	if user.IsAdmin() {
		return t.audit.Log(ctx, domain.ActionLoginFailed, email, path, path)
	}

	snapshot := user.Clone()
	user.FailedAttempts++
	if err := t.users.Update(ctx, user); err != nil {
		return fmt.Errorf("lockout: persist attempts: %w", err)
	}
	if err := t.audit.Log(ctx, domain.ActionLoginFailed, email, path, path); err != nil {
		t.rollback(ctx, snapshot)
		return err
	}

	if user.FailedAttempts < t.threshold || user.Locked {
		return nil
	}

	if err := t.audit.Log(ctx, domain.ActionBruteForce, email, path, path); err != nil {
		return err
	}
	user.Locked = true
	if err := t.users.Update(ctx, user); err != nil {
		return fmt.Errorf("lockout: persist lock: %w", err)
	}
	if err := t.audit.Log(ctx, domain.ActionLockUser, email, "Lock user "+user.Email, path); err != nil {
		return err
	}

	metrics.LockoutsTotal.Inc()
	t.log.Warn().
		Str("email", user.Email).
		Int("failed_attempts", user.FailedAttempts).
		Msg("account locked after repeated authentication failures")
	return nil
}

// OnAuthenticationSuccess resets the failure counter. The reset is only
// persisted when the counter was non-zero; successes are not audited.
func (t *LockoutTracker) OnAuthenticationSuccess(ctx context.Context, email string) error {
	key := domain.NormalizeEmail(email)
	unlock := t.locks.Lock(key)
	defer unlock()

	user, err := t.users.FindByEmail(ctx, key)
	if err == domain.ErrUserNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lockout: find user: %w", err)
	}

	if user.FailedAttempts == 0 {
		return nil
	}
	user.FailedAttempts = 0
	if err := t.users.Update(ctx, user); err != nil {
		return fmt.Errorf("lockout: reset attempts: %w", err)
	}
	return nil
}

func (t *LockoutTracker) rollback(ctx context.Context, snapshot *domain.User) {
	if err := t.users.Update(ctx, snapshot); err != nil {
		t.log.Error().Err(err).Str("email", snapshot.Email).Msg("lockout rollback failed")
	}
}

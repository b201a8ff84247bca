package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
)

// Authenticator verifies per-request credentials and feeds every outcome
// into the lockout tracker before the caller sees the result.
type Authenticator struct {
	users   ports.UserRepository
	hasher  ports.Hasher
	tracker ports.AuthenticationTracker
	log     zerolog.Logger
}

// NewAuthenticator wires the credential check against the user directory.
func NewAuthenticator(users ports.UserRepository, hasher ports.Hasher, tracker ports.AuthenticationTracker, log zerolog.Logger) *Authenticator {
	return &Authenticator{users: users, hasher: hasher, tracker: tracker, log: log}
}

// Authenticate resolves the principal and verifies the password.
//
// A locked account is rejected before the credential check and does not
// count as a failed attempt. Unknown principals and wrong passwords are
// reported to the tracker synchronously, so the lock triggered by the
// fifth failure is in place before this call returns.
func (a *Authenticator) Authenticate(ctx context.Context, email, password, path string) (*domain.User, error) {
	key := domain.NormalizeEmail(email)

	user, err := a.users.FindByEmail(ctx, key)
	if err == domain.ErrUserNotFound {
		if trackErr := a.tracker.OnAuthenticationFailure(ctx, key, path); trackErr != nil {
			return nil, trackErr
		}
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if user.Locked {
		return nil, domain.ErrUserLocked
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		if trackErr := a.tracker.OnAuthenticationFailure(ctx, key, path); trackErr != nil {
			return nil, trackErr
		}
		return nil, domain.ErrInvalidCredentials
	}

	if err := a.tracker.OnAuthenticationSuccess(ctx, key); err != nil {
		return nil, err
	}
	return user, nil
}

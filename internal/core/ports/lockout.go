package ports

import "context"

// AuthenticationTracker consumes authentication outcomes. It is invoked
// synchronously on the request path so that a lock triggered by the Nth
// failure is visible to the very next attempt.
type AuthenticationTracker interface {
	OnAuthenticationFailure(ctx context.Context, email, path string) error
	OnAuthenticationSuccess(ctx context.Context, email string) error
}

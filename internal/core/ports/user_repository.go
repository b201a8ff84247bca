package ports

import (
	"context"

	"github.com/acme/account-service/internal/core/domain"
)

// UserRepository defines persistence for the user directory.
//
// Email lookups are case-insensitive. Create assigns the surrogate ID when
// the user carries none, and returns domain.ErrUserExists on a duplicate
// email. Implementations must apply Update atomically per record so that
// concurrent read-modify-write sequences on the same user cannot lose
// writes to roles, locked, or failed_attempts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, email string) error
	// List returns all users ordered by ascending ID.
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

package ports

import "context"

// RegisterInput carries a validated signup request into the account service.
type RegisterInput struct {
	Name     string
	Lastname string
	Email    string
	Password string
}

// ChangeRoleInput carries a role grant/removal request.
// Operation is "GRANT" or "REMOVE" (case-insensitive); anything else fails
// with domain.ErrBadOperation. Actor is the acting principal recorded in
// the audit trail.
type ChangeRoleInput struct {
	Email     string
	Role      string
	Operation string
	Actor     string
}

// ChangeAccessInput carries a lock/unlock request. Operation is "LOCK" or
// "UNLOCK" (case-insensitive).
type ChangeAccessInput struct {
	Email     string
	Operation string
	Actor     string
}

// UserView is the password-free representation of a user returned by the
// API. Roles are sorted ascending.
type UserView struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Lastname string   `json:"lastname"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// AccountService orchestrates registration, credential lifecycle, role
// assignment, and lock state over the user directory. Every state change
// is coupled to its audit append: if the append fails the mutation is not
// visible and the operation fails.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*UserView, error)
	ChangePassword(ctx context.Context, email, newPassword string) (string, error)
	ChangeRole(ctx context.Context, in ChangeRoleInput) (*UserView, error)
	ChangeAccess(ctx context.Context, in ChangeAccessInput) (string, error)
	DeleteUser(ctx context.Context, email, actor string) error
	ListUsers(ctx context.Context) ([]UserView, error)
}

package domain

import (
	"sort"
	"strings"
)

// User is the identity and access record owned by the user directory.
// Emails are stored lower-cased and compared case-insensitively everywhere.
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	Roles          []Role `json:"roles"`
	Locked         bool   `json:"-"`
	FailedAttempts int    `json:"-"`
}

// IsAdmin reports whether the user holds any administrative-group role.
func (u *User) IsAdmin() bool {
	return AnyAdminGroup(u.Roles)
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(r Role) bool {
	return HasRole(u.Roles, r)
}

// RoleNames returns the user's role names sorted ascending, the form used
// in API views.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r))
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the user, including the role set.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]Role(nil), u.Roles...)
	return &clone
}

// NormalizeEmail lower-cases an email for storage and lookup keys.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

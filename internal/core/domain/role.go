package domain

import "strings"

// Role is one of the closed set of access tags stored on a user.
// Tags are partitioned into two disjoint groups: the administrative group
// and the business group. A single user never holds roles from both.
type Role string

const (
	RoleAdministrator Role = "ROLE_ADMINISTRATOR"
	RoleUser          Role = "ROLE_USER"
	RoleAccountant    Role = "ROLE_ACCOUNTANT"
	RoleAuditor       Role = "ROLE_AUDITOR"
)

const rolePrefix = "ROLE_"

var adminGroup = map[Role]struct{}{
	RoleAdministrator: {},
}

var businessGroup = map[Role]struct{}{
	RoleUser:       {},
	RoleAccountant: {},
	RoleAuditor:    {},
}

// IsAdminGroup reports whether the role belongs to the administrative group.
func (r Role) IsAdminGroup() bool {
	_, ok := adminGroup[r]
	return ok
}

// IsBusinessGroup reports whether the role belongs to the business group.
func (r Role) IsBusinessGroup() bool {
	_, ok := businessGroup[r]
	return ok
}

// Plain returns the role name without the canonical prefix, e.g. "ACCOUNTANT".
func (r Role) Plain() string {
	return strings.TrimPrefix(string(r), rolePrefix)
}

// AnyAdminGroup reports whether any role in the set is administrative.
func AnyAdminGroup(roles []Role) bool {
	for _, r := range roles {
		if r.IsAdminGroup() {
			return true
		}
	}
	return false
}

// AnyBusinessGroup reports whether any role in the set is a business role.
func AnyBusinessGroup(roles []Role) bool {
	for _, r := range roles {
		if r.IsBusinessGroup() {
			return true
		}
	}
	return false
}

// ParseRole resolves a raw role token against the closed role set.
// Matching is case-insensitive and the canonical "ROLE_" prefix is optional,
// so both "accountant" and "ROLE_ACCOUNTANT" resolve to RoleAccountant.
func ParseRole(raw string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return "", ErrRoleNotFound
	}
	if !strings.HasPrefix(normalized, rolePrefix) {
		normalized = rolePrefix + normalized
	}
	role := Role(normalized)
	if !role.IsAdminGroup() && !role.IsBusinessGroup() {
		return "", ErrRoleNotFound
	}
	return role, nil
}

// CanGrant reports whether target may be added to the current role set.
// Granting fails when the resulting set would mix the administrative and
// business groups.
func CanGrant(current []Role, target Role) error {
	if target.IsAdminGroup() && AnyBusinessGroup(current) {
		return ErrGroupConflict
	}
	if target.IsBusinessGroup() && AnyAdminGroup(current) {
		return ErrGroupConflict
	}
	return nil
}

// CanRevoke reports whether target may be removed from the current role set.
// Administrative roles are never revocable through this path, and the set
// must not become empty.
func CanRevoke(current []Role, target Role) error {
	if !HasRole(current, target) {
		return ErrRoleNotHeld
	}
	if target.IsAdminGroup() {
		return ErrProtectedRole
	}
	if len(current) == 1 {
		return ErrLastRole
	}
	return nil
}

// HasRole reports whether the set contains the given role.
func HasRole(roles []Role, target Role) bool {
	for _, r := range roles {
		if r == target {
			return true
		}
	}
	return false
}

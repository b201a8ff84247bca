// Package authz implements the authorization gate: a pure decision over a
// closed capability enumeration and a caller's role set. Capabilities are
// checked by each operation's entry point before any mutation.
package authz

import "github.com/acme/account-service/internal/core/domain"

// Capability is an abstract permission, distinct from the role tags stored
// on a user.
type Capability string

const (
	CapChangeOwnPassword  Capability = "change_own_password"
	CapViewOwnPayrolls    Capability = "view_own_payrolls"
	CapManagePayrolls     Capability = "manage_payrolls"
	CapManageUsers        Capability = "manage_users"
	CapViewSecurityEvents Capability = "view_security_events"
)

// grants maps each capability to the roles that hold it.
var grants = map[Capability][]domain.Role{
	CapChangeOwnPassword: {
		domain.RoleAdministrator,
		domain.RoleUser,
		domain.RoleAccountant,
		domain.RoleAuditor,
	},
	CapViewOwnPayrolls: {
		domain.RoleUser,
		domain.RoleAccountant,
	},
	CapManagePayrolls: {
		domain.RoleAccountant,
	},
	CapManageUsers: {
		domain.RoleAdministrator,
	},
	CapViewSecurityEvents: {
		domain.RoleAuditor,
	},
}

// Allowed reports whether any of the caller's roles grants the capability.
func Allowed(capability Capability, roles []domain.Role) bool {
	for _, granted := range grants[capability] {
		if domain.HasRole(roles, granted) {
			return true
		}
	}
	return false
}

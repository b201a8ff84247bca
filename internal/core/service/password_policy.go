package service

// DefaultBreachedPasswords is the fixed deny-list of known-compromised
// passwords. Loaded once at construction; there is no runtime mutation path.
func DefaultBreachedPasswords() []string {
	return []string{
		"PasswordForJanuary", "PasswordForFebruary", "PasswordForMarch",
		"PasswordForApril", "PasswordForMay", "PasswordForJune",
		"PasswordForJuly", "PasswordForAugust", "PasswordForSeptember",
		"PasswordForOctober", "PasswordForNovember", "PasswordForDecember",
	}
}

// PasswordPolicy performs breach and reuse checks on candidate passwords.
// Minimum length is enforced at the boundary before the policy is consulted.
type PasswordPolicy struct {
	breached map[string]struct{}
}

// NewPasswordPolicy builds a policy from an immutable deny-list.
func NewPasswordPolicy(denylist []string) *PasswordPolicy {
	breached := make(map[string]struct{}, len(denylist))
	for _, pw := range denylist {
		breached[pw] = struct{}{}
	}
	return &PasswordPolicy{breached: breached}
}

// IsBreached reports whether the password appears in the deny-list.
func (p *PasswordPolicy) IsBreached(password string) bool {
	_, ok := p.breached[password]
	return ok
}

// IsReuse reports whether the candidate verifies against the current hash,
// i.e. the "new" password is the one already in use.
func (p *PasswordPolicy) IsReuse(candidate, currentHash string, verify func(password, hash string) bool) bool {
	return verify(candidate, currentHash)
}

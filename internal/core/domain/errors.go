package domain

import "errors"

// User directory and credential policy errors. The messages are the exact
// strings surfaced to API clients.
var (
	ErrUserExists       = errors.New("User exist!")
	ErrUserNotFound     = errors.New("User not found!")
	ErrBreachedPassword = errors.New("The password is in the hacker's database!")
	ErrPasswordReuse    = errors.New("The passwords must be different!")
)

// Role policy errors.
var (
	ErrRoleNotFound  = errors.New("Role not found!")
	ErrGroupConflict = errors.New("The user cannot combine administrative and business roles!")
	ErrRoleNotHeld   = errors.New("The user does not have a role!")
	ErrProtectedRole = errors.New("Can't remove ADMINISTRATOR role!")
	ErrLastRole      = errors.New("The user must have at least one role!")
)

// Access change and deletion errors.
var (
	ErrLockAdmin    = errors.New("Can't lock the ADMINISTRATOR!")
	ErrBadOperation = errors.New("Bad operation!")
)

// Authentication and authorization errors.
var (
	ErrInvalidCredentials = errors.New("Bad credentials")
	ErrUserLocked         = errors.New("User account is locked")
	ErrAccessDenied       = errors.New("Access Denied!")
)

// Payment ledger errors.
var (
	ErrEmployeeNotFound = errors.New("Employee not found")
	ErrDuplicatePayment = errors.New("Duplicate employee-period")
	ErrPaymentNotFound  = errors.New("Payment not found")
	ErrWrongPeriod      = errors.New("Wrong date!")
	ErrNegativeSalary   = errors.New("Salary cannot be negative!")
)

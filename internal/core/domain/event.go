package domain

import "time"

// SecurityEventAction is the closed enumeration of auditable actions.
type SecurityEventAction string

const (
	ActionCreateUser     SecurityEventAction = "CREATE_USER"
	ActionLoginFailed    SecurityEventAction = "LOGIN_FAILED"
	ActionBruteForce     SecurityEventAction = "BRUTE_FORCE"
	ActionLockUser       SecurityEventAction = "LOCK_USER"
	ActionUnlockUser     SecurityEventAction = "UNLOCK_USER"
	ActionChangePassword SecurityEventAction = "CHANGE_PASSWORD"
	ActionGrantRole      SecurityEventAction = "GRANT_ROLE"
	ActionRemoveRole     SecurityEventAction = "REMOVE_ROLE"
	ActionDeleteUser     SecurityEventAction = "DELETE_USER"
	ActionAccessDenied   SecurityEventAction = "ACCESS_DENIED"
)

// AnonymousSubject is recorded when no acting principal is known.
const AnonymousSubject = "Anonymous"

// SecurityEvent is one immutable audit record. The ID is assigned at append
// time, increases monotonically, and defines the total retrieval order.
type SecurityEvent struct {
	ID      int64               `json:"id"`
	Date    time.Time           `json:"date"`
	Action  SecurityEventAction `json:"action"`
	Subject string              `json:"subject"`
	Object  string              `json:"object"`
	Path    string              `json:"path"`
}

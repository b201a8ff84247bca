package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
)

// Logical endpoints recorded in the audit trail.
const (
	pathSignup     = "/api/auth/signup"
	pathChangePass = "/api/auth/changepass"
	pathUserRole   = "/api/admin/user/role"
	pathUserAccess = "/api/admin/user/access"
	pathUserDelete = "/api/admin/user"
)

// AccountService implements ports.AccountService over the user directory.
//
// Every operation targeting a user runs inside that user's critical
// section; registration additionally serializes globally so the first-user
// rule cannot race. A mutation whose audit append fails is rolled back.
type AccountService struct {
	users  ports.UserRepository
	audit  ports.AuditLog
	hasher ports.Hasher
	policy *PasswordPolicy
	locks  *UserLocks
	log    zerolog.Logger

	registerMu sync.Mutex
}

// NewAccountService wires the account service. The locks table is shared
// with the lockout tracker.
func NewAccountService(
	users ports.UserRepository,
	audit ports.AuditLog,
	hasher ports.Hasher,
	policy *PasswordPolicy,
	locks *UserLocks,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:  users,
		audit:  audit,
		hasher: hasher,
		policy: policy,
		locks:  locks,
		log:    log,
	}
}

// Register creates a new user. The first user ever created is granted
// ADMINISTRATOR; every later one gets the base USER role.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*ports.UserView, error) {
	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	email := domain.NormalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		s.log.Info().Str("email", email).Msg("registration rejected, email taken")
		return nil, domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("register: %w", err)
	}

	if s.policy.IsBreached(in.Password) {
		return nil, domain.ErrBreachedPassword
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	role := domain.RoleUser
	if count == 0 {
		role = domain.RoleAdministrator
	}

	user := &domain.User{
		Name:         in.Name,
		Lastname:     in.Lastname,
		Email:        email,
		PasswordHash: hash,
		Roles:        []domain.Role{role},
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	if err := s.audit.Log(ctx, domain.ActionCreateUser, domain.AnonymousSubject, created.Email, pathSignup); err != nil {
		if delErr := s.users.Delete(ctx, created.Email); delErr != nil {
			s.log.Error().Err(delErr).Str("email", created.Email).Msg("registration rollback failed")
		}
		return nil, err
	}

	s.log.Info().Str("email", created.Email).Str("role", string(role)).Msg("user registered")
	return toView(created), nil
}

// ChangePassword re-hashes and stores a new password after the breach and
// reuse checks pass. Breach takes precedence when both apply.
func (s *AccountService) ChangePassword(ctx context.Context, email, newPassword string) (string, error) {
	key := domain.NormalizeEmail(email)
	unlock := s.locks.Lock(key)
	defer unlock()

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		return "", err
	}

	if s.policy.IsBreached(newPassword) {
		return "", domain.ErrBreachedPassword
	}
	if s.policy.IsReuse(newPassword, user.PasswordHash, s.hasher.Verify) {
		return "", domain.ErrPasswordReuse
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("change password: hash: %w", err)
	}

	snapshot := user.Clone()
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}
	if err := s.audit.Log(ctx, domain.ActionChangePassword, user.Email, user.Email, pathChangePass); err != nil {
		s.rollback(ctx, snapshot)
		return "", err
	}

	s.log.Info().Str("email", user.Email).Msg("password changed")
	return user.Email, nil
}

// ChangeRole grants or removes a role on the target user.
func (s *AccountService) ChangeRole(ctx context.Context, in ports.ChangeRoleInput) (*ports.UserView, error) {
	key := domain.NormalizeEmail(in.Email)
	unlock := s.locks.Lock(key)
	defer unlock()

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		return nil, err
	}
	target, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	snapshot := user.Clone()
	switch strings.ToUpper(in.Operation) {
	case "GRANT":
		if err := domain.CanGrant(user.Roles, target); err != nil {
			return nil, err
		}
		if !user.HasRole(target) {
			user.Roles = append(user.Roles, target)
			sortRoles(user.Roles)
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("change role: %w", err)
		}
		object := "Grant role " + target.Plain() + " to " + user.Email
		if err := s.audit.Log(ctx, domain.ActionGrantRole, in.Actor, object, pathUserRole); err != nil {
			s.rollback(ctx, snapshot)
			return nil, err
		}

	case "REMOVE":
		if err := domain.CanRevoke(user.Roles, target); err != nil {
			return nil, err
		}
		user.Roles = removeRole(user.Roles, target)
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("change role: %w", err)
		}
		object := "Remove role " + target.Plain() + " from " + user.Email
		if err := s.audit.Log(ctx, domain.ActionRemoveRole, in.Actor, object, pathUserRole); err != nil {
			s.rollback(ctx, snapshot)
			return nil, err
		}

	default:
		return nil, domain.ErrBadOperation
	}

	s.log.Info().
		Str("email", user.Email).
		Str("role", target.Plain()).
		Str("operation", strings.ToUpper(in.Operation)).
		Str("actor", in.Actor).
		Msg("role changed")
	return toView(user), nil
}

// ChangeAccess locks or unlocks the target user. Locking an administrator
// fails. An explicit LOCK on an already-locked user skips the state write
// but still appends LOCK_USER; UNLOCK always resets the failure counter.
func (s *AccountService) ChangeAccess(ctx context.Context, in ports.ChangeAccessInput) (string, error) {
	key := domain.NormalizeEmail(in.Email)
	unlock := s.locks.Lock(key)
	defer unlock()

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		return "", err
	}

	switch strings.ToUpper(in.Operation) {
	case "LOCK":
		if user.IsAdmin() {
			return "", domain.ErrLockAdmin
		}
		snapshot := user.Clone()
		if !user.Locked {
			user.Locked = true
			if err := s.users.Update(ctx, user); err != nil {
				return "", fmt.Errorf("change access: %w", err)
			}
		}
		if err := s.audit.Log(ctx, domain.ActionLockUser, in.Actor, "Lock user "+user.Email, pathUserAccess); err != nil {
			s.rollback(ctx, snapshot)
			return "", err
		}
		s.log.Info().Str("email", user.Email).Str("actor", in.Actor).Msg("user locked")
		return "User " + user.Email + " locked!", nil

	case "UNLOCK":
		snapshot := user.Clone()
		user.Locked = false
		user.FailedAttempts = 0
		if err := s.users.Update(ctx, user); err != nil {
			return "", fmt.Errorf("change access: %w", err)
		}
		if err := s.audit.Log(ctx, domain.ActionUnlockUser, in.Actor, "Unlock user "+user.Email, pathUserAccess); err != nil {
			s.rollback(ctx, snapshot)
			return "", err
		}
		s.log.Info().Str("email", user.Email).Str("actor", in.Actor).Msg("user unlocked")
		return "User " + user.Email + " unlocked!", nil
	}

	return "", domain.ErrBadOperation
}

// DeleteUser removes a non-admin user from the directory.
func (s *AccountService) DeleteUser(ctx context.Context, email, actor string) error {
	key := domain.NormalizeEmail(email)
	unlock := s.locks.Lock(key)
	defer unlock()

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return domain.ErrProtectedRole
	}

	if err := s.users.Delete(ctx, user.Email); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.audit.Log(ctx, domain.ActionDeleteUser, actor, user.Email, pathUserDelete); err != nil {
		// Restore the record with its original ID so the deletion stays
		// invisible when the audit append fails.
		if _, createErr := s.users.Create(ctx, user); createErr != nil {
			s.log.Error().Err(createErr).Str("email", user.Email).Msg("delete rollback failed")
		}
		return err
	}

	s.log.Info().Str("email", user.Email).Str("actor", actor).Msg("user deleted")
	return nil
}

// ListUsers returns all users ordered by ascending ID.
func (s *AccountService) ListUsers(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	views := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, *toView(u))
	}
	return views, nil
}

func (s *AccountService) rollback(ctx context.Context, snapshot *domain.User) {
	if err := s.users.Update(ctx, snapshot); err != nil {
		s.log.Error().Err(err).Str("email", snapshot.Email).Msg("user mutation rollback failed")
	}
}

func toView(u *domain.User) *ports.UserView {
	return &ports.UserView{
		ID:       u.ID,
		Name:     u.Name,
		Lastname: u.Lastname,
		Email:    u.Email,
		Roles:    u.RoleNames(),
	}
}

func sortRoles(roles []domain.Role) {
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
}

func removeRole(roles []domain.Role, target domain.Role) []domain.Role {
	out := roles[:0]
	for _, r := range roles {
		if r != target {
			out = append(out, r)
		}
	}
	return out
}

package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/service"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (s *stubUserRepo) Update(ctx context.Context, u *domain.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, email string) error   { return nil }
func (s *stubUserRepo) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }
func (s *stubUserRepo) Count(ctx context.Context) (int64, error)         { return 0, nil }

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(password, hash string) bool    { return "hashed:"+password == hash }

type noopTracker struct {
	failures int
}

func (t *noopTracker) OnAuthenticationFailure(ctx context.Context, email, path string) error {
	t.failures++
	return nil
}

func (t *noopTracker) OnAuthenticationSuccess(ctx context.Context, email string) error {
	return nil
}

func newTestAuth(users *stubUserRepo) echo.MiddlewareFunc {
	authn := service.NewAuthenticator(users, plainHasher{}, &noopTracker{}, zerolog.Nop())
	return Auth(authn, users, testSecret)
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authorization string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/empl/payment", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func basicHeader(email, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+password))
}

func TestAuth_BasicSuccess(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{
		"john@acme.com": {
			ID:           1,
			Email:        "john@acme.com",
			PasswordHash: "hashed:CorrectHorseBattery",
			Roles:        []domain.Role{domain.RoleUser},
		},
	}}

	c, err := invoke(t, newTestAuth(users), basicHeader("john@acme.com", "CorrectHorseBattery"))
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	user, _ := c.Get(ContextUser).(*domain.User)
	if user == nil || user.Email != "john@acme.com" {
		t.Fatalf("expected user in context, got %+v", user)
	}
	if principal, _ := c.Get(ContextPrincipal).(string); principal != "john@acme.com" {
		t.Fatalf("expected principal, got %q", principal)
	}
}

func TestAuth_BasicWrongPassword(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{
		"john@acme.com": {
			ID:           1,
			Email:        "john@acme.com",
			PasswordHash: "hashed:CorrectHorseBattery",
			Roles:        []domain.Role{domain.RoleUser},
		},
	}}

	_, err := invoke(t, newTestAuth(users), basicHeader("john@acme.com", "wrong"))
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{}}

	_, err := invoke(t, newTestAuth(users), "")
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_MalformedBasicPayload(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{}}

	_, err := invoke(t, newTestAuth(users), "Basic not-base64!!!")
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuth_BearerSuccess(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{
		"jane@acme.com": {
			ID:    2,
			Email: "jane@acme.com",
			Roles: []domain.Role{domain.RoleAccountant},
		},
	}}

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "jane@acme.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	c, err := invoke(t, newTestAuth(users), "Bearer "+token)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	user, _ := c.Get(ContextUser).(*domain.User)
	if user == nil || user.Email != "jane@acme.com" {
		t.Fatalf("expected user in context, got %+v", user)
	}
}

func TestAuth_BearerWrongSignature(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{}}

	token := signToken(t, "other-secret", jwt.MapClaims{
		"email": "jane@acme.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := invoke(t, newTestAuth(users), "Bearer "+token)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_BearerExpired(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{}}

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "jane@acme.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	_, err := invoke(t, newTestAuth(users), "Bearer "+token)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_BearerLockedUser(t *testing.T) {
	users := &stubUserRepo{users: map[string]*domain.User{
		"jane@acme.com": {
			ID:     2,
			Email:  "jane@acme.com",
			Roles:  []domain.Role{domain.RoleUser},
			Locked: true,
		},
	}}

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "jane@acme.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := invoke(t, newTestAuth(users), "Bearer "+token)
	if err != domain.ErrUserLocked {
		t.Fatalf("expected ErrUserLocked, got %v", err)
	}
}

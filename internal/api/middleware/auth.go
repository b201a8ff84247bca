package middleware

import (
	"encoding/base64"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/acme/account-service/internal/core/domain"
	"github.com/acme/account-service/internal/core/ports"
	"github.com/acme/account-service/internal/core/service"
	"github.com/acme/account-service/internal/metrics"
)

// Context keys populated by Auth.
const (
	ContextUser      = "user"
	ContextPrincipal = "principal"
)

// Auth authenticates every request, from Basic credentials checked against
// the user directory or from a bearer token issued by the token endpoint.
// The authenticated *domain.User and principal email are set on the echo
// context.
//
// The Basic path feeds the lockout tracker: the authenticator reports
// every outcome synchronously before this middleware returns, so the lock
// set by the fifth bad attempt rejects the sixth.
func Auth(authn *service.Authenticator, users ports.UserRepository, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrInvalidCredentials
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 {
				return domain.ErrInvalidCredentials
			}

			var (
				user *domain.User
				err  error
			)
			switch {
			case strings.EqualFold(parts[0], "basic"):
				user, err = basicAuth(c, authn, parts[1])
			case strings.EqualFold(parts[0], "bearer"):
				user, err = bearerAuth(c, users, jwtSecret, parts[1])
			default:
				return domain.ErrInvalidCredentials
			}
			if err != nil {
				if err == domain.ErrUserLocked {
					metrics.LoginFailuresTotal.WithLabelValues("locked").Inc()
				} else if err == domain.ErrInvalidCredentials {
					metrics.LoginFailuresTotal.WithLabelValues("bad_credentials").Inc()
				}
				return err
			}

			c.Set(ContextUser, user)
			c.Set(ContextPrincipal, user.Email)
			return next(c)
		}
	}
}

func basicAuth(c echo.Context, authn *service.Authenticator, payload string) (*domain.User, error) {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	email, password, ok := strings.Cut(string(decoded), ":")
	if !ok || email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return authn.Authenticate(c.Request().Context(), email, password, c.Request().URL.Path)
}

func bearerAuth(c echo.Context, users ports.UserRepository, jwtSecret, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	// The token only names the principal; roles and lock state always come
	// from the directory so revocations take effect immediately.
	user, err := users.FindByEmail(c.Request().Context(), domain.NormalizeEmail(email))
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.Locked {
		return nil, domain.ErrUserLocked
	}
	return user, nil
}

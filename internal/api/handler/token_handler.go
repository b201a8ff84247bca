package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenHandler exchanges Basic credentials for a signed bearer token.
type TokenHandler struct {
	secret string
	ttl    time.Duration
}

func NewTokenHandler(secret string, ttl time.Duration) *TokenHandler {
	return &TokenHandler{secret: secret, ttl: ttl}
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Issue handles POST /api/auth/token. The Auth middleware has already
// verified the Basic credentials; the token carries only the principal
// email, so role and lock changes apply to it immediately.
//
// @Summary      Exchange Basic credentials for a bearer token
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/token [post]
func (h *TokenHandler) Issue(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	expiresAt := now.Add(h.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"roles": user.RoleNames(),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(h.secret))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		Token:     signed,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

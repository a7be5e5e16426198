package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

// Context keys set by Auth.
const (
	ContextUser     = "user"
	ContextUsername = "username"
	ContextRole     = "role"
)

// TokenAuthenticator resolves a bearer token to an Active user.
type TokenAuthenticator interface {
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}

// Auth requires "Authorization: Bearer <token>" and stores the resolved user
// on the context. Websocket upgrades may pass the token as ?access_token=
// since browsers cannot set headers on them.
func Auth(auth TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return domain.ErrAuthFailure
			}

			user, err := auth.CurrentUser(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(ContextUser, user)
			c.Set(ContextUsername, user.Username)
			c.Set(ContextRole, string(user.Role))
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		if c.IsWebSocket() {
			t := c.QueryParam("access_token")
			return t, t != ""
		}
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// UserFrom returns the user stored by Auth.
func UserFrom(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(ContextUser).(*domain.User)
	return u, ok && u != nil
}

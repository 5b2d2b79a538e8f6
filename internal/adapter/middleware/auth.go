package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ticketflow-backend/internal/domain/user"
	"ticketflow-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

const actorKey = "auth.actor"

// TokenVerifier resolves a bearer token to its user. Satisfied by the auth
// usecase; tests plug in a function.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*user.User, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user on the context.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No token provided. Authorization denied"})
			}
			usr, err := verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					msg = "Token has expired"
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
			}
			c.Set(actorKey, usr)
			return next(c)
		}
	}
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := Actor(c)
			if actor == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No token provided. Authorization denied"})
			}
			for _, r := range roles {
				if actor.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
		}
	}
}

// Actor returns the authenticated user set by RequireAuth, or nil.
func Actor(c echo.Context) *user.User {
	if u, ok := c.Get(actorKey).(*user.User); ok {
		return u
	}
	return nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

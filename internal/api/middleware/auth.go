package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brandbook/entries-api/internal/core/domain"
)

// Context keys set on success.
const (
	UserKey  = "user"
	TokenKey = "token"
)

const msgPleaseAuthenticate = "Please authenticate."

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// Auth rejects requests without a valid bearer token and stores the resolved
// user and raw token on the context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgPleaseAuthenticate)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgPleaseAuthenticate)
			}
			token := strings.TrimSpace(parts[1])

			user, err := verifier.VerifyToken(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgPleaseAuthenticate).SetInternal(err)
			}

			c.Set(UserKey, user)
			c.Set(TokenKey, token)

			return next(c)
		}
	}
}

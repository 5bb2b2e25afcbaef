package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brandbook/entries-api/internal/api/middleware"
	"github.com/brandbook/entries-api/internal/core/domain"
)

const (
	ContextUserKey  = middleware.UserKey
	ContextTokenKey = middleware.TokenKey
)

// ctxUser returns the user the Auth middleware resolved for this request.
// A missing user means the route was mounted without the middleware.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(ContextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Please authenticate.")
	}
	return user, nil
}

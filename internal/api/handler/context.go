package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webstore/storefront-api/internal/core/domain"
)

// Context keys set by the Auth middleware and read by handlers and the
// role guard.
const (
	CtxUser     = "user"
	CtxUsername = "username"
	CtxRole     = "role"
	CtxCartID   = "cartID"
)

// CurrentUser extracts the user record attached by the Auth middleware. Its
// presence proves the middleware ran; a protected handler reached without it
// is a wiring bug, answered with 401 rather than a panic.
func CurrentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(CtxUser).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

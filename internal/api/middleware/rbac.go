package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/webstore/storefront-api/internal/api/handler"
)

// RBAC restricts a route to the given roles. The allow-list is fixed at
// registration time; an empty list rejects every request. It assumes Auth
// already attached the identity and performs no authentication itself.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(handler.CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to perform this action")
			}
			return next(c)
		}
	}
}

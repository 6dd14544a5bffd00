package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/webstore/storefront-api/internal/api/handler"
	"github.com/webstore/storefront-api/internal/api/metrics"
	"github.com/webstore/storefront-api/internal/core/domain"
	"github.com/webstore/storefront-api/internal/core/ports"
	"github.com/webstore/storefront-api/internal/core/token"
)

const bearerPrefix = "Bearer "

// Auth gates protected routes. It extracts the bearer token, verifies it via
// the codec, re-fetches the user behind the claims (a token for a
// since-deleted account must not be trusted), and attaches the user record
// to the request context. Any failure short-circuits the request.
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "You are not logged in! Please log in to get access.")
			}

			claims, err := codec.Verify(strings.TrimSpace(authHeader[len(bearerPrefix):]))
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenVerificationsTotal.WithLabelValues("stale_identity").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication")
				}
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(handler.CtxUser, user)
			c.Set(handler.CtxUsername, user.Username)
			c.Set(handler.CtxRole, user.Role)
			c.Set(handler.CtxCartID, claims.CartID)

			return next(c)
		}
	}
}

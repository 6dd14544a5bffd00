package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/webstore/storefront-api/internal/core/domain"
)

// errorEnvelope matches the handler envelope for error responses: the code
// field mirrors the HTTP status.
type errorEnvelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known domain
// errors to deterministic status codes, logs unexpected errors, and renders
// the {code, msg} envelope for everything that escapes a handler.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Code: code, Msg: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (404 from the router, middleware rejections, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidParams):
		return http.StatusForbidden, "Invalid params"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid authentication"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, "Invalid authentication"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to perform this action"
	}

	// Unexpected error: log the real cause; the message echoes it for
	// diagnostics, matching the login/signup handlers.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/webstore/storefront-api/internal/core/domain"
	"github.com/webstore/storefront-api/internal/core/ports"
)

// ActivityDispatcher is the interface the handler uses to enqueue activity
// records without blocking the request.
type ActivityDispatcher interface {
	Enqueue(input ports.ActivityInput)
}

// AuthHandler handles login, signup and the authenticated profile endpoint.
type AuthHandler struct {
	authService ports.AuthService
	activity    ActivityDispatcher
}

// NewAuthHandler creates an AuthHandler. activity may be nil when no
// activity trail is wired (tests).
func NewAuthHandler(authService ports.AuthService, activity ActivityDispatcher) *AuthHandler {
	return &AuthHandler{authService: authService, activity: activity}
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Log in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response
// @Failure      401   {object}  response
// @Failure      403   {object}  response
// @Failure      500   {object}  response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusForbidden, response{Code: http.StatusForbidden, Msg: "Invalid params"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusForbidden, response{Code: http.StatusForbidden, Msg: "Invalid params"})
	}

	tokenString, err := h.authService.Login(c.Request().Context(), req.UserName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidParams):
			return c.JSON(http.StatusForbidden, response{Code: http.StatusForbidden, Msg: "Invalid params"})
		case errors.Is(err, domain.ErrUserNotFound):
			h.record(c, req.UserName, domain.ActionLoginFailed)
			return c.JSON(http.StatusUnauthorized, response{Code: http.StatusUnauthorized, Msg: "Invalid user - " + req.UserName})
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.record(c, req.UserName, domain.ActionLoginFailed)
			return c.JSON(http.StatusUnauthorized, response{Code: http.StatusUnauthorized, Msg: "Invalid authentication"})
		default:
			return c.JSON(http.StatusInternalServerError, response{Code: http.StatusInternalServerError, Msg: err.Error()})
		}
	}

	h.record(c, req.UserName, domain.ActionLogin)
	return c.JSON(http.StatusOK, response{Code: http.StatusOK, Msg: "OK", Data: loginData{Token: tokenString}})
}

// Signup registers a new user and creates its cart. The response never
// carries the password; callers log in separately to obtain a token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      200   {object}  response
// @Failure      403   {object}  response
// @Failure      500   {object}  response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusForbidden, response{Code: http.StatusForbidden, Msg: "Invalid params"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusForbidden, response{Code: http.StatusForbidden, Msg: "Invalid params"})
	}

	user, err := h.authService.Signup(c.Request().Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidParams) {
			return c.JSON(http.StatusForbidden, response{Code: http.StatusForbidden, Msg: "Invalid params"})
		}
		return c.JSON(http.StatusInternalServerError, response{Code: http.StatusInternalServerError, Msg: err.Error()})
	}

	h.record(c, user.Username, domain.ActionSignup)
	return c.JSON(http.StatusOK, response{Code: http.StatusOK, Msg: "sign up success", Data: signupData{User: user}})
}

// Me returns the authenticated user attached by the Auth middleware.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response{Code: http.StatusOK, Msg: "OK", Data: signupData{User: user}})
}

func (h *AuthHandler) record(c echo.Context, username string, action domain.ActivityAction) {
	if h.activity == nil {
		return
	}
	h.activity.Enqueue(ports.ActivityInput{
		Username:  username,
		Action:    action,
		RemoteIP:  c.RealIP(),
		Timestamp: time.Now().UTC(),
	})
}

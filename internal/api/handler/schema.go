package handler

import (
	"github.com/webstore/storefront-api/internal/core/domain"
)

// response is the storefront API envelope: code mirrors the HTTP status, msg
// is a short human-readable message, data carries the payload when present.
type response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// --- Request / Response types ---

type loginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginData struct {
	Token string `json:"token"`
}

type signupData struct {
	// User serialises without the password hash (json:"-" on the field).
	User *domain.User `json:"user"`
}

type activityData struct {
	Activities []domain.Activity `json:"activities"`
}

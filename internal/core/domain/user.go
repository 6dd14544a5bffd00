package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

var ErrInvalidParams = errors.New("invalid params")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// User models a storefront account. PasswordHash is excluded from JSON so it
// can never leak into a response payload.
type User struct {
	ID           string    `json:"userID"`
	Username     string    `json:"userName"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"auth"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

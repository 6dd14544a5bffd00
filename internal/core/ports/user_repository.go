package ports

import (
	"context"

	"github.com/webstore/storefront-api/internal/core/domain"
)

// CreateUserInput carries the signup fields across the storage boundary.
// Password is plaintext here and crosses exactly once: the repository hashes
// it before persisting and never stores or returns it in the clear.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UserRepository is the credential store. Lookups return
// domain.ErrUserNotFound when no record matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) error
}

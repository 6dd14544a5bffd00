package ports

import (
	"context"

	"github.com/webstore/storefront-api/internal/core/domain"
)

type AuthService interface {
	// Login authenticates the credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
	// Signup creates the user and its cart and returns the stored user. It
	// does not log the user in; callers obtain a token via Login.
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
}

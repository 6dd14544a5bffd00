package ports

import (
	"context"

	"github.com/webstore/storefront-api/internal/core/domain"
)

// CartRepository is the cart store. A user without a cart is not an error:
// CartIDByUsername resolves to domain.NoCartID with a nil error.
type CartRepository interface {
	CartIDByUsername(ctx context.Context, username string) (int64, error)
	CreateForUser(ctx context.Context, userID, username string) (*domain.Cart, error)
}

// CartIDCache is an optional fast path in front of the cart store. A miss is
// (domain.NoCartID, false, nil); errors should degrade to a store lookup.
type CartIDCache interface {
	Get(ctx context.Context, username string) (int64, bool, error)
	Set(ctx context.Context, username string, cartID int64) error
}

package domain

import "time"

// NoCartID marks an account that has no cart yet. A missing cart is a valid
// transient state (the cart is created right after signup), not an error.
const NoCartID int64 = -1

// Cart is the shopping cart owned by exactly one user.
type Cart struct {
	ID        int64     `json:"cartID"`
	UserID    string    `json:"userID"`
	Username  string    `json:"userName"`
	CreatedAt time.Time `json:"created_at"`
}

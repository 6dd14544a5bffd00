// Package token encodes and verifies the signed bearer credential used by the
// storefront API. A token is valid iff its HMAC signature matches the
// process-wide secret and the current time is before its expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/webstore/storefront-api/internal/core/domain"
)

var ErrExpired = errors.New("token expired")
var ErrInvalidSignature = errors.New("token signature invalid")
var ErrMalformed = errors.New("token malformed")

// Claims is the payload embedded in every issued token. Auth carries the
// user's role; CartID is domain.NoCartID when the user has no cart yet.
type Claims struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Auth     string `json:"auth"`
	CartID   int64  `json:"cartID"`
	jwt.RegisteredClaims
}

// Codec issues and verifies tokens with a fixed secret and TTL. Both are
// loaded once at startup and never mutated, so a Codec is safe for
// concurrent use. Rotating the secret invalidates all outstanding tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user and resolved cart ID.
func (c *Codec) Issue(user *domain.User, cartID int64) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Auth:     user.Role,
		CartID:   cartID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify decodes the token and checks signature and expiry atomically. The
// payload is never trusted unless both checks pass.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

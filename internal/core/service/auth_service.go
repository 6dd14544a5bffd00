package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/webstore/storefront-api/internal/api/metrics"
	"github.com/webstore/storefront-api/internal/core/domain"
	"github.com/webstore/storefront-api/internal/core/ports"
	"github.com/webstore/storefront-api/internal/core/token"
)

// AuthService implements login and signup on top of the user and cart stores.
type AuthService struct {
	users  ports.UserRepository
	carts  ports.CartRepository
	cache  ports.CartIDCache
	codec  *token.Codec
	logger zerolog.Logger
}

// NewAuthService wires the auth flows. cache may be nil; cart IDs are then
// always resolved from the cart store.
func NewAuthService(users ports.UserRepository, carts ports.CartRepository, cache ports.CartIDCache, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, carts: carts, cache: cache, codec: codec, logger: logger}
}

// Login validates the credentials and issues a bearer token embedding the
// user's identity, role and cart ID. A missing cart resolves to
// domain.NoCartID and does not block the login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidParams
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		return "", err
	}

	cartID, err := s.resolveCartID(ctx, username)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return "", domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user, cartID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("username", username).Int64("cart_id", cartID).Msg("login succeeded")
	return signed, nil
}

// Signup creates the user record and its cart. The plaintext password crosses
// the storage boundary once; the repository hashes it before persisting. The
// returned user carries the store-generated ID and never the password.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidParams
	}

	err := s.users.Create(ctx, ports.CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     domain.RoleCustomer,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Fetch back the canonical record to obtain the generated ID.
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetch created user: %w", err)
	}

	cart, err := s.carts.CreateForUser(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user.Username, cart.ID); err != nil {
			s.logger.Warn().Err(err).Str("username", user.Username).Msg("cart cache set failed")
		}
	}

	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("signup succeeded")
	return user, nil
}

// resolveCartID looks up the user's cart ID, preferring the cache. Cache
// errors degrade to a store lookup; store errors propagate.
func (s *AuthService) resolveCartID(ctx context.Context, username string) (int64, error) {
	if s.cache != nil {
		if id, ok, err := s.cache.Get(ctx, username); err != nil {
			s.logger.Debug().Err(err).Str("username", username).Msg("cart cache get failed")
		} else if ok {
			return id, nil
		}
	}

	id, err := s.carts.CartIDByUsername(ctx, username)
	if err != nil {
		return domain.NoCartID, fmt.Errorf("resolve cart: %w", err)
	}

	if id != domain.NoCartID && s.cache != nil {
		if err := s.cache.Set(ctx, username, id); err != nil {
			s.logger.Debug().Err(err).Str("username", username).Msg("cart cache set failed")
		}
	}
	return id, nil
}

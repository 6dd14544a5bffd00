package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webstore/storefront-api/internal/core/domain"
)

const (
	cartCollection    = "carts"
	counterCollection = "counters"
	cartCounterKey    = "cart_id"
)

// CartRepository is the MongoDB-backed cart store. Cart IDs are small
// integers allocated from the counters collection so the no-cart sentinel
// (-1) stays type-honest in claims and responses.
type CartRepository struct {
	carts    *mongo.Collection
	counters *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{
		carts:    db.Collection(cartCollection),
		counters: db.Collection(counterCollection),
	}
}

type cartDoc struct {
	CartID    int64  `bson:"cart_id"`
	UserID    string `bson:"user_id"`
	Username  string `bson:"username"`
	CreatedAt int64  `bson:"created_at"`
}

// CartIDByUsername resolves the user's cart ID. A user without a cart is a
// valid state: the sentinel is returned with a nil error.
func (r *CartRepository) CartIDByUsername(ctx context.Context, username string) (int64, error) {
	var doc cartDoc
	if err := r.carts.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.NoCartID, nil
		}
		return domain.NoCartID, fmt.Errorf("find cart: %w", err)
	}
	return doc.CartID, nil
}

func (r *CartRepository) CreateForUser(ctx context.Context, userID, username string) (*domain.Cart, error) {
	id, err := r.nextCartID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := cartDoc{
		CartID:    id,
		UserID:    userID,
		Username:  username,
		CreatedAt: now.Unix(),
	}
	if _, err := r.carts.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert cart: %w", err)
	}

	return &domain.Cart{ID: id, UserID: userID, Username: username, CreatedAt: now}, nil
}

// nextCartID atomically increments and returns the cart ID counter.
func (r *CartRepository) nextCartID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": cartCounterKey},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return domain.NoCartID, fmt.Errorf("next cart id: %w", err)
	}
	return counter.Seq, nil
}

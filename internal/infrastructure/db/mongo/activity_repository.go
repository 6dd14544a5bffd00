package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webstore/storefront-api/internal/core/domain"
)

const activityCollection = "auth_activity"

// ActivityRepository persists the auth activity trail.
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

type activityDoc struct {
	ID        string `bson:"_id"`
	Username  string `bson:"username"`
	Action    string `bson:"action"`
	RemoteIP  string `bson:"remote_ip,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *domain.Activity) error {
	doc := activityDoc{
		ID:        activity.ID,
		Username:  activity.Username,
		Action:    string(activity.Action),
		RemoteIP:  activity.RemoteIP,
		Timestamp: activity.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.Activity
	for cursor.Next(ctx) {
		var doc activityDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		entries = append(entries, domain.Activity{
			ID:        doc.ID,
			Username:  doc.Username,
			Action:    domain.ActivityAction(doc.Action),
			RemoteIP:  doc.RemoteIP,
			Timestamp: unixToTime(doc.Timestamp),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}

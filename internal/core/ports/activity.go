package ports

import (
	"context"
	"time"

	"github.com/webstore/storefront-api/internal/core/domain"
)

// ActivityInput is the DTO handed from the transport layer to the activity
// pipeline.
type ActivityInput struct {
	Username  string
	Action    domain.ActivityAction
	RemoteIP  string
	Timestamp time.Time
}

// ActivityService records auth activity entries.
type ActivityService interface {
	Record(ctx context.Context, input ActivityInput) error
}

// ActivityRepository persists the auth activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
}

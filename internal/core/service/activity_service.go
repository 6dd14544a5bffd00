package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/webstore/storefront-api/internal/api/metrics"
	"github.com/webstore/storefront-api/internal/core/domain"
	"github.com/webstore/storefront-api/internal/core/ports"
)

// ActivityService persists auth activity entries delivered by the dispatcher.
type ActivityService struct {
	repo   ports.ActivityRepository
	logger zerolog.Logger
}

func NewActivityService(repo ports.ActivityRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

// Record writes one activity entry. A zero timestamp is stamped here so
// callers may omit it.
func (s *ActivityService) Record(ctx context.Context, input ports.ActivityInput) error {
	start := time.Now()

	ts := input.Timestamp
	if ts.IsZero() {
		ts = start.UTC()
	}

	entry := &domain.Activity{
		ID:        uuid.NewString(),
		Username:  input.Username,
		Action:    input.Action,
		RemoteIP:  input.RemoteIP,
		Timestamp: ts,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.ActivityProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("insert activity: %w", err)
	}

	metrics.ActivityProcessingDuration.WithLabelValues(string(input.Action)).Observe(time.Since(start).Seconds())
	return nil
}

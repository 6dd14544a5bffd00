package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/webstore/storefront-api/internal/core/domain"
	"github.com/webstore/storefront-api/internal/core/ports"
)

type stubActivityRepo struct {
	entries []domain.Activity
	fail    error
}

func (r *stubActivityRepo) Insert(_ context.Context, activity *domain.Activity) error {
	if r.fail != nil {
		return r.fail
	}
	r.entries = append(r.entries, *activity)
	return nil
}

func (r *stubActivityRepo) ListRecent(_ context.Context, limit int) ([]domain.Activity, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

func TestActivityService_Record(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), ports.ActivityInput{
		Username: "alice",
		Action:   domain.ActionLogin,
		RemoteIP: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}

	entry := repo.entries[0]
	if entry.ID == "" {
		t.Fatalf("expected generated activity ID")
	}
	if entry.Username != "alice" || entry.Action != domain.ActionLogin {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Timestamp.IsZero() {
		t.Fatalf("expected zero input timestamp to be stamped")
	}
}

func TestActivityService_Record_KeepsTimestamp(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := svc.Record(context.Background(), ports.ActivityInput{
		Username:  "bob",
		Action:    domain.ActionSignup,
		Timestamp: ts,
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if !repo.entries[0].Timestamp.Equal(ts) {
		t.Fatalf("timestamp overwritten: %v", repo.entries[0].Timestamp)
	}
}

func TestActivityService_Record_PropagatesInsertError(t *testing.T) {
	repo := &stubActivityRepo{fail: errors.New("boom")}
	svc := NewActivityService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), ports.ActivityInput{Username: "x", Action: domain.ActionLogin}); err == nil {
		t.Fatalf("expected error")
	}
}

package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/webstore/storefront-api/internal/core/domain"
	"github.com/webstore/storefront-api/internal/core/ports"
)

type recordingService struct {
	mu      sync.Mutex
	entries []ports.ActivityInput
}

func (s *recordingService) Record(_ context.Context, input ports.ActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, input)
	return nil
}

func (s *recordingService) snapshot() []ports.ActivityInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.ActivityInput, len(s.entries))
	copy(out, s.entries)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met in time")
}

func TestDispatcher_DeliversRecords(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.ActivityInput{Username: "alice", Action: domain.ActionLogin})
	d.Enqueue(ports.ActivityInput{Username: "bob", Action: domain.ActionSignup})

	waitFor(t, func() bool { return len(svc.snapshot()) == 2 })
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []domain.ActivityAction{
		domain.ActionSignup,
		domain.ActionLoginFailed,
		domain.ActionLogin,
	}
	for _, a := range actions {
		d.Enqueue(ports.ActivityInput{Username: "alice", Action: a})
	}

	waitFor(t, func() bool { return len(svc.snapshot()) == len(actions) })

	got := svc.snapshot()
	for i, a := range actions {
		if got[i].Action != a {
			t.Fatalf("out of order at %d: expected %s, got %s", i, a, got[i].Action)
		}
	}
}

func TestDispatcher_SameUserSameShard(t *testing.T) {
	d := NewDispatcher(8, &recordingService{}, zerolog.Nop())
	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

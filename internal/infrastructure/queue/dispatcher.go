package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/webstore/storefront-api/internal/api/metrics"
	"github.com/webstore/storefront-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes auth activity records to a fixed set of workers using
// consistent hashing on the username, so entries for one account reach the
// store in the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.ActivityInput
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ActivityInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ActivityInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a record to the worker responsible for its username.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.ActivityInput) {
	idx := d.shardIndex(input.Username)
	d.workers[idx] <- input
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a username deterministically to a worker index.
func (d *Dispatcher) shardIndex(username string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ActivityInput) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.service.Record(ctx, input); err != nil {
				d.log.Error().Err(err).
					Str("username", input.Username).
					Str("action", string(input.Action)).
					Int("worker_id", id).
					Msg("activity record failed")
			}
		}
	}
}

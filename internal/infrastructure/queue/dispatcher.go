package queue

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/api/metrics"
	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Replier delivers the pipeline's reply back to the user. The transport
// owns the actual delivery mechanics; a nil reply (rejected with no notice,
// or an empty handler reply) is a no-op.
type Replier interface {
	Send(ctx context.Context, userID int64, reply domain.Reply)
}

// Dispatcher routes inbound events to a fixed set of workers sharded by
// user id, guaranteeing that events for one user are processed in arrival
// order while different users proceed in parallel.
type Dispatcher struct {
	workers  []chan domain.InboundEvent
	pipeline ports.Pipeline
	replier  Replier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. replier may be nil when no
// outbound transport is wired (tests, dry runs).
func NewDispatcher(numWorkers int, pipeline ports.Pipeline, replier Replier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.InboundEvent, numWorkers),
		pipeline: pipeline,
		replier:  replier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.InboundEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker owning its user id. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(ev domain.InboundEvent) {
	idx := d.shardIndex(ev.UserID)
	d.workers[idx] <- ev
	metrics.QueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	return int(uint64(userID) % uint64(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.InboundEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			res := d.pipeline.Process(ctx, ev)
			metrics.QueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if d.replier != nil && !res.Reply.IsZero() {
				d.replier.Send(ctx, ev.UserID, res.Reply)
			}
		}
	}
}

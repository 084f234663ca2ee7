// Package audit records authorization decisions. Events are emitted
// asynchronously through a buffered dispatcher so that the hot path never
// blocks on the sink; the buffer drains fully on Close.
package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Decision is the outcome of an authorization check.
type Decision string

const (
	DecisionGranted Decision = "granted"
	DecisionDenied  Decision = "denied"
)

// Event is one authorization decision, with enough identity context to
// reconstruct who asked for what and when.
type Event struct {
	ID       string
	Actor    string
	Action   string
	Decision Decision
	At       time.Time
}

// Sink receives audit events. Implementations must be safe for use from a
// single dispatcher goroutine.
type Sink interface {
	Emit(ctx context.Context, ev Event)
}

// LogSink writes audit events to the structured log. Grants are logged at
// info, denials at warn.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) Emit(_ context.Context, ev Event) {
	entry := s.Log.Info()
	if ev.Decision == DecisionDenied {
		entry = s.Log.Warn()
	}
	entry.
		Str("audit_id", ev.ID).
		Str("actor", ev.Actor).
		Str("action", ev.Action).
		Str("decision", string(ev.Decision)).
		Time("at", ev.At).
		Msg("authorization decision")
}

const defaultBuffer = 128

// Dispatcher fans audit events into a Sink from a dedicated goroutine.
// The zero-value rules: a nil *Dispatcher drops all events silently, so
// callers never need to nil-check.
type Dispatcher struct {
	sink    Sink
	ch      chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Uint64
	closed  atomic.Bool
	once    sync.Once
}

// NewDispatcher starts a dispatcher delivering to sink. bufferSize <= 0
// selects the default.
func NewDispatcher(sink Sink, bufferSize int) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	d := &Dispatcher{
		sink: sink,
		ch:   make(chan Event, bufferSize),
		done: make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case ev := <-d.ch:
			d.sink.Emit(context.Background(), ev)
		case <-d.done:
			// drain whatever is still buffered
			for {
				select {
				case ev := <-d.ch:
					d.sink.Emit(context.Background(), ev)
				default:
					return
				}
			}
		}
	}
}

// Record builds and emits an event for one decision. If the buffer is full
// the event is dropped rather than blocking the caller.
func (d *Dispatcher) Record(actor, action string, decision Decision) {
	if d == nil || d.closed.Load() {
		return
	}
	ev := Event{
		ID:       uuid.NewString(),
		Actor:    actor,
		Action:   action,
		Decision: decision,
		At:       time.Now().UTC(),
	}
	select {
	case d.ch <- ev:
	case <-d.done:
	default:
		d.dropped.Add(1)
	}
}

// Dropped reports how many events were discarded on a full buffer.
func (d *Dispatcher) Dropped() uint64 {
	if d == nil {
		return 0
	}
	return d.dropped.Load()
}

// Close stops the dispatcher after draining buffered events.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}

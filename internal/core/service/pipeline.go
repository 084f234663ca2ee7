package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/api/metrics"
	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

// lockStripes bounds the memory spent on per-user serialization. Two users
// sharing a stripe may briefly serialize behind each other; two events for
// the same user always do, which is the invariant that matters.
const lockStripes = 64

const (
	rateLimitNotice = "You are sending requests too quickly. Please wait a minute and try again."
	failureNotice   = "Something went wrong while handling your request. Please try again in a moment."
)

// EventPipeline runs one inbound event through admission control:
// rate check, session load, business handler, session save. The handler is
// the only step allowed to fail, and its failure is absorbed here.
type EventPipeline struct {
	limiter ports.RateLimiter
	store   ports.SessionStore
	handler ports.Handler
	log     zerolog.Logger

	// userLocks serializes load→handle→save per user so a later event
	// cannot overwrite session mutations from an earlier in-flight one.
	userLocks [lockStripes]sync.Mutex

	now func() time.Time // test hook
}

// NewEventPipeline wires the pipeline from its collaborators.
func NewEventPipeline(limiter ports.RateLimiter, store ports.SessionStore, handler ports.Handler, log zerolog.Logger) *EventPipeline {
	return &EventPipeline{
		limiter: limiter,
		store:   store,
		handler: handler,
		log:     log,
		now:     time.Now,
	}
}

// Process takes an event from RECEIVED to DONE. A rate-limit rejection
// terminates early with no session I/O. Handler errors and panics become a
// generic failure reply, and the session as mutated up to the failure point
// is still saved.
func (p *EventPipeline) Process(ctx context.Context, ev domain.InboundEvent) ports.Result {
	started := p.now()
	res := p.process(ctx, ev)

	metrics.EventsTotal.WithLabelValues(string(ev.Type), string(res.Status)).Inc()
	metrics.EventDuration.WithLabelValues(string(res.Status)).Observe(p.now().Sub(started).Seconds())
	return res
}

func (p *EventPipeline) process(ctx context.Context, ev domain.InboundEvent) ports.Result {
	if !p.limiter.Check(strconv.FormatInt(ev.UserID, 10)) {
		return ports.Result{
			Status: ports.StatusRejected,
			Reply:  domain.Reply{Text: rateLimitNotice},
		}
	}

	lock := &p.userLocks[uint64(ev.UserID)%lockStripes]
	lock.Lock()
	defer lock.Unlock()

	sess := p.store.Load(ctx, ev.UserID)
	sess.Touch(p.now())

	reply, err := p.invoke(ctx, sess, ev)

	// Save regardless of handler outcome: fields mutated before a failure
	// are kept (best-effort partial persistence).
	p.store.Save(ctx, ev.UserID, sess)

	if err != nil {
		p.log.Error().Err(err).
			Int64("user_id", ev.UserID).
			Str("event_type", string(ev.Type)).
			Msg("handler failed")
		return ports.Result{
			Status: ports.StatusFailed,
			Reply:  domain.Reply{Text: failureNotice},
		}
	}

	return ports.Result{Status: ports.StatusAllowed, Reply: reply}
}

// invoke calls the business handler, converting a panic into an error so a
// misbehaving handler cannot take down the worker.
func (p *EventPipeline) invoke(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (reply domain.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &handlerPanicError{value: r}
		}
	}()
	return p.handler.Handle(ctx, sess, ev)
}

type handlerPanicError struct {
	value any
}

func (e *handlerPanicError) Error() string {
	return "handler panic: " + panicString(e.value)
}

func panicString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return "unknown panic value"
	}
}

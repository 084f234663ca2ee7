package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
	"github.com/zosai/marketplace-bot/internal/infrastructure/cache"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubLimiter struct {
	allow bool
}

func (l *stubLimiter) Check(string) bool { return l.allow }

// recordingStore counts session I/O so tests can prove the rejected path
// performs none.
type recordingStore struct {
	mu    sync.Mutex
	loads int
	saves int
	store ports.SessionStore
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		store: NewCachedSessionStore(nil, cache.NewMemoryCache(), time.Hour, zerolog.Nop()),
	}
}

func (s *recordingStore) Load(ctx context.Context, userID int64) *domain.Session {
	s.mu.Lock()
	s.loads++
	s.mu.Unlock()
	return s.store.Load(ctx, userID)
}

func (s *recordingStore) Save(ctx context.Context, userID int64, sess *domain.Session) {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	s.store.Save(ctx, userID, sess)
}

func (s *recordingStore) Delete(ctx context.Context, userID int64) {
	s.store.Delete(ctx, userID)
}

type funcHandler func(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error)

func (f funcHandler) Handle(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error) {
	return f(ctx, sess, ev)
}

func commandEvent(userID int64, text string) domain.InboundEvent {
	return domain.InboundEvent{UserID: userID, Type: domain.EventCommand, Text: text}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestPipeline_AllowedPath(t *testing.T) {
	store := newRecordingStore()
	handler := funcHandler(func(_ context.Context, sess *domain.Session, _ domain.InboundEvent) (domain.Reply, error) {
		sess.Role = domain.RoleCustomer
		return domain.Reply{Text: "welcome"}, nil
	})
	p := NewEventPipeline(&stubLimiter{allow: true}, store, handler, zerolog.Nop())

	res := p.Process(context.Background(), commandEvent(7, "/start"))

	if res.Status != ports.StatusAllowed {
		t.Fatalf("status = %s, want allowed", res.Status)
	}
	if res.Reply.Text != "welcome" {
		t.Errorf("reply = %q", res.Reply.Text)
	}
	if store.loads != 1 || store.saves != 1 {
		t.Errorf("session I/O: loads=%d saves=%d, want 1/1", store.loads, store.saves)
	}

	// The handler's mutation survived the save.
	if got := store.Load(context.Background(), 7); got.Role != domain.RoleCustomer {
		t.Errorf("persisted role = %q, want customer", got.Role)
	}
}

func TestPipeline_RejectedDoesNoSessionIO(t *testing.T) {
	store := newRecordingStore()
	handler := funcHandler(func(_ context.Context, _ *domain.Session, _ domain.InboundEvent) (domain.Reply, error) {
		t.Fatal("handler must not run on rejection")
		return domain.Reply{}, nil
	})
	p := NewEventPipeline(&stubLimiter{allow: false}, store, handler, zerolog.Nop())

	res := p.Process(context.Background(), commandEvent(7, "/start"))

	if res.Status != ports.StatusRejected {
		t.Fatalf("status = %s, want rejected", res.Status)
	}
	if res.Reply.Text == "" {
		t.Error("rejection must carry a user-facing notice")
	}
	if store.loads != 0 || store.saves != 0 {
		t.Errorf("rejected path did session I/O: loads=%d saves=%d", store.loads, store.saves)
	}
}

func TestPipeline_HandlerErrorSavesPartialState(t *testing.T) {
	store := newRecordingStore()
	handler := funcHandler(func(_ context.Context, sess *domain.Session, _ domain.InboundEvent) (domain.Reply, error) {
		sess.AwaitingPhoto = true // mutated before the failure
		return domain.Reply{}, errors.New("downstream exploded")
	})
	p := NewEventPipeline(&stubLimiter{allow: true}, store, handler, zerolog.Nop())

	res := p.Process(context.Background(), commandEvent(3, "/start"))

	if res.Status != ports.StatusFailed {
		t.Fatalf("status = %s, want failed", res.Status)
	}
	if res.Reply.Text == "" {
		t.Error("failure must produce a generic notice")
	}
	if got := store.Load(context.Background(), 3); !got.AwaitingPhoto {
		t.Error("mutation made before the failure must be persisted")
	}
}

func TestPipeline_HandlerPanicIsAbsorbed(t *testing.T) {
	store := newRecordingStore()
	handler := funcHandler(func(_ context.Context, _ *domain.Session, _ domain.InboundEvent) (domain.Reply, error) {
		panic("boom")
	})
	p := NewEventPipeline(&stubLimiter{allow: true}, store, handler, zerolog.Nop())

	res := p.Process(context.Background(), commandEvent(3, "/start"))
	if res.Status != ports.StatusFailed {
		t.Fatalf("status = %s, want failed", res.Status)
	}
}

func TestPipeline_NoLostUpdatesForSameUser(t *testing.T) {
	// Two concurrent load→mutate→save sequences for one user must both land.
	store := newRecordingStore()
	handler := funcHandler(func(_ context.Context, sess *domain.Session, _ domain.InboundEvent) (domain.Reply, error) {
		sess.LoyaltyPoints++
		return domain.Reply{}, nil
	})
	p := NewEventPipeline(&stubLimiter{allow: true}, store, handler, zerolog.Nop())

	const concurrent = 20
	var wg sync.WaitGroup
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Process(context.Background(), commandEvent(7, "/start"))
		}()
	}
	wg.Wait()

	if got := store.Load(context.Background(), 7); got.LoyaltyPoints != concurrent {
		t.Errorf("loyalty points = %d, want %d (lost update)", got.LoyaltyPoints, concurrent)
	}
}

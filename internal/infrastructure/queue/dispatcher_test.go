package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

// orderRecordingPipeline records the order events arrive per user.
type orderRecordingPipeline struct {
	mu      sync.Mutex
	perUser map[int64][]string
	wg      *sync.WaitGroup
}

func (p *orderRecordingPipeline) Process(_ context.Context, ev domain.InboundEvent) ports.Result {
	p.mu.Lock()
	p.perUser[ev.UserID] = append(p.perUser[ev.UserID], ev.Text)
	p.mu.Unlock()
	p.wg.Done()
	return ports.Result{Status: ports.StatusAllowed}
}

type recordingReplier struct {
	mu   sync.Mutex
	sent []int64
}

func (r *recordingReplier) Send(_ context.Context, userID int64, _ domain.Reply) {
	r.mu.Lock()
	r.sent = append(r.sent, userID)
	r.mu.Unlock()
}

func TestDispatcher_SameUserEventsKeepArrivalOrder(t *testing.T) {
	const perUser = 50
	users := []int64{1, 2, 3, 9, 17} // ids spanning several shards

	var wg sync.WaitGroup
	wg.Add(perUser * len(users))
	pipe := &orderRecordingPipeline{perUser: make(map[int64][]string), wg: &wg}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, pipe, nil, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < perUser; i++ {
		for _, u := range users {
			d.Enqueue(domain.InboundEvent{UserID: u, Type: domain.EventMessage, Text: seq(i)})
		}
	}
	waitOrFail(t, &wg, 5*time.Second)

	for _, u := range users {
		got := pipe.perUser[u]
		if len(got) != perUser {
			t.Fatalf("user %d processed %d events, want %d", u, len(got), perUser)
		}
		for i, text := range got {
			if text != seq(i) {
				t.Fatalf("user %d: event %d out of order: got %q", u, i, text)
			}
		}
	}
}

func TestDispatcher_ReplierReceivesNonEmptyReplies(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	pipe := replyPipeline{wg: &wg}
	replier := &recordingReplier{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, pipe, replier, zerolog.Nop())
	d.Start(ctx)
	d.Enqueue(domain.InboundEvent{UserID: 5, Type: domain.EventCommand, Text: "/start"})
	waitOrFail(t, &wg, 5*time.Second)

	// Send happens after Process returns on the same worker goroutine;
	// give the worker a beat to complete it.
	deadline := time.Now().Add(time.Second)
	for {
		replier.mu.Lock()
		n := len(replier.sent)
		replier.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("reply not delivered, sent=%d", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

type replyPipeline struct {
	wg *sync.WaitGroup
}

func (p replyPipeline) Process(_ context.Context, _ domain.InboundEvent) ports.Result {
	defer p.wg.Done()
	return ports.Result{Status: ports.StatusAllowed, Reply: domain.Reply{Text: "hello"}}
}

func seq(i int) string {
	return string(rune('a'+i%26)) + string(rune('0'+i/26))
}

func waitOrFail(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for dispatcher workers")
	}
}

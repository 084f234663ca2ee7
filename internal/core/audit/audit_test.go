package audit

import (
	"context"
	"sync"
	"testing"
	"time"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *captureSink) Emit(_ context.Context, ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *captureSink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(sink, 8)

	d.Record("6650827406", "enter_admin_mode", DecisionGranted)
	d.Record("6650827407", "enter_admin_mode", DecisionDenied)
	d.Close()

	events := sink.all()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	for _, ev := range events {
		if ev.ID == "" {
			t.Error("event missing id")
		}
		if ev.At.IsZero() || time.Since(ev.At) > time.Minute {
			t.Errorf("event timestamp suspicious: %v", ev.At)
		}
	}
	if events[0].Decision != DecisionGranted || events[1].Decision != DecisionDenied {
		t.Errorf("decisions out of order: %v, %v", events[0].Decision, events[1].Decision)
	}
}

func TestDispatcher_NilIsSafe(t *testing.T) {
	var d *Dispatcher
	d.Record("actor", "action", DecisionDenied) // must not panic
	d.Close()
	if d.Dropped() != 0 {
		t.Error("nil dispatcher reports drops")
	}
}

func TestDispatcher_RecordAfterCloseIsDropped(t *testing.T) {
	sink := &captureSink{}
	d := NewDispatcher(sink, 8)
	d.Close()

	d.Record("actor", "action", DecisionGranted)
	if got := len(sink.all()); got != 0 {
		t.Fatalf("events after close = %d, want 0", got)
	}
}

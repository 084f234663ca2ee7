package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/api/metrics"
)

const defaultSweepInterval = time.Minute

// SlidingWindowLimiter admits at most Max requests per caller key within a
// trailing Window. One implementation serves both the bot-level and the
// API-level limiter; the differing thresholds are configuration.
type SlidingWindowLimiter struct {
	window time.Duration
	max    int
	scope  string // metrics label: "bot" or "api"
	log    zerolog.Logger

	mu      sync.Mutex
	windows map[string][]time.Time

	now func() time.Time // test hook
}

// NewSlidingWindowLimiter builds a limiter for the given window and maximum.
func NewSlidingWindowLimiter(window time.Duration, max int, scope string, log zerolog.Logger) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		window:  window,
		max:     max,
		scope:   scope,
		log:     log,
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Check prunes timestamps older than now-window for key, then admits the
// request iff fewer than max remain. A denied request is not recorded, so a
// caller hammering the limiter does not extend their own lockout.
func (l *SlidingWindowLimiter) Check(key string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	win := l.windows[key]
	live := win[:0]
	for _, ts := range win {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}

	if len(live) >= l.max {
		l.windows[key] = live
		metrics.RateLimitDecisions.WithLabelValues(l.scope, "deny").Inc()
		l.log.Info().Str("key", key).Int("in_window", len(live)).Msg("rate limit exceeded")
		return false
	}

	l.windows[key] = append(live, now)
	metrics.RateLimitDecisions.WithLabelValues(l.scope, "allow").Inc()
	return true
}

// Start launches the background sweeper that reclaims state for callers
// whose whole window has expired. Without it the windows map grows by one
// entry per caller ever seen. The sweeper stops when ctx is cancelled.
func (l *SlidingWindowLimiter) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(defaultSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *SlidingWindowLimiter) sweep() {
	cutoff := l.now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, win := range l.windows {
		idle := true
		for _, ts := range win {
			if ts.After(cutoff) {
				idle = false
				break
			}
		}
		if idle {
			delete(l.windows, key)
		}
	}
	metrics.RateLimitTrackedKeys.WithLabelValues(l.scope).Set(float64(len(l.windows)))
}

// tracked reports the number of caller keys currently held. Test helper.
func (l *SlidingWindowLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

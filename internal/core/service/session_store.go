package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/api/metrics"
	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

const sessionKeyPrefix = "session:"

// CachedSessionStore keeps sessions in a distributed cache with an
// in-process fallback. The distributed backend is optional; when configured
// it is tried first on every call, and a failure degrades that one call to
// the fallback without abandoning the backend for later calls.
type CachedSessionStore struct {
	primary  ports.KeyValueCache // nil when no distributed cache is configured
	fallback ports.KeyValueCache
	ttl      time.Duration
	log      zerolog.Logger
}

// NewCachedSessionStore builds a store over the given backends. primary may
// be nil (memory-only mode); fallback must not be.
func NewCachedSessionStore(primary, fallback ports.KeyValueCache, ttl time.Duration, log zerolog.Logger) *CachedSessionStore {
	return &CachedSessionStore{
		primary:  primary,
		fallback: fallback,
		ttl:      ttl,
		log:      log,
	}
}

func sessionKey(userID int64) string {
	return sessionKeyPrefix + strconv.FormatInt(userID, 10)
}

// Load returns the stored session for userID, or a fresh empty session
// seeded with the id. A cache miss, an unreachable backend, and a malformed
// payload all resolve to "no session"; Load never fails the caller.
func (s *CachedSessionStore) Load(ctx context.Context, userID int64) *domain.Session {
	key := sessionKey(userID)

	if s.primary != nil {
		if raw, ok := s.primary.Get(ctx, key); ok {
			if sess := s.decode(raw, userID); sess != nil {
				metrics.SessionLoads.WithLabelValues("redis").Inc()
				return sess
			}
		}
	}

	if raw, ok := s.fallback.Get(ctx, key); ok {
		if sess := s.decode(raw, userID); sess != nil {
			if s.primary != nil {
				metrics.CacheFallbacks.WithLabelValues("load").Inc()
			}
			metrics.SessionLoads.WithLabelValues("memory").Inc()
			return sess
		}
	}

	metrics.SessionLoads.WithLabelValues("new").Inc()
	return domain.NewSession(userID)
}

// Save persists the session under the store TTL. The distributed backend is
// tried first; on failure the session lands in the fallback and the caller
// still observes success. Serialization failures cannot happen for the
// session shape we own, but are guarded anyway.
func (s *CachedSessionStore) Save(ctx context.Context, userID int64, sess *domain.Session) {
	raw, err := json.Marshal(sess)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("session serialize failed, state dropped")
		return
	}
	key := sessionKey(userID)

	if s.primary != nil {
		if err := s.primary.Set(ctx, key, raw, s.ttl); err == nil {
			return
		}
		metrics.CacheFallbacks.WithLabelValues("save").Inc()
		s.log.Warn().Int64("user_id", userID).Msg("cache save failed, degrading to memory")
	}

	if err := s.fallback.Set(ctx, key, raw, s.ttl); err != nil {
		// The memory cache never errors today; log so a future backend
		// swap cannot silently lose sessions.
		s.log.Error().Err(err).Int64("user_id", userID).Msg("fallback save failed")
	}
}

// Delete removes the session from both backends.
func (s *CachedSessionStore) Delete(ctx context.Context, userID int64) {
	key := sessionKey(userID)
	if s.primary != nil {
		if err := s.primary.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Int64("user_id", userID).Msg("cache delete failed")
		}
	}
	_ = s.fallback.Delete(ctx, key)
}

// decode unmarshals a stored session, re-seeding the identity in case an
// older payload predates the field. A malformed blob returns nil.
func (s *CachedSessionStore) decode(raw []byte, userID int64) *domain.Session {
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn().Err(err).Int64("user_id", userID).Msg("malformed session payload, starting fresh")
		return nil
	}
	sess.TelegramID = userID
	return &sess
}

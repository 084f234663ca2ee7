package ports

import (
	"context"

	"github.com/zosai/marketplace-bot/internal/core/domain"
)

// SessionStore is per-user conversation state with a TTL.
// Load never fails: unreachable or malformed state comes back as a fresh
// empty session. Save never fails either; on backend trouble the store
// degrades to process memory and reports success.
type SessionStore interface {
	Load(ctx context.Context, userID int64) *domain.Session
	Save(ctx context.Context, userID int64, sess *domain.Session)
	// Delete drops the stored session so the next Load starts empty.
	Delete(ctx context.Context, userID int64)
}

// RateLimiter admits or rejects a request for a caller key.
type RateLimiter interface {
	Check(key string) bool
}

// Authorizer answers whether a caller identity holds the one privileged
// credential. Every decision is recorded for audit.
type Authorizer interface {
	IsAuthorized(ctx context.Context, userID int64, action string) bool
	IsTokenAuthorized(ctx context.Context, token, action string) bool
}

// Handler is a business handler invoked by the pipeline with a resolved
// session. Handlers may mutate the session; mutations made before a failure
// are still persisted.
type Handler interface {
	Handle(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error)
}

// ResultStatus is the pipeline outcome visible to the transport.
type ResultStatus string

const (
	StatusAllowed  ResultStatus = "allowed"  // handler ran, reply is its output
	StatusRejected ResultStatus = "rejected" // rate limited, no session I/O happened
	StatusFailed   ResultStatus = "failed"   // handler failed, reply is a generic notice
)

// Result is what the pipeline returns for one inbound event.
type Result struct {
	Status ResultStatus
	Reply  domain.Reply
}

// Pipeline processes one inbound event end to end.
type Pipeline interface {
	Process(ctx context.Context, ev domain.InboundEvent) Result
}

package ports

import (
	"context"

	"github.com/zosai/marketplace-bot/internal/core/domain"
)

// UserProfile is the durable user record kept outside the session TTL,
// mirroring what the bot learns about a user over time.
type UserProfile struct {
	TelegramID    int64
	Username      string
	FirstName     string
	Role          domain.Role
	LoyaltyPoints int
}

// UserRepository persists user profiles. Handlers treat it as best-effort:
// a write failure is logged, never surfaced to the user.
type UserRepository interface {
	Upsert(ctx context.Context, profile UserProfile) error
	FindByTelegramID(ctx context.Context, telegramID int64) (*UserProfile, error)
}

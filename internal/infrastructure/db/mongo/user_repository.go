package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

const userCollection = "users"

// UserRepository persists user profiles keyed by telegram id.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a repository over the users collection.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	TelegramID    int64  `bson:"telegram_id"`
	Username      string `bson:"username,omitempty"`
	FirstName     string `bson:"first_name,omitempty"`
	Role          string `bson:"role,omitempty"`
	LoyaltyPoints int    `bson:"loyalty_points"`
	UpdatedAt     int64  `bson:"updated_at"`
}

// Upsert creates or refreshes the profile for profile.TelegramID.
func (r *UserRepository) Upsert(ctx context.Context, profile ports.UserProfile) error {
	doc := mongoUser{
		TelegramID:    profile.TelegramID,
		Username:      profile.Username,
		FirstName:     profile.FirstName,
		Role:          string(profile.Role),
		LoyaltyPoints: profile.LoyaltyPoints,
		UpdatedAt:     time.Now().Unix(),
	}

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"telegram_id": profile.TelegramID},
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// FindByTelegramID returns the stored profile or domain.ErrUserNotFound.
func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*ports.UserProfile, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"telegram_id": telegramID}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &ports.UserProfile{
		TelegramID:    mu.TelegramID,
		Username:      mu.Username,
		FirstName:     mu.FirstName,
		Role:          domain.Role(mu.Role),
		LoyaltyPoints: mu.LoyaltyPoints,
	}, nil
}

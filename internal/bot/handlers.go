package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

// photoAnalysisPoints is the loyalty bonus for using photo analysis,
// mirroring the marketing copy in uploadPhotoText.
const photoAnalysisPoints = 50

func (r *Router) start(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error) {
	sess.Username = ev.Username
	sess.FirstName = ev.FirstName

	r.persistProfile(ctx, sess)

	name := ev.FirstName
	if name == "" {
		name = "there"
	}
	text := fmt.Sprintf("🤖 Welcome to ZOSAI, %s!\n\n"+
		"Your AI-powered fashion assistant:\n"+
		"📷 Smart photo analysis for color matching\n"+
		"📍 Location-based store discovery\n"+
		"🎯 Personalized recommendations\n"+
		"⭐ Loyalty rewards\n\n"+
		"Select your role to get started:", name)

	return domain.Reply{Text: text, Menu: roleSelectionMenu}, nil
}

// selectRole records the picked role on the session. The role is advisory
// routing state only; it grants nothing.
func (r *Router) selectRole(ctx context.Context, sess *domain.Session, role domain.Role) (domain.Reply, error) {
	sess.Role = role
	r.persistProfile(ctx, sess)

	switch role {
	case domain.RoleCustomer:
		return domain.Reply{Text: customerWelcomeText, Menu: customerMenu, EditCurrent: true}, nil
	case domain.RoleStoreOwner:
		return domain.Reply{Text: storeOwnerWelcomeText, Menu: storeOwnerMenu, EditCurrent: true}, nil
	case domain.RoleShipper:
		return domain.Reply{Text: shipperWelcomeText, Menu: shipperMenu, EditCurrent: true}, nil
	default:
		return domain.Reply{Text: changeRoleText, Menu: roleSelectionMenu, EditCurrent: true}, nil
	}
}

// selectAdmin is the one privileged branch: entering admin mode requires
// the caller to be the configured super admin, checked fresh right here.
func (r *Router) selectAdmin(ctx context.Context, sess *domain.Session) (domain.Reply, error) {
	if !r.authorizer.IsAuthorized(ctx, sess.TelegramID, "enter_admin_mode") {
		return domain.Reply{Text: accessDeniedText, EditCurrent: true}, nil
	}

	sess.Role = domain.RoleSuperAdmin
	r.persistProfile(ctx, sess)
	return domain.Reply{Text: adminWelcomeText, EditCurrent: true}, nil
}

func (r *Router) handlePhoto(_ context.Context, sess *domain.Session, _ domain.InboundEvent) (domain.Reply, error) {
	if !sess.AwaitingPhoto {
		return domain.Reply{Text: "📷 To analyze a photo, use the AI Photo Analysis button first."}, nil
	}

	sess.AwaitingPhoto = false
	sess.LoyaltyPoints += photoAnalysisPoints

	// Analysis is simulated: the canned result stands in for the vision
	// service, which is outside this backend.
	return domain.Reply{Text: photoAnalysisText}, nil
}

func (r *Router) handleLocation(_ context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error) {
	if ev.Location == nil {
		return domain.Reply{Text: "📍 I could not read that location, please try sharing it again."}, nil
	}
	sess.Location = &domain.Coordinates{Lat: ev.Location.Lat, Lng: ev.Location.Lng}
	return domain.Reply{Text: locationSavedText}, nil
}

func (r *Router) handleText(_ context.Context, _ *domain.Session, ev domain.InboundEvent) (domain.Reply, error) {
	return r.fallback(ev.Text), nil
}

func (r *Router) track(orderID string) domain.Reply {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.Reply{Text: "Please provide an order id. Example: /track 12345"}
	}
	text := fmt.Sprintf("📦 Order #%s\n"+
		"🔄 Status: processing\n"+
		"📍 Location: store warehouse\n"+
		"🚚 Expected delivery: tomorrow 2-4 PM\n"+
		"📱 Tracking: ZOS%s", orderID, orderID)
	return domain.Reply{Text: text}
}

func (r *Router) loyalty(sess *domain.Session) domain.Reply {
	text := fmt.Sprintf("⭐ ZOSAI Loyalty Program\n\n"+
		"💎 Current points: %d\n\n"+
		"Earn points with every order, photo analysis, and referral.\n"+
		"500 points = 25 EGP discount, 1000 points = free shipping.", sess.LoyaltyPoints)
	return domain.Reply{Text: text}
}

func (r *Router) help() domain.Reply {
	return domain.Reply{Text: helpText}
}

func (r *Router) fallback(text string) domain.Reply {
	return domain.Reply{Text: fmt.Sprintf("🤖 I didn't understand %q.\n\n"+
		"Use the menu buttons or type /help to see what I can do.\n"+
		"Send /start to pick your role and see the main menu.", text)}
}

// persistProfile mirrors the session identity into the durable user store.
// Best-effort: a failure is logged and the conversation continues.
func (r *Router) persistProfile(ctx context.Context, sess *domain.Session) {
	if r.users == nil {
		return
	}
	err := r.users.Upsert(ctx, ports.UserProfile{
		TelegramID:    sess.TelegramID,
		Username:      sess.Username,
		FirstName:     sess.FirstName,
		Role:          sess.Role,
		LoyaltyPoints: sess.LoyaltyPoints,
	})
	if err != nil {
		r.log.Warn().Err(err).Int64("user_id", sess.TelegramID).Msg("user profile upsert failed")
	}
}

// Package bot contains the business handlers behind the admission pipeline.
// Handlers receive a resolved session, may mutate it, and return the reply
// the transport should deliver. None of them perform session I/O — the
// pipeline owns load and save.
package bot

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/core/domain"
	"github.com/zosai/marketplace-bot/internal/core/ports"
)

// Router maps inbound events to handler methods. It implements
// ports.Handler and is the single handler the pipeline invokes.
type Router struct {
	authorizer ports.Authorizer
	users      ports.UserRepository // nil when persistence is not configured
	log        zerolog.Logger
}

// NewRouter builds the handler router. users may be nil.
func NewRouter(authorizer ports.Authorizer, users ports.UserRepository, log zerolog.Logger) *Router {
	return &Router{
		authorizer: authorizer,
		users:      users,
		log:        log,
	}
}

// Handle routes one event by type and payload.
func (r *Router) Handle(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error) {
	switch ev.Type {
	case domain.EventCommand:
		return r.handleCommand(ctx, sess, ev)
	case domain.EventCallback:
		return r.handleCallback(ctx, sess, ev)
	case domain.EventPhoto:
		return r.handlePhoto(ctx, sess, ev)
	case domain.EventLocation:
		return r.handleLocation(ctx, sess, ev)
	case domain.EventMessage:
		return r.handleText(ctx, sess, ev)
	default:
		return r.fallback(ev.Text), nil
	}
}

func (r *Router) handleCommand(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error) {
	cmd, args, _ := strings.Cut(strings.TrimSpace(ev.Text), " ")
	switch cmd {
	case "/start":
		return r.start(ctx, sess, ev)
	case "/help":
		return r.help(), nil
	case "/track":
		return r.track(args), nil
	default:
		return r.fallback(ev.Text), nil
	}
}

func (r *Router) handleCallback(ctx context.Context, sess *domain.Session, ev domain.InboundEvent) (domain.Reply, error) {
	switch ev.Text {
	case cbRoleCustomer:
		return r.selectRole(ctx, sess, domain.RoleCustomer)
	case cbRoleStoreOwner:
		return r.selectRole(ctx, sess, domain.RoleStoreOwner)
	case cbRoleShipper:
		return r.selectRole(ctx, sess, domain.RoleShipper)
	case cbRoleAdmin:
		return r.selectAdmin(ctx, sess)
	case cbChangeRole:
		return domain.Reply{Text: changeRoleText, Menu: roleSelectionMenu, EditCurrent: true}, nil
	case cbProfile:
		return domain.Reply{Text: profileText}, nil
	case cbFindStores:
		return domain.Reply{Text: findStoresText, Menu: locationRequestMenu}, nil
	case cbUploadPhoto:
		sess.AwaitingPhoto = true
		return domain.Reply{Text: uploadPhotoText}, nil
	case cbMyOrders:
		return domain.Reply{Text: myOrdersText}, nil
	case cbLoyalty:
		return r.loyalty(sess), nil
	case cbTrackOrder:
		return domain.Reply{Text: "Send /track followed by your order id, for example: /track 12345"}, nil
	default:
		return r.fallback(ev.Text), nil
	}
}

package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/zosai/marketplace-bot/internal/api/metrics"
	"github.com/zosai/marketplace-bot/internal/core/audit"
)

// SuperAdminAuthorizer grants privilege to exactly one configured identity.
// There is no role hierarchy, no delegation, and no caching: every
// privileged action re-checks the caller id fresh, and every decision —
// grant or denial — goes to the audit trail.
type SuperAdminAuthorizer struct {
	adminID string // the configured id, compared verbatim
	auditor *audit.Dispatcher
	log     zerolog.Logger
}

// NewSuperAdminAuthorizer builds an authorizer for the configured admin id.
// adminID must be non-empty; config loading enforces that before we get here.
func NewSuperAdminAuthorizer(adminID string, auditor *audit.Dispatcher, log zerolog.Logger) *SuperAdminAuthorizer {
	return &SuperAdminAuthorizer{
		adminID: adminID,
		auditor: auditor,
		log:     log,
	}
}

// IsAuthorized reports whether the caller id is the super admin. The
// numeric id is rendered in canonical decimal before comparison, so a
// configured value with whitespace or leading zeros matches nothing.
func (a *SuperAdminAuthorizer) IsAuthorized(ctx context.Context, userID int64, action string) bool {
	return a.decide(strconv.FormatInt(userID, 10), action)
}

// IsTokenAuthorized compares an opaque token (the x-admin-token header)
// byte-for-byte against the configured id.
func (a *SuperAdminAuthorizer) IsTokenAuthorized(ctx context.Context, token, action string) bool {
	return a.decide(token, action)
}

func (a *SuperAdminAuthorizer) decide(actor, action string) bool {
	granted := actor == a.adminID

	decision := audit.DecisionDenied
	if granted {
		decision = audit.DecisionGranted
	}
	a.auditor.Record(actor, action, decision)
	metrics.AuthDecisions.WithLabelValues(string(decision)).Inc()

	if !granted {
		a.log.Warn().Str("actor", actor).Str("action", action).Msg("privileged action denied")
	} else {
		a.log.Info().Str("actor", actor).Str("action", action).Msg("privileged action granted")
	}
	return granted
}

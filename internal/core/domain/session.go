package domain

import "time"

// Role is the conversation role a user picked from the start menu.
// It routes UI behaviour only; it confers no privilege. Privileged actions
// always re-check the caller identity against the configured super admin.
type Role string

const (
	RoleUnset      Role = ""
	RoleCustomer   Role = "customer"
	RoleStoreOwner Role = "store_owner"
	RoleShipper    Role = "shipper"
	RoleSuperAdmin Role = "super_admin"
)

// Coordinates represents a geographic point shared by a user.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Session is the per-user conversation state. One live Session exists per
// telegram id; it is persisted with a TTL and recreated empty on a miss.
type Session struct {
	TelegramID    int64        `json:"telegram_id"`
	Username      string       `json:"username,omitempty"`
	FirstName     string       `json:"first_name,omitempty"`
	Role          Role         `json:"role,omitempty"`
	AwaitingPhoto bool         `json:"awaiting_photo,omitempty"`
	Location      *Coordinates `json:"location,omitempty"`
	LoyaltyPoints int          `json:"loyalty_points,omitempty"`
	LastActivity  time.Time    `json:"last_activity,omitempty"`

	// Extra holds ad hoc handler state that has not earned a typed field yet.
	Extra map[string]string `json:"extra,omitempty"`
}

// NewSession returns an empty session seeded with the user identity.
func NewSession(telegramID int64) *Session {
	return &Session{TelegramID: telegramID}
}

// SetExtra stores an ad hoc key, allocating the map on first use.
func (s *Session) SetExtra(key, value string) {
	if s.Extra == nil {
		s.Extra = make(map[string]string, 1)
	}
	s.Extra[key] = value
}

// Touch records the time of the latest event for this session.
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now.UTC()
}

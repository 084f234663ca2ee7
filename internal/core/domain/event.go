package domain

// EventType classifies an inbound update delivered by the transport.
type EventType string

const (
	EventCommand  EventType = "command"
	EventCallback EventType = "callback"
	EventMessage  EventType = "message"
	EventPhoto    EventType = "photo"
	EventLocation EventType = "location"
)

// InboundEvent is what the transport hands to the pipeline: a caller-asserted
// identity plus the event payload. The identity is trusted as far as the
// transport guarantees it and no further.
type InboundEvent struct {
	UserID    int64
	Username  string
	FirstName string
	Type      EventType
	Text      string       // command or message text, callback data for callbacks
	PhotoID   string       // transport file id, photo events only
	Location  *Coordinates // location events only
}

// Button is a single inline-keyboard button.
type Button struct {
	Label           string `json:"label"`
	Data            string `json:"data,omitempty"`
	RequestLocation bool   `json:"request_location,omitempty"`
}

// Menu is an inline keyboard: rows of buttons rendered by the transport.
type Menu struct {
	Rows [][]Button `json:"rows"`
}

// Reply is the outbound message a handler produced. The transport decides
// how to render it; an empty Reply means no response is sent.
type Reply struct {
	Text        string `json:"text"`
	Menu        *Menu  `json:"menu,omitempty"`
	EditCurrent bool   `json:"edit_current,omitempty"` // edit the triggering message instead of sending a new one
}

// IsZero reports whether the reply carries nothing to send.
func (r Reply) IsZero() bool {
	return r.Text == "" && r.Menu == nil
}

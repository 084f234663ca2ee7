package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zosai/marketplace-bot/internal/core/domain"
)

// EventEnqueuer is the interface the webhook handler uses to hand events to
// the worker pool.
type EventEnqueuer interface {
	Enqueue(ev domain.InboundEvent)
}

// inboundEventRequest is the wire shape of one transport update.
type inboundEventRequest struct {
	UserID    int64            `json:"user_id" validate:"required,gt=0"`
	Username  string           `json:"username"`
	FirstName string           `json:"first_name"`
	Type      string           `json:"type" validate:"required,oneof=command callback message photo location"`
	Text      string           `json:"text"`
	PhotoID   string           `json:"photo_id"`
	Location  *locationRequest `json:"location"`
}

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// WebhookHandler ingests inbound bot events over HTTP.
type WebhookHandler struct {
	enqueuer EventEnqueuer
}

// NewWebhookHandler creates a WebhookHandler backed by the given enqueuer.
func NewWebhookHandler(enqueuer EventEnqueuer) *WebhookHandler {
	return &WebhookHandler{enqueuer: enqueuer}
}

// Receive handles POST /webhook — validates the update and enqueues it for
// the user's worker shard, returning 202 without waiting for processing.
func (h *WebhookHandler) Receive(c echo.Context) error {
	var req inboundEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.enqueuer.Enqueue(toInboundEvent(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

func toInboundEvent(r inboundEventRequest) domain.InboundEvent {
	ev := domain.InboundEvent{
		UserID:    r.UserID,
		Username:  r.Username,
		FirstName: r.FirstName,
		Type:      domain.EventType(r.Type),
		Text:      r.Text,
		PhotoID:   r.PhotoID,
	}
	if r.Location != nil {
		ev.Location = &domain.Coordinates{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}
	return ev
}

package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated      EventType = "ticket_created"
	EventTicketCreateFailed EventType = "ticket_create_failed"
	EventTicketClosed       EventType = "ticket_closed"
	EventPanelPosted        EventType = "panel_posted"
	EventSupportRoleSet     EventType = "support_role_set"
)

// Event represents a domain event emitted by the ticket service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GuildID   string      `json:"guild_id,omitempty"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Number    int    `json:"number"`
	OwnerID   string `json:"owner_id"`
	ChannelID string `json:"channel_id"`
}

// TicketCreateFailedPayload payload. The number was already consumed when the
// failure happened; it will never correspond to a channel.
type TicketCreateFailedPayload struct {
	Number int    `json:"number"`
	Reason string `json:"reason"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	OwnerID   string `json:"owner_id"`
	ChannelID string `json:"channel_id"`
	ClosedBy  string `json:"closed_by"`
}

// PanelPostedPayload payload.
type PanelPostedPayload struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
}

// SupportRoleSetPayload payload.
type SupportRoleSetPayload struct {
	RoleID string `json:"role_id"`
}

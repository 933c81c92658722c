package service

import "context"

// OverwriteKind distinguishes the principal an override applies to.
type OverwriteKind string

const (
	OverwriteRole   OverwriteKind = "role"
	OverwriteMember OverwriteKind = "member"
)

// ChannelPermissions captures the only channel permissions the ticket
// lifecycle cares about.
type ChannelPermissions struct {
	View bool
	Send bool
}

// Overwrite is a per-principal permission override on a ticket channel.
type Overwrite struct {
	ID    string
	Kind  OverwriteKind
	Allow ChannelPermissions
	Deny  ChannelPermissions
}

// Gateway is the slice of the chat platform this service consumes. The
// platform's gateway connection, command registration and permission model
// live behind it; the discord package provides the production implementation.
type Gateway interface {
	// EnsureTicketCategory returns the id of the guild's ticket category,
	// creating it when absent. Must be idempotent.
	EnsureTicketCategory(ctx context.Context, guildID string) (string, error)

	// CreateTicketChannel creates a text channel under the category with the
	// given per-principal overrides and returns its id.
	CreateTicketChannel(ctx context.Context, guildID, categoryID, name string, overwrites []Overwrite) (string, error)

	// SendTicketWelcome posts the introductory message into a ticket channel,
	// including the close control bound to the owner.
	SendTicketWelcome(ctx context.Context, channelID, ownerID string, number int) error

	// SendPanel posts the panel message carrying the create-ticket control and
	// returns the message id.
	SendPanel(ctx context.Context, channelID string) (string, error)

	// DeleteChannel removes a channel. Deletion is the sole close mechanism.
	DeleteChannel(ctx context.Context, channelID string) error
}

package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/service"
)

// Custom ids routing component interactions back to the ticket service. The
// close id carries the ticket owner's user id so the authorization rule
// survives restarts without any extra persisted state.
const (
	CustomIDCreateTicket = "ticket_create"
	CustomIDClosePrefix  = "ticket_close:"
)

// Gateway implements service.Gateway on top of a discordgo session.
type Gateway struct {
	session      *discordgo.Session
	categoryName string
}

// NewGateway constructs the adapter.
func NewGateway(session *discordgo.Session, categoryName string) *Gateway {
	return &Gateway{session: session, categoryName: categoryName}
}

// EnsureTicketCategory finds the guild's ticket category by name, creating it
// when absent.
func (g *Gateway) EnsureTicketCategory(ctx context.Context, guildID string) (string, error) {
	channels, err := g.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("list guild channels: %w", err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildCategory && ch.Name == g.categoryName {
			return ch.ID, nil
		}
	}

	category, err := g.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name: g.categoryName,
		Type: discordgo.ChannelTypeGuildCategory,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create category %q: %w", g.categoryName, err)
	}
	return category.ID, nil
}

// CreateTicketChannel creates the private text channel backing a ticket.
func (g *Gateway) CreateTicketChannel(ctx context.Context, guildID, categoryID, name string, overwrites []service.Overwrite) (string, error) {
	channel, err := g.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             categoryID,
		PermissionOverwrites: translateOverwrites(overwrites),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create channel %q: %w", name, err)
	}
	return channel.ID, nil
}

// SendTicketWelcome posts the introductory message with the owner-bound close
// button.
func (g *Gateway) SendTicketWelcome(ctx context.Context, channelID, ownerID string, number int) error {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎟 Ticket #%s", domain.FormatTicketNumber(number)),
		Description: fmt.Sprintf("<@%s>, please describe your issue.", ownerID),
		Color:       0x3498db,
	}
	_, err := g.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s>", ownerID),
		Embeds:  []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Close Ticket",
						Style:    discordgo.DangerButton,
						CustomID: CustomIDClosePrefix + ownerID,
						Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
					},
				},
			},
		},
	}, discordgo.WithContext(ctx))
	return err
}

// SendPanel posts the standing panel message carrying the create-ticket
// control and returns the message id.
func (g *Gateway) SendPanel(ctx context.Context, channelID string) (string, error) {
	embed := &discordgo.MessageEmbed{
		Title:       "🎫 Support Tickets",
		Description: "Click the button below to create a ticket.",
		Color:       0x2ecc71,
	}
	message, err := g.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Create Ticket",
						Style:    discordgo.SuccessButton,
						CustomID: CustomIDCreateTicket,
						Emoji:    &discordgo.ComponentEmoji{Name: "🎫"},
					},
				},
			},
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return message.ID, nil
}

// DeleteChannel removes a ticket channel.
func (g *Gateway) DeleteChannel(ctx context.Context, channelID string) error {
	_, err := g.session.ChannelDelete(channelID, discordgo.WithContext(ctx))
	return err
}

func translateOverwrites(overwrites []service.Overwrite) []*discordgo.PermissionOverwrite {
	out := make([]*discordgo.PermissionOverwrite, 0, len(overwrites))
	for _, ow := range overwrites {
		kind := discordgo.PermissionOverwriteTypeRole
		if ow.Kind == service.OverwriteMember {
			kind = discordgo.PermissionOverwriteTypeMember
		}
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    ow.ID,
			Type:  kind,
			Allow: permissionBits(ow.Allow),
			Deny:  permissionBits(ow.Deny),
		})
	}
	return out
}

func permissionBits(perms service.ChannelPermissions) int64 {
	var bits int64
	if perms.View {
		bits |= discordgo.PermissionViewChannel
	}
	if perms.Send {
		bits |= discordgo.PermissionSendMessages
	}
	return bits
}

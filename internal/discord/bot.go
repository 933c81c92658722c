package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/observability"
	"github.com/spec-kit/ticket-bot/internal/service"
	"github.com/spec-kit/ticket-bot/pkg/util/errorutil"
)

// Bot wires the gateway session to the ticket service: it registers the slash
// commands on Ready and routes interaction events into lifecycle operations.
type Bot struct {
	session *discordgo.Session
	tickets *service.TicketService
	metrics *observability.Metrics
	logger  *zap.Logger
}

// Dependencies bundles collaborators for the bot.
type Dependencies struct {
	Session *discordgo.Session
	Tickets *service.TicketService
	Metrics *observability.Metrics
	Logger  *zap.Logger
}

// NewBot constructs the bot and attaches its event handlers.
func NewBot(deps Dependencies) *Bot {
	b := &Bot{
		session: deps.Session,
		tickets: deps.Tickets,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteractionCreate)
	return b
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	return b.session.Open()
}

// Close tears the gateway connection down.
func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	b.logger.Info("logged in", zap.String("user", s.State.User.Username))

	// Bulk-overwrite per guild so stale definitions from previous runs are
	// replaced rather than accumulated.
	commands := applicationCommands()
	synced := 0
	for _, guild := range s.State.Guilds {
		if _, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, guild.ID, commands); err != nil {
			b.logger.Warn("failed to sync commands", zap.String("guild_id", guild.ID), zap.Error(err))
			continue
		}
		synced++
	}
	b.logger.Info("synchronized commands", zap.Int("guilds", synced))
}

// onInteractionCreate dispatches slash commands and component clicks. A panic
// in one handler is contained to that event.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic in interaction handler", zap.Any("panic", r))
		}
	}()

	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case CommandTicketSetup:
			b.handleTicketSetup(ctx, s, i)
		case CommandTicketRole:
			b.handleTicketRole(ctx, s, i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case customID == CustomIDCreateTicket:
			b.handleCreateTicket(ctx, s, i)
		case strings.HasPrefix(customID, CustomIDClosePrefix):
			b.handleCloseTicket(ctx, s, i, strings.TrimPrefix(customID, CustomIDClosePrefix))
		}
	}
}

func (b *Bot) handleCreateTicket(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil || i.GuildID == "" {
		return
	}

	ticket, err := b.tickets.CreateTicket(ctx, service.CreateTicketInput{
		GuildID:   i.GuildID,
		UserID:    user.ID,
		BotUserID: s.State.User.ID,
	})
	if err != nil {
		b.metrics.RecordInteraction(observability.InteractionCreateTicket, "error")
		b.respondError(s, i, err)
		return
	}

	b.metrics.RecordInteraction(observability.InteractionCreateTicket, "ok")
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Ticket created: <#%s>", ticket.ChannelID))
}

func (b *Bot) handleCloseTicket(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, ownerID string) {
	user := interactionUser(i)
	if user == nil {
		return
	}

	input := service.CloseTicketInput{
		ChannelID:     i.ChannelID,
		UserID:        user.ID,
		MemberRoleIDs: memberRoles(i),
		OwnerID:       ownerID,
	}

	// Authorize before acknowledging: the acknowledgement goes into the very
	// channel that deletion removes.
	if err := b.tickets.AuthorizeClose(input); err != nil {
		b.metrics.RecordInteraction(observability.InteractionCloseTicket, "denied")
		b.respondEphemeral(s, i, "❌ No permission.")
		return
	}

	b.respond(s, i, "🔒 Closing ticket...")

	if err := b.tickets.CloseTicket(ctx, input); err != nil {
		b.metrics.RecordInteraction(observability.InteractionCloseTicket, "error")
		b.logger.Error("close ticket failed", zap.String("channel_id", i.ChannelID), zap.Error(err))
		return
	}
	b.metrics.RecordInteraction(observability.InteractionCloseTicket, "ok")
}

func (b *Bot) handleTicketSetup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondEphemeral(s, i, "❌ A channel is required.")
		return
	}
	channelID, _ := options[0].Value.(string)

	if _, err := b.tickets.SetupPanel(ctx, i.GuildID, channelID); err != nil {
		b.metrics.RecordInteraction(observability.InteractionTicketSetup, "error")
		b.respondError(s, i, err)
		return
	}

	b.metrics.RecordInteraction(observability.InteractionTicketSetup, "ok")
	b.respondEphemeral(s, i, "✅ Panel sent.")
}

func (b *Bot) handleTicketRole(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.respondEphemeral(s, i, "❌ A role is required.")
		return
	}
	roleID, _ := options[0].Value.(string)

	if err := b.tickets.SetSupportRole(ctx, roleID); err != nil {
		b.metrics.RecordInteraction(observability.InteractionTicketRole, "error")
		b.respondError(s, i, err)
		return
	}

	b.metrics.RecordInteraction(observability.InteractionTicketRole, "ok")
	roleName := roleID
	if role := options[0].RoleValue(s, i.GuildID); role != nil {
		roleName = role.Name
	}
	b.respondEphemeral(s, i, fmt.Sprintf("✅ Role set to %s", roleName))
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		b.logger.Warn("interaction respond failed", zap.Error(err))
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Warn("interaction respond failed", zap.Error(err))
	}
}

// respondError reports a failure privately to the interacting user using the
// user-safe message carried by the domain error.
func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	b.respondEphemeral(s, i, "❌ "+errorutil.ToDomainError(err).Message)
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func memberRoles(i *discordgo.InteractionCreate) []string {
	if i.Member == nil {
		return nil
	}
	return i.Member.Roles
}

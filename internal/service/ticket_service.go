package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/events"
	"github.com/spec-kit/ticket-bot/internal/store"
	"github.com/spec-kit/ticket-bot/pkg/util/errorutil"
)

// TicketService drives the ticket lifecycle: reacting to create and close
// interactions, posting panels, and recording the support role. All counter
// state flows through the store; all platform effects flow through the
// gateway.
type TicketService struct {
	store      *store.Store
	gateway    Gateway
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      *store.Store
	Gateway    Gateway
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// CreateTicketInput describes a create-ticket button press.
type CreateTicketInput struct {
	GuildID   string
	UserID    string
	BotUserID string
}

// CloseTicketInput describes a close-ticket button press. OwnerID is the
// identity the close control was bound to when the ticket was created.
type CloseTicketInput struct {
	ChannelID     string
	UserID        string
	MemberRoleIDs []string
	OwnerID       string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		store:      deps.Store,
		gateway:    deps.Gateway,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTicket allocates the next ticket number and creates the private
// channel for it. The number is persisted before any platform call is made:
// when channel creation fails afterwards the number stays consumed and the
// error is returned so the caller can report the failure to the user.
func (s *TicketService) CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	number, err := s.store.AllocateTicketNumber()
	if err != nil {
		return nil, errorutil.NewInternalError(err)
	}

	categoryID, err := s.gateway.EnsureTicketCategory(ctx, input.GuildID)
	if err != nil {
		return nil, s.failCreate(ctx, input, number, "ensure category", err)
	}

	overwrites := []Overwrite{
		{ID: input.GuildID, Kind: OverwriteRole, Deny: ChannelPermissions{View: true}},
		{ID: input.UserID, Kind: OverwriteMember, Allow: ChannelPermissions{View: true, Send: true}},
		{ID: input.BotUserID, Kind: OverwriteMember, Allow: ChannelPermissions{View: true, Send: true}},
	}
	if roleID := s.store.SupportRoleID(); roleID != "" {
		overwrites = append(overwrites, Overwrite{
			ID:    roleID,
			Kind:  OverwriteRole,
			Allow: ChannelPermissions{View: true, Send: true},
		})
	}

	channelID, err := s.gateway.CreateTicketChannel(ctx, input.GuildID, categoryID, domain.TicketChannelName(number), overwrites)
	if err != nil {
		return nil, s.failCreate(ctx, input, number, "create channel", err)
	}

	ticket := &domain.Ticket{
		Number:    number,
		OwnerID:   input.UserID,
		ChannelID: channelID,
	}

	if err := s.gateway.SendTicketWelcome(ctx, channelID, input.UserID, number); err != nil {
		// The channel exists and is usable; losing the welcome message is not
		// worth failing the whole creation over.
		s.logger.Warn("failed to send ticket welcome",
			zap.Int("ticket_number", number),
			zap.String("channel_id", channelID),
			zap.Error(err))
	}

	s.logger.Info("ticket created",
		zap.Int("ticket_number", number),
		zap.String("owner_id", input.UserID),
		zap.String("channel_id", channelID))
	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketCreated,
		GuildID: input.GuildID,
		Actor:   input.UserID,
		Payload: events.TicketCreatedPayload{
			Number:    number,
			OwnerID:   input.UserID,
			ChannelID: channelID,
		},
	})
	return ticket, nil
}

// AuthorizeClose applies the close authorization rule without side effects:
// permitted only for the ticket owner or a holder of the configured support
// role. Callers that need to acknowledge before deleting check this first.
func (s *TicketService) AuthorizeClose(input CloseTicketInput) error {
	if !s.mayClose(input) {
		return errorutil.NewPermissionDenied("you are not allowed to close this ticket")
	}
	return nil
}

// CloseTicket deletes a ticket channel when the caller is the ticket owner or
// holds the configured support role. Anyone else gets a permission error and
// no state changes.
func (s *TicketService) CloseTicket(ctx context.Context, input CloseTicketInput) error {
	if err := s.AuthorizeClose(input); err != nil {
		return err
	}

	if err := s.gateway.DeleteChannel(ctx, input.ChannelID); err != nil {
		return errorutil.NewPlatformError("could not delete the ticket channel", err)
	}

	s.logger.Info("ticket closed",
		zap.String("channel_id", input.ChannelID),
		zap.String("owner_id", input.OwnerID),
		zap.String("closed_by", input.UserID))
	s.publishEvent(ctx, events.Event{
		Type:  events.EventTicketClosed,
		Actor: input.UserID,
		Payload: events.TicketClosedPayload{
			OwnerID:   input.OwnerID,
			ChannelID: input.ChannelID,
			ClosedBy:  input.UserID,
		},
	})
	return nil
}

// SetupPanel posts the ticket panel into the target channel and records its
// location. Posting a second panel supersedes the recorded reference of the
// first; the ticket counter is untouched.
func (s *TicketService) SetupPanel(ctx context.Context, guildID, channelID string) (string, error) {
	messageID, err := s.gateway.SendPanel(ctx, channelID)
	if err != nil {
		return "", errorutil.NewPlatformError("could not post the ticket panel", err)
	}
	if err := s.store.SetPanel(channelID, messageID); err != nil {
		return "", errorutil.NewInternalError(err)
	}

	s.logger.Info("panel posted",
		zap.String("channel_id", channelID),
		zap.String("message_id", messageID))
	s.publishEvent(ctx, events.Event{
		Type:    events.EventPanelPosted,
		GuildID: guildID,
		Payload: events.PanelPostedPayload{ChannelID: channelID, MessageID: messageID},
	})
	return messageID, nil
}

// SetSupportRole records the role whose holders may view and close any ticket.
func (s *TicketService) SetSupportRole(ctx context.Context, roleID string) error {
	if err := s.store.SetSupportRole(roleID); err != nil {
		return errorutil.NewInternalError(err)
	}

	s.logger.Info("support role set", zap.String("role_id", roleID))
	s.publishEvent(ctx, events.Event{
		Type:    events.EventSupportRoleSet,
		Payload: events.SupportRoleSetPayload{RoleID: roleID},
	})
	return nil
}

func (s *TicketService) mayClose(input CloseTicketInput) bool {
	if input.UserID == input.OwnerID {
		return true
	}
	roleID := s.store.SupportRoleID()
	if roleID == "" {
		return false
	}
	for _, id := range input.MemberRoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

func (s *TicketService) failCreate(ctx context.Context, input CreateTicketInput, number int, stage string, err error) error {
	s.logger.Error("ticket creation failed after number was allocated",
		zap.Int("ticket_number", number),
		zap.String("stage", stage),
		zap.String("user_id", input.UserID),
		zap.Error(err))
	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketCreateFailed,
		GuildID: input.GuildID,
		Actor:   input.UserID,
		Payload: events.TicketCreateFailedPayload{Number: number, Reason: stage},
	})
	return errorutil.NewPlatformError("could not create your ticket, please try again", err)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

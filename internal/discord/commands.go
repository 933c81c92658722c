package discord

import "github.com/bwmarrin/discordgo"

// Command names exposed to administrators.
const (
	CommandTicketSetup = "ticket_setup"
	CommandTicketRole  = "ticket_role"
)

// applicationCommands returns the bot's slash commands. Both are gated behind
// the administrator permission, so the platform rejects non-admin callers
// before the bot ever sees the interaction.
func applicationCommands() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)

	return []*discordgo.ApplicationCommand{
		{
			Name:                     CommandTicketSetup,
			Description:              "Send the ticket panel",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionChannel,
					Name:         "channel",
					Description:  "The channel to post the panel in",
					ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					Required:     true,
				},
			},
		},
		{
			Name:                     CommandTicketRole,
			Description:              "Set the support role",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role permitted to view and close any ticket",
					Required:    true,
				},
			},
		},
	}
}

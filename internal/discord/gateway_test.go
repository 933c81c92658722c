package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-bot/internal/service"
)

func TestTranslateOverwrites(t *testing.T) {
	overwrites := []service.Overwrite{
		{ID: "guild-1", Kind: service.OverwriteRole, Deny: service.ChannelPermissions{View: true}},
		{ID: "alice", Kind: service.OverwriteMember, Allow: service.ChannelPermissions{View: true, Send: true}},
	}

	got := translateOverwrites(overwrites)
	require.Len(t, got, 2)

	assert.Equal(t, discordgo.PermissionOverwriteTypeRole, got[0].Type)
	assert.Equal(t, int64(discordgo.PermissionViewChannel), got[0].Deny)
	assert.Zero(t, got[0].Allow)

	assert.Equal(t, discordgo.PermissionOverwriteTypeMember, got[1].Type)
	assert.Equal(t, int64(discordgo.PermissionViewChannel|discordgo.PermissionSendMessages), got[1].Allow)
	assert.Zero(t, got[1].Deny)
}

func TestApplicationCommandsAdminGated(t *testing.T) {
	commands := applicationCommands()
	require.Len(t, commands, 2)

	names := map[string]bool{}
	for _, cmd := range commands {
		names[cmd.Name] = true
		require.NotNil(t, cmd.DefaultMemberPermissions, "%s must be admin gated", cmd.Name)
		assert.Equal(t, int64(discordgo.PermissionAdministrator), *cmd.DefaultMemberPermissions)
		require.Len(t, cmd.Options, 1)
		assert.True(t, cmd.Options[0].Required)
	}
	assert.True(t, names[CommandTicketSetup])
	assert.True(t, names[CommandTicketRole])
}

package lantern_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lantern "github.com/LanternTeam/Lantern"
	"github.com/LanternTeam/Lantern/discord"
)

// permissionFixture builds a guild with an @everyone role, a mods role, one
// member holding mods, and a text channel.
func permissionFixture(t *testing.T) (*lantern.State, *lantern.Guild, *lantern.Channel, *lantern.User) {
	t.Helper()

	state := newTestState(t)

	ownerID := discord.Snowflake(900)
	guildData := discord.Guild{
		ID:      1,
		Name:    "guild",
		OwnerID: &ownerID,
		Roles: []discord.Role{
			{ID: 1, Name: "@everyone", Permissions: discord.PermissionViewChannel | discord.PermissionSendMessages},
			{ID: 10, Name: "mods", Permissions: discord.PermissionAddReactions, Position: 1},
		},
		Channels: []discord.Channel{
			{ID: 100, Type: discord.ChannelTypeGuildText, Name: "general"},
		},
		Members: []discord.GuildMember{
			{
				User:  &discord.User{ID: 500, Username: "member"},
				Roles: []discord.Snowflake{10},
			},
		},
	}

	guild := state.GuildFromData(guildData)

	channel, ok := state.Channel(100)
	require.True(t, ok)

	member, ok := state.User(500)
	require.True(t, ok)

	return state, guild, channel, member
}

func TestPermissionsBaseUnion(t *testing.T) {
	t.Parallel()

	_, _, channel, member := permissionFixture(t)

	permissions := channel.PermissionsFor(member)

	assert.NotZero(t, permissions&discord.PermissionViewChannel)
	assert.NotZero(t, permissions&discord.PermissionSendMessages)
	assert.NotZero(t, permissions&discord.PermissionAddReactions)
	assert.Zero(t, permissions&discord.PermissionBanMembers)
}

func TestPermissionsAdministratorShortCircuit(t *testing.T) {
	t.Parallel()

	state, _, channel, member := permissionFixture(t)

	role, ok := state.Role(10)
	require.True(t, ok)

	role.DifferenceUpdate(discord.Role{ID: 10, Name: "mods", Permissions: discord.PermissionAdministrator, Position: 1})

	permissions := channel.PermissionsFor(member)

	assert.NotZero(t, permissions&discord.PermissionBanMembers)
	assert.NotZero(t, permissions&discord.PermissionManageServer)

	// The kind mask still applies even to administrators.
	assert.Zero(t, permissions&discord.PermissionVoiceConnect)
}

func TestPermissionsGuildOwner(t *testing.T) {
	t.Parallel()

	state, _, channel, _ := permissionFixture(t)

	owner := state.UserFromData(discord.User{ID: 900, Username: "owner"})

	permissions := channel.PermissionsFor(owner)
	assert.NotZero(t, permissions&discord.PermissionBanMembers)
	assert.Zero(t, permissions&discord.PermissionVoiceConnect)
}

func TestPermissionsNonMember(t *testing.T) {
	t.Parallel()

	state, _, channel, _ := permissionFixture(t)

	stranger := state.UserFromData(discord.User{ID: 600, Username: "stranger"})

	assert.Equal(t, discord.PermissionNone, channel.PermissionsFor(stranger))
}

func TestPermissionsOverwriteOrder(t *testing.T) {
	t.Parallel()

	_, _, channel, member := permissionFixture(t)

	// everyone denies sending, the mods role re-allows it, and the member
	// overwrite denies reactions; the member overwrite must win last.
	channel.DifferenceUpdate(discord.Channel{
		ID:   100,
		Type: discord.ChannelTypeGuildText,
		Name: "general",
		PermissionOverwrites: []discord.ChannelOverwrite{
			{ID: 1, Type: discord.ChannelOverrideTypeRole, Deny: discord.PermissionSendMessages},
			{ID: 10, Type: discord.ChannelOverrideTypeRole, Allow: discord.PermissionSendMessages},
			{ID: 500, Type: discord.ChannelOverrideTypeMember, Deny: discord.PermissionAddReactions},
		},
	})

	permissions := channel.PermissionsFor(member)

	assert.NotZero(t, permissions&discord.PermissionSendMessages)
	assert.NotZero(t, permissions&discord.PermissionViewChannel)
	assert.Zero(t, permissions&discord.PermissionAddReactions)
}

func TestPermissionsWebhook(t *testing.T) {
	t.Parallel()

	state, _, channel, _ := permissionFixture(t)

	guildID := discord.Snowflake(1)
	channelID := discord.Snowflake(100)
	otherChannelID := discord.Snowflake(101)

	state.WebhookFromData(discord.Webhook{
		ID:        800,
		GuildID:   &guildID,
		ChannelID: &channelID,
		Type:      discord.WebhookTypeIncoming,
		Name:      "poster",
	})
	state.WebhookFromData(discord.Webhook{
		ID:        801,
		GuildID:   &guildID,
		ChannelID: &otherChannelID,
		Type:      discord.WebhookTypeIncoming,
		Name:      "elsewhere",
	})

	hookUser := state.UserFromData(discord.User{ID: 800, Username: "poster", Bot: true})
	otherHookUser := state.UserFromData(discord.User{ID: 801, Username: "elsewhere", Bot: true})

	// A webhook posting into its own channel sees the everyone base.
	permissions := channel.PermissionsFor(hookUser)
	assert.NotZero(t, permissions&discord.PermissionSendMessages)

	// A webhook bound to a different channel is a stranger here.
	assert.Equal(t, discord.PermissionNone, channel.PermissionsFor(otherHookUser))
}

func TestPermissionsPrivateChannel(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	recipient := state.UserFromData(discord.User{ID: 500, Username: "friend"})
	stranger := state.UserFromData(discord.User{ID: 600, Username: "stranger"})

	channel := state.ChannelFromData(discord.Channel{
		ID:         100,
		Type:       discord.ChannelTypeDM,
		Recipients: []discord.User{{ID: 500, Username: "friend"}},
	}, 0)

	assert.Equal(t, discord.PermissionAllText, channel.PermissionsFor(recipient))
	assert.Equal(t, discord.PermissionNone, channel.PermissionsFor(stranger))
}

func TestPermissionsVoiceKindMask(t *testing.T) {
	t.Parallel()

	state, _, _, member := permissionFixture(t)

	voice := state.ChannelFromData(discord.Channel{
		ID:   101,
		Type: discord.ChannelTypeGuildVoice,
		Name: "voice",
	}, 1)

	role, ok := state.Role(1)
	require.True(t, ok)

	role.DifferenceUpdate(discord.Role{
		ID:          1,
		Name:        "@everyone",
		Permissions: discord.PermissionViewChannel | discord.PermissionSendTTSMessages | discord.PermissionVoiceConnect,
	})

	permissions := voice.PermissionsFor(member)

	assert.NotZero(t, permissions&discord.PermissionViewChannel)
	assert.NotZero(t, permissions&discord.PermissionVoiceConnect)
	assert.Zero(t, permissions&discord.PermissionSendTTSMessages)
}

func TestPermissionCacheInvalidation(t *testing.T) {
	t.Parallel()

	state, guild, channel, member := permissionFixture(t)

	before := channel.PermissionsFor(member)
	require.Zero(t, before&discord.PermissionBanMembers)
	require.Equal(t, 1, channel.CachedPermissionCount())

	role, ok := state.Role(10)
	require.True(t, ok)

	// Changing a permission input clears the whole cache, never an entry.
	role.DifferenceUpdate(discord.Role{
		ID:          10,
		Name:        "mods",
		Permissions: discord.PermissionAddReactions | discord.PermissionBanMembers,
		Position:    1,
	})

	assert.Zero(t, channel.CachedPermissionCount())

	after := channel.PermissionsFor(member)
	assert.NotZero(t, after&discord.PermissionBanMembers)

	guildBefore := guild.PermissionsFor(member)
	assert.NotZero(t, guildBefore&discord.PermissionBanMembers)
}

func TestCategoryChannelRelation(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	categoryID := discord.Snowflake(50)

	state.GuildFromData(discord.Guild{
		ID: 1,
		Channels: []discord.Channel{
			{ID: 50, Type: discord.ChannelTypeGuildCategory, Name: "category"},
			{ID: 100, Type: discord.ChannelTypeGuildText, Name: "b", ParentID: &categoryID, Position: 1},
			{ID: 101, Type: discord.ChannelTypeGuildText, Name: "a", ParentID: &categoryID, Position: 0},
			{ID: 102, Type: discord.ChannelTypeGuildText, Name: "stray"},
		},
	})

	category, ok := state.Channel(50)
	require.True(t, ok)

	children := category.Channels()
	require.Len(t, children, 2)
	assert.Equal(t, discord.Snowflake(101), children[0].ID)
	assert.Equal(t, discord.Snowflake(100), children[1].ID)

	child, ok := state.Channel(100)
	require.True(t, ok)

	parent, ok := child.Category()
	require.True(t, ok)
	assert.Same(t, category, parent)

	// The relation is derived from the child's parent ID, so a reparent can
	// never leave the two sides disagreeing.
	child.DifferenceUpdate(discord.Channel{ID: 100, Type: discord.ChannelTypeGuildText, Name: "b", Position: 1})

	_, ok = child.Category()
	assert.False(t, ok)
	assert.Len(t, category.Channels(), 1)
}

func TestMessageHistoryWindow(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	channel := state.ChannelFromData(discord.Channel{ID: 100, Type: discord.ChannelTypeGuildText}, 1)

	for i := 1; i <= 25; i++ {
		channel.AddMessage(discord.Message{ID: discord.Snowflake(i), ChannelID: 100})
	}

	messages := channel.Messages()
	require.Len(t, messages, lantern.DefaultMessageLimit)

	// Oldest messages fall off first.
	assert.Equal(t, discord.Snowflake(16), messages[0].ID)
	assert.Equal(t, discord.Snowflake(25), messages[len(messages)-1].ID)

	channel.SetMessageKeepLimit(3)
	assert.Len(t, channel.Messages(), 3)
}

func TestUnlimitedHistorySweep(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	channel := state.ChannelFromData(discord.Channel{ID: 100, Type: discord.ChannelTypeGuildText}, 1)

	channel.EnableUnlimitedHistory(50 * time.Millisecond)

	for i := 1; i <= 100; i++ {
		channel.AddMessage(discord.Message{ID: discord.Snowflake(i), ChannelID: 100})
	}

	require.Len(t, channel.Messages(), 100)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go state.RunHistorySweeper(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return len(channel.Messages()) == lantern.DefaultMessageLimit
	}, 5*time.Second, 10*time.Millisecond)
}

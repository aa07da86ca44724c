package lantern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lantern "github.com/LanternTeam/Lantern"
	"github.com/LanternTeam/Lantern/discord"
	"github.com/LanternTeam/Lantern/lanternjson"
)

func TestRoleDifferenceUpdate(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	role := state.RoleFromData(discord.Role{
		ID:          10,
		Name:        "mods",
		Color:       0xff0000,
		Permissions: discord.PermissionSendMessages,
		Position:    3,
		Hoist:       true,
	}, 1)

	changes := role.DifferenceUpdate(discord.Role{
		ID:          10,
		Name:        "moderators",
		Color:       0xff0000,
		Permissions: discord.PermissionSendMessages,
		Position:    3,
		Hoist:       false,
	})

	assert.Equal(t, "mods", changes["name"])
	assert.Equal(t, true, changes["hoist"])

	// Unchanged fields must not appear at all.
	assert.NotContains(t, changes, "color")
	assert.NotContains(t, changes, "permissions")
	assert.NotContains(t, changes, "position")

	assert.Equal(t, "moderators", role.Name)
	assert.False(t, role.Hoist)
}

func TestRoleDifferenceUpdateNoChanges(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	data := roleData(10, 1, "mods", discord.PermissionSendMessages, 3)
	role := state.RoleFromData(data, 1)

	changes := role.DifferenceUpdate(data)
	assert.Empty(t, changes)
}

func TestRoleOrdering(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.GuildFromData(discord.Guild{
		ID: 1,
		Roles: []discord.Role{
			{ID: 30, Name: "c", Position: 2},
			{ID: 20, Name: "b", Position: 1},
			{ID: 10, Name: "a", Position: 1},
			{ID: 1, Name: "@everyone", Position: 0},
		},
	})

	guild, ok := state.Guild(1)
	require.True(t, ok)

	roles := guild.Roles()
	require.Len(t, roles, 4)

	// Ties on position break on ID, so the order is total.
	assert.Equal(t, discord.Snowflake(1), roles[0].ID)
	assert.Equal(t, discord.Snowflake(10), roles[1].ID)
	assert.Equal(t, discord.Snowflake(20), roles[2].ID)
	assert.Equal(t, discord.Snowflake(30), roles[3].ID)
}

func TestRoleDefaultRole(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.GuildFromData(discord.Guild{
		ID: 1,
		Roles: []discord.Role{
			{ID: 1, Name: "@everyone"},
			{ID: 10, Name: "mods"},
		},
	})

	guild, ok := state.Guild(1)
	require.True(t, ok)

	everyone, ok := guild.DefaultRole()
	require.True(t, ok)
	assert.True(t, everyone.IsDefault())
	assert.Equal(t, guild.ID, everyone.ID)

	mods, ok := guild.Role(10)
	require.True(t, ok)
	assert.False(t, mods.IsDefault())
}

func TestRoleIconEmojiMutualExclusion(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	_, err := state.PrecreateRole(10,
		lantern.WithRoleIcon("icon_hash"),
		lantern.WithRoleUnicodeEmoji("🔥"),
	)
	assert.ErrorIs(t, err, lantern.ErrInvalidValue)
}

func TestRoleCopyWithNullsOtherIconField(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	role, err := state.PrecreateRole(10, lantern.WithRoleIcon("icon_hash"))
	require.NoError(t, err)

	copied, err := role.CopyWith(lantern.WithRoleUnicodeEmoji("🔥"))
	require.NoError(t, err)

	assert.Equal(t, "🔥", copied.UnicodeEmoji)
	assert.Empty(t, copied.Icon)

	// The original is untouched; the copy is detached.
	assert.Equal(t, "icon_hash", role.Icon)

	held, ok := state.Role(10)
	require.True(t, ok)
	assert.Same(t, role, held)
}

func TestRoleDeleteUnlinksMembers(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.GuildFromData(discord.Guild{
		ID: 1,
		Roles: []discord.Role{
			{ID: 1, Name: "@everyone"},
			{ID: 10, Name: "mods"},
			{ID: 20, Name: "admins"},
		},
		Members: []discord.GuildMember{
			{
				User:  &discord.User{ID: 500, Username: "member"},
				Roles: []discord.Snowflake{10, 20},
			},
			{
				User:  &discord.User{ID: 501, Username: "solo"},
				Roles: []discord.Snowflake{10},
			},
		},
	})

	role, ok := state.Role(10)
	require.True(t, ok)

	role.Delete()

	member, ok := state.User(500)
	require.True(t, ok)

	profile, ok := member.Profile(1)
	require.True(t, ok)
	assert.Equal(t, []discord.Snowflake{20}, profile.RoleIDs)

	solo, ok := state.User(501)
	require.True(t, ok)

	soloProfile, ok := solo.Profile(1)
	require.True(t, ok)

	// An emptied role list collapses to nil.
	assert.Nil(t, soloProfile.RoleIDs)
}

func TestRoleManagerDetection(t *testing.T) {
	t.Parallel()

	botID := discord.Snowflake(42)
	integrationID := discord.Snowflake(43)
	listingID := discord.Snowflake(44)
	premium := true
	connections := true

	for _, tt := range []struct {
		name string
		data discord.Role
		want lantern.RoleManagerType
	}{
		{
			name: "unmanaged",
			data: discord.Role{ID: 10},
			want: lantern.RoleManagerTypeNone,
		},
		{
			name: "managed without tags",
			data: discord.Role{ID: 10, Managed: true},
			want: lantern.RoleManagerTypeUnset,
		},
		{
			name: "bot",
			data: discord.Role{ID: 10, Managed: true, Tags: &discord.RoleTag{BotID: &botID}},
			want: lantern.RoleManagerTypeBot,
		},
		{
			name: "booster",
			data: discord.Role{ID: 10, Managed: true, Tags: &discord.RoleTag{PremiumSubscriber: &premium}},
			want: lantern.RoleManagerTypeBooster,
		},
		{
			name: "integration",
			data: discord.Role{ID: 10, Managed: true, Tags: &discord.RoleTag{IntegrationID: &integrationID}},
			want: lantern.RoleManagerTypeIntegration,
		},
		{
			name: "subscription",
			data: discord.Role{ID: 10, Managed: true, Tags: &discord.RoleTag{
				IntegrationID:         &integrationID,
				SubscriptionListingID: &listingID,
			}},
			want: lantern.RoleManagerTypeSubscription,
		},
		{
			name: "app role connection",
			data: discord.Role{ID: 10, Managed: true, Tags: &discord.RoleTag{GuildConnections: &connections}},
			want: lantern.RoleManagerTypeAppRoleConnection,
		},
		{
			name: "managed with unrecognized tags",
			data: discord.Role{ID: 10, Managed: true, Tags: &discord.RoleTag{}},
			want: lantern.RoleManagerTypeUnknown,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := newTestState(t)

			role := state.RoleFromData(tt.data, 1)
			assert.Equal(t, tt.want, role.ManagerType())
			assert.Equal(t, tt.want, role.Manager.ManagerType())
			assert.Equal(t, tt.want != lantern.RoleManagerTypeNone, role.Managed())
		})
	}
}

func TestRoleManagerDetectionFromWire(t *testing.T) {
	t.Parallel()

	// The booster, purchasable and guild-connections markers are
	// present-but-null keys on the wire; detection must key off presence,
	// not the decoded value.
	for _, tt := range []struct {
		name    string
		payload string
		want    lantern.RoleManagerType
	}{
		{
			name:    "booster null marker",
			payload: `{"id":"10","managed":true,"tags":{"premium_subscriber":null}}`,
			want:    lantern.RoleManagerTypeBooster,
		},
		{
			name:    "guild connections null marker",
			payload: `{"id":"10","managed":true,"tags":{"guild_connections":null}}`,
			want:    lantern.RoleManagerTypeAppRoleConnection,
		},
		{
			name:    "bot",
			payload: `{"id":"10","managed":true,"tags":{"bot_id":"42"}}`,
			want:    lantern.RoleManagerTypeBot,
		},
		{
			name:    "purchasable subscription",
			payload: `{"id":"10","managed":true,"tags":{"integration_id":"43","subscription_listing_id":"44","available_for_purchase":null}}`,
			want:    lantern.RoleManagerTypeSubscription,
		},
		{
			name:    "empty tag object",
			payload: `{"id":"10","managed":true,"tags":{}}`,
			want:    lantern.RoleManagerTypeUnknown,
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var data discord.Role

			require.NoError(t, lanternjson.Unmarshal([]byte(tt.payload), &data))

			state := newTestState(t)

			role := state.RoleFromData(data, 1)
			assert.Equal(t, tt.want, role.ManagerType())
		})
	}
}

func TestRoleManagerRedetectionOnlyWhileUnset(t *testing.T) {
	t.Parallel()

	state := newTestState(t)
	botID := discord.Snowflake(42)

	role := state.RoleFromData(discord.Role{ID: 10, Managed: true}, 1)
	require.Equal(t, lantern.RoleManagerTypeUnset, role.ManagerType())

	changes := role.DifferenceUpdate(discord.Role{ID: 10, Managed: true, Tags: &discord.RoleTag{BotID: &botID}})
	assert.Contains(t, changes, "manager")
	require.Equal(t, lantern.RoleManagerTypeBot, role.ManagerType())

	bot, ok := role.Manager.(lantern.RoleManagerBot)
	require.True(t, ok)
	assert.Equal(t, botID, bot.BotID)

	// Once resolved, later payloads cannot flip the manager kind.
	changes = role.DifferenceUpdate(discord.Role{ID: 10, Managed: true})
	assert.NotContains(t, changes, "manager")
	assert.Equal(t, lantern.RoleManagerTypeBot, role.ManagerType())
}

func TestRoleToData(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	role := state.RoleFromData(discord.Role{
		ID:          10,
		Name:        "mods",
		Permissions: discord.PermissionSendMessages,
	}, 1)

	compact := role.ToData(false, false)
	assert.Equal(t, "mods", compact["name"])
	assert.NotContains(t, compact, "id")
	assert.NotContains(t, compact, "color")
	assert.NotContains(t, compact, "hoist")

	full := role.ToData(true, true)
	assert.Equal(t, role.ID, full["id"])
	assert.Contains(t, full, "color")
	assert.Contains(t, full, "hoist")
	assert.Nil(t, full["icon"])
}

func TestRoleWireRoundTrip(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	var data discord.Role

	require.NoError(t, lanternjson.Unmarshal([]byte(`{
		"id": "123456789012345678",
		"name": "mods",
		"color": 0,
		"hoist": false,
		"position": 3,
		"permissions": "104324673",
		"managed": false,
		"mentionable": true
	}`), &data))

	role := state.RoleFromData(data, 1)

	assert.Equal(t, discord.Snowflake(123456789012345678), role.ID)
	assert.Equal(t, int32(3), role.Position)
	assert.True(t, role.Mentionable)
	assert.False(t, role.Managed())

	out, err := lanternjson.Marshal(role.ToData(false, false))
	require.NoError(t, err)

	assert.Contains(t, string(out), `"permissions":"104324673"`)
	assert.NotContains(t, string(out), "icon")
	assert.NotContains(t, string(out), "unicode_emoji")
	assert.NotContains(t, string(out), "tags")
}

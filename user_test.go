package lantern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lantern "github.com/LanternTeam/Lantern"
	"github.com/LanternTeam/Lantern/discord"
)

func TestUserProfileLifecycle(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	user := state.MemberFromData(discord.GuildMember{
		User:  &discord.User{ID: 500, Username: "member", GlobalName: "Member"},
		Nick:  "nickname",
		Roles: []discord.Snowflake{10},
	}, 1)
	require.NotNil(t, user)

	assert.Equal(t, "Member", user.DisplayName())

	profile, ok := user.Profile(1)
	require.True(t, ok)
	assert.Equal(t, "nickname", profile.Nick)
	assert.Equal(t, []discord.Snowflake{10}, profile.RoleIDs)

	// The same user in a second guild shares one identity with two profiles.
	again := state.MemberFromData(discord.GuildMember{
		User: &discord.User{ID: 500, Username: "member"},
	}, 2)
	assert.Same(t, user, again)
	assert.ElementsMatch(t, []discord.Snowflake{1, 2}, user.MutualGuilds())

	state.MemberRemove(500, 1)

	_, ok = user.Profile(1)
	assert.False(t, ok)

	// Leaving a guild never evicts the user itself.
	held, ok := state.User(500)
	require.True(t, ok)
	assert.Same(t, user, held)
}

func TestMemberUpdateDiff(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.MemberFromData(discord.GuildMember{
		User:  &discord.User{ID: 500, Username: "member"},
		Nick:  "old-nick",
		Roles: []discord.Snowflake{10},
	}, 1)

	user, changes := state.MemberUpdateFromData(discord.GuildMember{
		User:  &discord.User{ID: 500, Username: "member"},
		Nick:  "new-nick",
		Roles: []discord.Snowflake{10, 20},
	}, 1)
	require.NotNil(t, user)

	assert.Equal(t, "old-nick", changes["nick"])
	assert.Equal(t, []discord.Snowflake{10}, changes["role_ids"])
	assert.NotContains(t, changes, "pending")

	profile, ok := user.Profile(1)
	require.True(t, ok)
	assert.Equal(t, "new-nick", profile.Nick)
	assert.Equal(t, []discord.Snowflake{10, 20}, profile.RoleIDs)
}

func TestUserUpdateDiff(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	user := state.UserFromData(discord.User{ID: 500, Username: "before", Discriminator: "0"})

	changes := user.DifferenceUpdate(discord.User{ID: 500, Username: "after", Discriminator: "0"})

	assert.Equal(t, "before", changes["username"])
	assert.NotContains(t, changes, "discriminator")
	assert.Equal(t, "after", user.Username)
}

func TestMemberCachingDisabled(t *testing.T) {
	t.Parallel()

	config := lantern.DefaultConfiguration()
	config.CacheMembers = false

	state := lantern.NewState(nil, config)

	user := state.MemberFromData(discord.GuildMember{
		User: &discord.User{ID: 500, Username: "member"},
		Nick: "nickname",
	}, 1)
	require.NotNil(t, user)

	// Identity is still resolved even when profiles are not kept.
	assert.Equal(t, "member", user.Username)

	_, ok := user.Profile(1)
	assert.False(t, ok)
}

func TestProfileTopRole(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.GuildFromData(discord.Guild{
		ID: 1,
		Roles: []discord.Role{
			{ID: 1, Name: "@everyone", Position: 0},
			{ID: 10, Name: "low", Position: 1},
			{ID: 20, Name: "high", Position: 5},
		},
		Members: []discord.GuildMember{
			{
				User:  &discord.User{ID: 500, Username: "member"},
				Roles: []discord.Snowflake{10, 20},
			},
		},
	})

	user, ok := state.User(500)
	require.True(t, ok)

	profile, ok := user.Profile(1)
	require.True(t, ok)

	top, ok := profile.TopRole(state)
	require.True(t, ok)
	assert.Equal(t, discord.Snowflake(20), top.ID)
}

func TestGuildDeleteTearsDownProfiles(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.GuildFromData(discord.Guild{
		ID: 1,
		Members: []discord.GuildMember{
			{User: &discord.User{ID: 500, Username: "member"}},
		},
	})

	guild, ok := state.Guild(1)
	require.True(t, ok)

	guild.Delete()

	user, ok := state.User(500)
	require.True(t, ok)

	_, ok = user.Profile(1)
	assert.False(t, ok)

	assert.Empty(t, guild.Members())
}

package lantern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lantern "github.com/LanternTeam/Lantern"
	"github.com/LanternTeam/Lantern/discord"
)

func newTestState(t *testing.T) *lantern.State {
	t.Helper()

	return lantern.NewState(nil, lantern.DefaultConfiguration())
}

func roleData(id, guildID discord.Snowflake, name string, permissions discord.Int64, position int32) discord.Role {
	return discord.Role{
		ID:          id,
		GuildID:     &guildID,
		Name:        name,
		Permissions: permissions,
		Position:    position,
	}
}

func TestStateIdentityUniqueness(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	first := state.RoleFromData(roleData(10, 1, "mods", 0, 1), 1)
	second := state.RoleFromData(roleData(10, 1, "renamed-on-wire", 0, 1), 1)

	assert.Same(t, first, second)

	viaLookup, ok := state.Role(10)
	require.True(t, ok)
	assert.Same(t, first, viaLookup)
}

func TestStatePlaceholderCreation(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	role, err := state.PrecreateRole(10)
	require.NoError(t, err)
	assert.True(t, role.Partial())

	// A placeholder created as a side effect of a reference shares identity
	// with the one later filled from the wire.
	filled := state.RoleFromData(roleData(10, 1, "mods", 0, 1), 1)
	assert.Same(t, role, filled)
	assert.False(t, role.Partial())
	assert.Equal(t, "mods", role.Name)
}

func TestPrecreateRejectsZeroID(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	_, err := state.PrecreateRole(0)
	assert.ErrorIs(t, err, lantern.ErrInvalidArgument)

	_, err = state.PrecreateChannel(0)
	assert.ErrorIs(t, err, lantern.ErrInvalidArgument)
}

func TestPrecreateLiveEntityWins(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.RoleFromData(roleData(10, 1, "live", 0, 1), 1)

	role, err := state.PrecreateRole(10, lantern.WithRoleName("precreated"))
	require.NoError(t, err)

	// The entity is already materialized; the attribute arguments are
	// silently ignored.
	assert.Equal(t, "live", role.Name)
}

func TestPrecreatePartialRoundTrip(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	role, err := state.PrecreateRole(10, lantern.WithRoleName("expected"))
	require.NoError(t, err)
	assert.Equal(t, "expected", role.Name)
	assert.True(t, role.Partial())

	filled := state.RoleFromData(roleData(10, 1, "confirmed", 0, 1), 1)

	assert.Same(t, role, filled)
	assert.False(t, role.Partial())
	assert.Equal(t, "confirmed", role.Name)
}

func TestPrecreateValidationLeavesNoPartialMutation(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	_, err := state.PrecreateRole(10,
		lantern.WithRoleName("valid"),
		lantern.WithRoleColour(-1),
	)
	require.ErrorIs(t, err, lantern.ErrInvalidValue)

	role, err := state.PrecreateRole(10)
	require.NoError(t, err)

	// The failed call must not have applied its earlier, valid options.
	assert.Empty(t, role.Name)
}

func TestDeletionNeverEvictsFromRegistry(t *testing.T) {
	t.Parallel()

	state := newTestState(t)

	state.GuildFromData(discord.Guild{ID: 1, Name: "guild"})

	role := state.RoleFromData(roleData(10, 1, "mods", 0, 1), 1)
	role.Delete()

	held, ok := state.Role(10)
	require.True(t, ok)
	assert.Same(t, role, held)
	assert.True(t, held.GuildID.IsNil())

	guild, ok := state.Guild(1)
	require.True(t, ok)

	_, linked := guild.Role(10)
	assert.False(t, linked)
}

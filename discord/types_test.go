package discord_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LanternTeam/Lantern/discord"
	"github.com/LanternTeam/Lantern/lanternjson"
)

func TestSnowflakeUnmarshal(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		in   string
		want discord.Snowflake
	}{
		{name: "quoted", in: `"290325852398944257"`, want: 290325852398944257},
		{name: "bare", in: `290325852398944257`, want: 290325852398944257},
		{name: "null", in: `null`, want: 0},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var s discord.Snowflake

			require.NoError(t, lanternjson.Unmarshal([]byte(tt.in), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestSnowflakeMarshal(t *testing.T) {
	t.Parallel()

	out, err := lanternjson.Marshal(discord.Snowflake(290325852398944257))
	require.NoError(t, err)
	assert.Equal(t, `"290325852398944257"`, string(out))
}

func TestSnowflakeTime(t *testing.T) {
	t.Parallel()

	// A zero snowflake decodes to the Discord epoch itself.
	epoch := discord.Snowflake(0).Time()
	assert.Equal(t, int64(discord.DiscordCreation), epoch.UnixMilli())

	later := discord.Snowflake(1 << 22).Time()
	assert.Equal(t, int64(discord.DiscordCreation)+1, later.UnixMilli())
}

func TestInt64RoundTrip(t *testing.T) {
	t.Parallel()

	var in discord.Int64

	require.NoError(t, lanternjson.Unmarshal([]byte(`"104324673"`), &in))
	assert.Equal(t, discord.Int64(104324673), in)

	out, err := lanternjson.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `"104324673"`, string(out))
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)

	ts := discord.NewTimestamp(now)
	assert.Equal(t, discord.Timestamp("2021-04-12T09:30:00Z"), ts)
	assert.True(t, ts.Time().Equal(now))

	out, err := lanternjson.Marshal(discord.Timestamp(""))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	var parsed discord.Timestamp

	require.NoError(t, lanternjson.Unmarshal([]byte("null"), &parsed))
	assert.Empty(t, parsed)
}

func TestColourChannels(t *testing.T) {
	t.Parallel()

	colour := discord.NewColour(0x12, 0x34, 0x56)

	assert.Equal(t, discord.Colour(0x123456), colour)
	assert.Equal(t, uint8(0x12), colour.R())
	assert.Equal(t, uint8(0x34), colour.G())
	assert.Equal(t, uint8(0x56), colour.B())
}

func TestChannelOverrideTypeTolerantDecode(t *testing.T) {
	t.Parallel()

	var fromInt discord.ChannelOverrideType

	require.NoError(t, lanternjson.Unmarshal([]byte(`1`), &fromInt))
	assert.Equal(t, discord.ChannelOverrideTypeMember, fromInt)

	var fromString discord.ChannelOverrideType

	require.NoError(t, lanternjson.Unmarshal([]byte(`"0"`), &fromString))
	assert.Equal(t, discord.ChannelOverrideTypeRole, fromString)
}

package lantern

import "github.com/LanternTeam/Lantern/discord"

// OldAttributes maps wire field names to the value held before a differential
// update. A key is present only for fields that actually changed.
type OldAttributes map[string]any

// diffField records the previous value under name and assigns the new one,
// when the two differ.
func diffField[T comparable](old OldAttributes, name string, current *T, next T) {
	if *current != next {
		old[name] = *current
		*current = next
	}
}

// diffSnowflakeList is diffField for role-ID lists, which compare by content.
func diffSnowflakeList(old OldAttributes, name string, current *[]discord.Snowflake, next []discord.Snowflake) {
	if snowflakeListsEqual(*current, next) {
		return
	}

	old[name] = *current
	*current = next
}

func snowflakeListsEqual(a, b []discord.Snowflake) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func snowflakeListContains(list []discord.Snowflake, id discord.Snowflake) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}

	return false
}

// removeSnowflake removes id from list, collapsing an emptied list to nil so
// "has no roles" and "has an empty role list" stay indistinguishable.
func removeSnowflake(list []discord.Snowflake, id discord.Snowflake) ([]discord.Snowflake, bool) {
	for i, v := range list {
		if v != id {
			continue
		}

		out := append(list[:i:i], list[i+1:]...)
		if len(out) == 0 {
			out = nil
		}

		return out, true
	}

	return list, false
}

func overwriteMapsEqual(a, b map[discord.Snowflake]discord.ChannelOverwrite) bool {
	if len(a) != len(b) {
		return false
	}

	for id, ow := range a {
		other, ok := b[id]
		if !ok || other != ow {
			return false
		}
	}

	return true
}

func overwriteMapFromList(overwrites []discord.ChannelOverwrite) map[discord.Snowflake]discord.ChannelOverwrite {
	if len(overwrites) == 0 {
		return nil
	}

	out := make(map[discord.Snowflake]discord.ChannelOverwrite, len(overwrites))
	for _, ow := range overwrites {
		out[ow.ID] = ow
	}

	return out
}

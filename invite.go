package lantern

import (
	"time"

	"github.com/LanternTeam/Lantern/discord"
)

// Invite is the live, stateful representation of an invite. Invites are
// keyed by code rather than snowflake, never appear partial to callers, and
// carry no back-references from other entities, so deletion removes them
// from the registry outright.
type Invite struct {
	Code      string
	ExpiresAt discord.Timestamp
	CreatedAt discord.Timestamp

	GuildID   discord.Snowflake
	ChannelID discord.Snowflake
	InviterID discord.Snowflake

	Uses                     int32
	MaxUses                  int32
	MaxAge                   int32
	ApproximateMemberCount   int32
	ApproximatePresenceCount int32
	Temporary                bool

	state *State
}

func newPartialInvite(s *State, code string) *Invite {
	return &Invite{
		Code: code,

		state: s,
	}
}

// IsExpired reports whether the invite's expiry timestamp has passed.
func (i *Invite) IsExpired(now time.Time) bool {
	expiry := i.ExpiresAt.Time()
	if expiry.IsZero() {
		return false
	}

	return now.After(expiry)
}

// Inviter returns the invite's creator, if one is known.
func (i *Invite) Inviter() (*User, bool) {
	if i.InviterID.IsNil() {
		return nil, false
	}

	return i.state.users.Load(i.InviterID)
}

// InviteFromData upserts an invite from a wire payload. Invite payloads come
// from sources of differing completeness, so fields merge instead of
// replace: a present, non-zero field wins, and fields the payload omits keep
// their previous value. The wire shape cannot distinguish an omitted field
// from one at its zero value, which means a field can never merge back to
// zero; Temporary, MaxAge and MaxUses are fixed at invite creation, so no
// payload legitimately flips them back.
func (s *State) InviteFromData(data discord.Invite) *Invite {
	invite := s.inviteOrCreate(data.Code)

	if data.GuildID != nil && !data.GuildID.IsNil() {
		invite.GuildID = *data.GuildID
	} else if data.Guild != nil && !data.Guild.ID.IsNil() {
		invite.GuildID = data.Guild.ID
	}

	if data.ChannelID != nil && !data.ChannelID.IsNil() {
		invite.ChannelID = *data.ChannelID
	} else if data.Channel != nil && !data.Channel.ID.IsNil() {
		invite.ChannelID = data.Channel.ID
	}

	if data.Inviter != nil {
		inviter := s.UserFromData(*data.Inviter)
		invite.InviterID = inviter.ID
	}

	if data.ExpiresAt != "" {
		invite.ExpiresAt = data.ExpiresAt
	}

	if data.CreatedAt != "" {
		invite.CreatedAt = data.CreatedAt
	}

	if data.Uses != 0 {
		invite.Uses = data.Uses
	}

	if data.MaxUses != 0 {
		invite.MaxUses = data.MaxUses
	}

	if data.MaxAge != 0 {
		invite.MaxAge = data.MaxAge
	}

	if data.ApproximateMemberCount != 0 {
		invite.ApproximateMemberCount = data.ApproximateMemberCount
	}

	if data.ApproximatePresenceCount != 0 {
		invite.ApproximatePresenceCount = data.ApproximatePresenceCount
	}

	if data.Temporary {
		invite.Temporary = true
	}

	return invite
}

// Delete removes the invite from the registry. Nothing holds an invite
// reference, so there is no detach step.
func (i *Invite) Delete() {
	i.state.invites.Delete(i.Code)
}

// ToData serializes the invite back to the wire shape. The code is the
// invite's registry identity, so includeInternals gates it.
func (i *Invite) ToData(defaults, includeInternals bool) map[string]any {
	data := map[string]any{}

	if includeInternals {
		data["code"] = i.Code
	}

	if defaults || !i.GuildID.IsNil() {
		data["guild_id"] = i.GuildID
	}

	if defaults || !i.ChannelID.IsNil() {
		data["channel_id"] = i.ChannelID
	}

	if defaults || i.Uses != 0 {
		data["uses"] = i.Uses
	}

	if defaults || i.MaxUses != 0 {
		data["max_uses"] = i.MaxUses
	}

	if defaults || i.MaxAge != 0 {
		data["max_age"] = i.MaxAge
	}

	if defaults || i.Temporary {
		data["temporary"] = i.Temporary
	}

	if defaults || i.ExpiresAt != "" {
		data["expires_at"] = i.ExpiresAt
	}

	if defaults || i.CreatedAt != "" {
		data["created_at"] = i.CreatedAt
	}

	if defaults || i.ApproximateMemberCount != 0 {
		data["approximate_member_count"] = i.ApproximateMemberCount
	}

	if defaults || i.ApproximatePresenceCount != 0 {
		data["approximate_presence_count"] = i.ApproximatePresenceCount
	}

	return data
}

package lantern

import (
	"github.com/LanternTeam/Lantern/discord"
	"github.com/LanternTeam/Lantern/pkg/syncmap"
)

// User is the live, stateful representation of a user. One instance exists
// per ID within a State; per-guild membership detail hangs off the user as a
// GuildProfile rather than as a separate member entity, so the same pointer
// is valid across every guild the user shares with the client.
type User struct {
	Username      string
	Discriminator string
	GlobalName    string
	Avatar        string
	Banner        string

	ID discord.Snowflake

	PremiumType discord.UserPremiumType
	Flags       discord.UserFlags
	PublicFlags discord.UserFlags
	AccentColor discord.Colour
	Bot         bool
	System      bool

	profiles syncmap.Map[discord.Snowflake, *GuildProfile]

	state   *State
	partial bool
}

// GuildProfile carries the guild-scoped membership detail of a user: nick,
// roles, join and boost timestamps.
type GuildProfile struct {
	Nick        string
	JoinedAt    discord.Timestamp
	BoostsSince discord.Timestamp
	RoleIDs     []discord.Snowflake
	GuildID     discord.Snowflake
	UserID      discord.Snowflake
	Pending     bool
	Deaf        bool
	Mute        bool
}

func newPartialUser(s *State, userID discord.Snowflake) *User {
	return &User{
		ID: userID,

		state:   s,
		partial: true,
	}
}

// Partial reports whether the user is known only by ID.
func (u *User) Partial() bool {
	return u.partial
}

// Profile returns the user's membership profile for a guild, if present.
func (u *User) Profile(guildID discord.Snowflake) (*GuildProfile, bool) {
	return u.profiles.Load(guildID)
}

// MutualGuilds returns the IDs of every guild the user holds a profile for.
func (u *User) MutualGuilds() []discord.Snowflake {
	return u.profiles.Keys()
}

// DisplayName returns the name the user renders as outside any guild.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}

	return u.Username
}

// UserFromData upserts a user from a wire payload. Wire data fills the user
// only while it is still partial; USER_UPDATE goes through DifferenceUpdate
// instead.
func (s *State) UserFromData(data discord.User) *User {
	user := s.userOrCreate(data.ID)

	if user.partial && s.config.CacheUsers {
		user.SetAttributes(data)
		user.partial = false
	}

	return user
}

// SetAttributes unconditionally replaces every field from the payload.
func (u *User) SetAttributes(data discord.User) {
	u.Username = data.Username
	u.Discriminator = data.Discriminator
	u.GlobalName = data.GlobalName
	u.Banner = data.Banner
	u.PremiumType = data.PremiumType
	u.Flags = data.Flags
	u.PublicFlags = data.PublicFlags
	u.AccentColor = data.AccentColor
	u.Bot = data.Bot
	u.System = data.System

	if data.Avatar != nil {
		u.Avatar = *data.Avatar
	} else {
		u.Avatar = ""
	}
}

// DifferenceUpdate applies a user update payload field by field, recording
// the previous value of every field that changed.
func (u *User) DifferenceUpdate(data discord.User) OldAttributes {
	old := OldAttributes{}

	diffField(old, "username", &u.Username, data.Username)
	diffField(old, "discriminator", &u.Discriminator, data.Discriminator)
	diffField(old, "global_name", &u.GlobalName, data.GlobalName)
	diffField(old, "banner", &u.Banner, data.Banner)
	diffField(old, "premium_type", &u.PremiumType, data.PremiumType)
	diffField(old, "flags", &u.Flags, data.Flags)
	diffField(old, "public_flags", &u.PublicFlags, data.PublicFlags)
	diffField(old, "accent_color", &u.AccentColor, data.AccentColor)

	var avatar string
	if data.Avatar != nil {
		avatar = *data.Avatar
	}

	diffField(old, "avatar", &u.Avatar, avatar)

	u.partial = false

	return old
}

// MemberFromData upserts a user and its guild profile from a member payload
// and links the user into the guild's member map. Member caching can be
// disabled; the user itself is still resolved so identity holds.
func (s *State) MemberFromData(data discord.GuildMember, guildID discord.Snowflake) *User {
	if guildID.IsNil() && data.GuildID != nil {
		guildID = *data.GuildID
	}

	if data.User == nil {
		return nil
	}

	user := s.UserFromData(*data.User)

	if guildID.IsNil() || !s.config.CacheMembers {
		return user
	}

	profile, ok := user.profiles.Load(guildID)
	if !ok {
		profile = &GuildProfile{
			GuildID: guildID,
			UserID:  user.ID,
		}

		user.profiles.Store(guildID, profile)
	}

	profile.setAttributes(data)

	guild := s.guildOrCreate(guildID)
	guild.members.Store(user.ID, user)

	return user
}

// MemberUpdateFromData applies a member update payload, recording per-field
// changes on the profile, and returns them alongside the user.
func (s *State) MemberUpdateFromData(data discord.GuildMember, guildID discord.Snowflake) (*User, OldAttributes) {
	if guildID.IsNil() && data.GuildID != nil {
		guildID = *data.GuildID
	}

	if data.User == nil {
		return nil, nil
	}

	user := s.UserFromData(*data.User)

	if guildID.IsNil() || !s.config.CacheMembers {
		return user, OldAttributes{}
	}

	profile, ok := user.profiles.Load(guildID)
	if !ok {
		s.MemberFromData(data, guildID)

		return user, OldAttributes{}
	}

	old := profile.differenceUpdate(data)

	if _, changed := old["role_ids"]; changed {
		s.invalidateGuildPermissions(guildID)
	}

	return user, old
}

// MemberRemove drops the user's profile for a guild and unlinks the user
// from the guild's member map. The user stays resident in the registry.
func (s *State) MemberRemove(userID, guildID discord.Snowflake) {
	user, ok := s.users.Load(userID)
	if !ok {
		return
	}

	user.profiles.Delete(guildID)

	if guild, ok := s.guilds.Load(guildID); ok {
		guild.members.Delete(userID)
		guild.permCache.Delete(userID)

		guild.channels.Range(func(_ discord.Snowflake, channel *Channel) bool {
			channel.permCache.Delete(userID)

			return true
		})
	}
}

func (p *GuildProfile) setAttributes(data discord.GuildMember) {
	p.Nick = data.Nick
	p.JoinedAt = data.JoinedAt
	p.BoostsSince = data.PremiumSince
	p.RoleIDs = data.Roles
	p.Pending = data.Pending
	p.Deaf = data.Deaf
	p.Mute = data.Mute
}

func (p *GuildProfile) differenceUpdate(data discord.GuildMember) OldAttributes {
	old := OldAttributes{}

	diffField(old, "nick", &p.Nick, data.Nick)
	diffField(old, "joined_at", &p.JoinedAt, data.JoinedAt)
	diffField(old, "boosts_since", &p.BoostsSince, data.PremiumSince)
	diffField(old, "pending", &p.Pending, data.Pending)
	diffField(old, "deaf", &p.Deaf, data.Deaf)
	diffField(old, "mute", &p.Mute, data.Mute)
	diffSnowflakeList(old, "role_ids", &p.RoleIDs, data.Roles)

	return old
}

// HasRole reports whether the profile carries the given role.
func (p *GuildProfile) HasRole(roleID discord.Snowflake) bool {
	return snowflakeListContains(p.RoleIDs, roleID)
}

// removeRole drops a role from the profile, reporting whether it was held.
func (p *GuildProfile) removeRole(roleID discord.Snowflake) bool {
	roleIDs, removed := removeSnowflake(p.RoleIDs, roleID)
	if removed {
		p.RoleIDs = roleIDs
	}

	return removed
}

// TopRole returns the profile's highest role by hierarchy position.
func (p *GuildProfile) TopRole(s *State) (*Role, bool) {
	guild, ok := s.guilds.Load(p.GuildID)
	if !ok {
		return nil, false
	}

	var top *Role

	for _, roleID := range p.RoleIDs {
		role, ok := guild.roles.Load(roleID)
		if !ok {
			continue
		}

		if top == nil || top.Compare(role) < 0 {
			top = role
		}
	}

	if top == nil {
		return nil, false
	}

	return top, true
}

// ToData serializes the user back to the wire shape. With defaults false,
// fields at their default value are omitted; includeInternals gates the
// registry identity field.
func (u *User) ToData(defaults, includeInternals bool) map[string]any {
	data := map[string]any{}

	if includeInternals {
		data["id"] = u.ID
	}

	if defaults || u.Username != "" {
		data["username"] = u.Username
	}

	if defaults || u.Discriminator != "" {
		data["discriminator"] = u.Discriminator
	}

	if defaults || u.GlobalName != "" {
		data["global_name"] = u.GlobalName
	}

	if u.Avatar != "" {
		data["avatar"] = u.Avatar
	} else if defaults {
		data["avatar"] = nil
	}

	if defaults || u.Banner != "" {
		data["banner"] = u.Banner
	}

	if defaults || u.Bot {
		data["bot"] = u.Bot
	}

	if defaults || u.System {
		data["system"] = u.System
	}

	if defaults || u.Flags != 0 {
		data["flags"] = u.Flags
	}

	if defaults || u.PublicFlags != 0 {
		data["public_flags"] = u.PublicFlags
	}

	if defaults || u.PremiumType != 0 {
		data["premium_type"] = u.PremiumType
	}

	if defaults || u.AccentColor != 0 {
		data["accent_color"] = u.AccentColor
	}

	return data
}

package lantern

import (
	"github.com/LanternTeam/Lantern/discord"
	"github.com/LanternTeam/Lantern/pkg/syncmap"
)

// Guild is the live, stateful representation of a guild. Its roles, channels
// and members maps hold links into the state registries; the registries own
// the entities, the guild only relates them.
type Guild struct {
	Name            string
	Icon            string
	Description     string
	Banner          string
	VanityURLCode   string
	PreferredLocale string
	Features        []string
	JoinedAt        discord.Timestamp

	ID              discord.Snowflake
	OwnerID         discord.Snowflake
	AFKChannelID    discord.Snowflake
	SystemChannelID discord.Snowflake
	RulesChannelID  discord.Snowflake

	MemberCount              int32
	MaxMembers               int32
	AFKTimeout               int32
	PremiumSubscriptionCount int32
	PremiumTier              discord.PremiumTier
	Large                    bool
	Unavailable              bool

	roles    syncmap.Map[discord.Snowflake, *Role]
	channels syncmap.Map[discord.Snowflake, *Channel]
	members  syncmap.Map[discord.Snowflake, *User]

	permCache syncmap.Map[discord.Snowflake, discord.Int64]

	state   *State
	partial bool
}

func newPartialGuild(s *State, guildID discord.Snowflake) *Guild {
	return &Guild{
		ID: guildID,

		state:   s,
		partial: true,
	}
}

// Partial reports whether the guild is known only by ID.
func (g *Guild) Partial() bool {
	return g.partial
}

// Role returns the guild's role with the given ID, if linked.
func (g *Guild) Role(roleID discord.Snowflake) (*Role, bool) {
	return g.roles.Load(roleID)
}

// Channel returns the guild's channel with the given ID, if linked.
func (g *Guild) Channel(channelID discord.Snowflake) (*Channel, bool) {
	return g.channels.Load(channelID)
}

// Member returns the guild member with the given user ID, if linked.
func (g *Guild) Member(userID discord.Snowflake) (*User, bool) {
	user, ok := g.members.Load(userID)
	if !ok {
		return nil, false
	}

	return user, user.profiles.Has(g.ID)
}

// Roles returns the guild's roles in hierarchy order, lowest first.
func (g *Guild) Roles() []*Role {
	roles := make([]*Role, 0, g.roles.Count())

	g.roles.Range(func(_ discord.Snowflake, role *Role) bool {
		roles = append(roles, role)

		return true
	})

	SortRoles(roles)

	return roles
}

// Channels returns the guild's channels ordered by (position, id).
func (g *Guild) Channels() []*Channel {
	channels := make([]*Channel, 0, g.channels.Count())

	g.channels.Range(func(_ discord.Snowflake, channel *Channel) bool {
		channels = append(channels, channel)

		return true
	})

	sortChannels(channels)

	return channels
}

// Members returns the guild's currently linked members.
func (g *Guild) Members() []*User {
	members := make([]*User, 0, g.members.Count())

	g.members.Range(func(_ discord.Snowflake, user *User) bool {
		members = append(members, user)

		return true
	})

	return members
}

// DefaultRole returns the @everyone role, whose ID always equals the guild
// ID, if present.
func (g *Guild) DefaultRole() (*Role, bool) {
	return g.roles.Load(g.ID)
}

// GuildFromData upserts a guild from a wire payload. Unlike the other
// FromData constructors, guild payloads always replace attributes in full;
// nested roles, channels, threads and members are upserted through their own
// registries and linked back.
func (s *State) GuildFromData(data discord.Guild) *Guild {
	guild := s.guildOrCreate(data.ID)

	guild.SetAttributes(data)
	guild.partial = false

	for i := range data.Roles {
		s.RoleFromData(data.Roles[i], guild.ID)
	}

	for i := range data.Channels {
		s.ChannelFromData(data.Channels[i], guild.ID)
	}

	for i := range data.Threads {
		s.ChannelFromData(data.Threads[i], guild.ID)
	}

	for i := range data.Members {
		s.MemberFromData(data.Members[i], guild.ID)
	}

	s.invalidateGuildPermissions(guild.ID)

	return guild
}

// SetAttributes unconditionally replaces every scalar field from the
// payload. Link maps are left alone.
func (g *Guild) SetAttributes(data discord.Guild) {
	g.Name = data.Name
	g.Description = data.Description
	g.Banner = data.Banner
	g.VanityURLCode = data.VanityURLCode
	g.PreferredLocale = data.PreferredLocale
	g.Features = data.Features
	g.JoinedAt = data.JoinedAt
	g.MemberCount = data.MemberCount
	g.MaxMembers = data.MaxMembers
	g.AFKTimeout = data.AFKTimeout
	g.PremiumSubscriptionCount = data.PremiumSubscriptionCount
	g.PremiumTier = data.PremiumTier
	g.Large = data.Large
	g.Unavailable = data.Unavailable

	if data.Icon != nil {
		g.Icon = *data.Icon
	}

	if data.OwnerID != nil {
		g.OwnerID = *data.OwnerID
	}

	if data.AFKChannelID != nil {
		g.AFKChannelID = *data.AFKChannelID
	} else {
		g.AFKChannelID = 0
	}

	if data.SystemChannelID != nil {
		g.SystemChannelID = *data.SystemChannelID
	} else {
		g.SystemChannelID = 0
	}

	if data.RulesChannelID != nil {
		g.RulesChannelID = *data.RulesChannelID
	} else {
		g.RulesChannelID = 0
	}
}

// DifferenceUpdate applies a guild update payload field by field, recording
// the previous value of every field that changed. An owner change clears the
// permission caches.
func (g *Guild) DifferenceUpdate(data discord.Guild) OldAttributes {
	old := OldAttributes{}

	diffField(old, "name", &g.Name, data.Name)
	diffField(old, "description", &g.Description, data.Description)
	diffField(old, "banner", &g.Banner, data.Banner)
	diffField(old, "vanity_url_code", &g.VanityURLCode, data.VanityURLCode)
	diffField(old, "preferred_locale", &g.PreferredLocale, data.PreferredLocale)
	diffField(old, "afk_timeout", &g.AFKTimeout, data.AFKTimeout)
	diffField(old, "max_members", &g.MaxMembers, data.MaxMembers)
	diffField(old, "premium_tier", &g.PremiumTier, data.PremiumTier)
	diffField(old, "premium_subscription_count", &g.PremiumSubscriptionCount, data.PremiumSubscriptionCount)

	if data.Icon != nil {
		diffField(old, "icon", &g.Icon, *data.Icon)
	}

	if data.OwnerID != nil {
		diffField(old, "owner_id", &g.OwnerID, *data.OwnerID)
	}

	var afkChannelID discord.Snowflake
	if data.AFKChannelID != nil {
		afkChannelID = *data.AFKChannelID
	}

	diffField(old, "afk_channel_id", &g.AFKChannelID, afkChannelID)

	var systemChannelID discord.Snowflake
	if data.SystemChannelID != nil {
		systemChannelID = *data.SystemChannelID
	}

	diffField(old, "system_channel_id", &g.SystemChannelID, systemChannelID)

	var rulesChannelID discord.Snowflake
	if data.RulesChannelID != nil {
		rulesChannelID = *data.RulesChannelID
	}

	diffField(old, "rules_channel_id", &g.RulesChannelID, rulesChannelID)

	g.partial = false

	if _, ok := old["owner_id"]; ok {
		g.state.invalidateGuildPermissions(g.ID)
	}

	return old
}

// Delete tears the guild down: every member profile for this guild is
// removed, link maps and permission caches are dropped. The guild and its
// roles, channels and members stay resident in their registries.
func (g *Guild) Delete() {
	g.members.Range(func(userID discord.Snowflake, user *User) bool {
		user.profiles.Delete(g.ID)

		return true
	})

	g.roles.Range(func(roleID discord.Snowflake, role *Role) bool {
		role.GuildID = 0

		return true
	})

	g.channels.Range(func(channelID discord.Snowflake, channel *Channel) bool {
		channel.GuildID = 0
		channel.permCache.Clear()

		return true
	})

	g.members.Clear()
	g.roles.Clear()
	g.channels.Clear()
	g.permCache.Clear()

	g.Unavailable = true
}

// PermissionsFor computes the guild-level permission set the user holds,
// before any channel overwrites. Results are cached per user ID.
func (g *Guild) PermissionsFor(user *User) discord.Int64 {
	if cached, ok := g.permCache.Load(user.ID); ok {
		return cached
	}

	permissions := g.computePermissions(user)

	g.permCache.Store(user.ID, permissions)

	return permissions
}

func (g *Guild) computePermissions(user *User) discord.Int64 {
	if g.OwnerID == user.ID {
		return discord.PermissionAll
	}

	profile, isMember := user.profiles.Load(g.ID)
	if !isMember {
		return discord.PermissionNone
	}

	base := g.basePermissions(profile)

	if base&discord.PermissionAdministrator != 0 {
		return discord.PermissionAll
	}

	return base
}

// basePermissions unions the @everyone role with the profile's roles. A nil
// profile yields the @everyone set alone.
func (g *Guild) basePermissions(profile *GuildProfile) discord.Int64 {
	var base discord.Int64

	if everyone, ok := g.DefaultRole(); ok {
		base |= everyone.Permissions
	}

	if profile == nil {
		return base
	}

	for _, roleID := range profile.RoleIDs {
		if role, ok := g.roles.Load(roleID); ok {
			base |= role.Permissions
		}
	}

	return base
}

// ToData serializes the guild's scalar fields back to the wire shape. Nested
// roles, channels and members are owned by their registries and serialize
// through their own ToData.
func (g *Guild) ToData(defaults, includeInternals bool) map[string]any {
	data := map[string]any{}

	if includeInternals {
		data["id"] = g.ID
	}

	if defaults || g.Name != "" {
		data["name"] = g.Name
	}

	if g.Icon != "" {
		data["icon"] = g.Icon
	} else if defaults {
		data["icon"] = nil
	}

	if defaults || g.Description != "" {
		data["description"] = g.Description
	}

	if defaults || g.Banner != "" {
		data["banner"] = g.Banner
	}

	if defaults || g.VanityURLCode != "" {
		data["vanity_url_code"] = g.VanityURLCode
	}

	if defaults || g.PreferredLocale != "" {
		data["preferred_locale"] = g.PreferredLocale
	}

	if defaults || !g.OwnerID.IsNil() {
		data["owner_id"] = g.OwnerID
	}

	if defaults || !g.AFKChannelID.IsNil() {
		data["afk_channel_id"] = g.AFKChannelID
	}

	if defaults || g.AFKTimeout != 0 {
		data["afk_timeout"] = g.AFKTimeout
	}

	if defaults || !g.SystemChannelID.IsNil() {
		data["system_channel_id"] = g.SystemChannelID
	}

	if defaults || !g.RulesChannelID.IsNil() {
		data["rules_channel_id"] = g.RulesChannelID
	}

	if defaults || g.PremiumTier != 0 {
		data["premium_tier"] = g.PremiumTier
	}

	if defaults || g.PremiumSubscriptionCount != 0 {
		data["premium_subscription_count"] = g.PremiumSubscriptionCount
	}

	if defaults || g.MemberCount != 0 {
		data["member_count"] = g.MemberCount
	}

	if defaults || g.MaxMembers != 0 {
		data["max_members"] = g.MaxMembers
	}

	if len(g.Features) > 0 {
		data["features"] = g.Features
	} else if defaults {
		data["features"] = []string{}
	}

	return data
}

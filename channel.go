package lantern

import (
	"sort"
	"sync"
	"time"

	"github.com/LanternTeam/Lantern/discord"
	"github.com/LanternTeam/Lantern/pkg/syncmap"
)

// Channel is the live, stateful representation of a channel of any kind. The
// Type field discriminates kind-specific behavior; one instance exists per ID
// within a State.
type Channel struct {
	Name       string
	Topic      string
	RTCRegion  string
	Overwrites map[discord.Snowflake]discord.ChannelOverwrite
	Recipients []discord.Snowflake

	ID       discord.Snowflake
	GuildID  discord.Snowflake
	ParentID discord.Snowflake
	OwnerID  discord.Snowflake

	Position         int32
	Bitrate          int32
	UserLimit        int32
	AutoArchiveAfter int32
	Type             discord.ChannelType
	NSFW             bool
	Archived         bool

	threadMembers syncmap.Map[discord.Snowflake, struct{}]
	permCache     syncmap.Map[discord.Snowflake, discord.Int64]

	state   *State
	partial bool

	// historyMu guards the message window, which the sweeper can touch
	// concurrently with dispatch.
	historyMu      sync.Mutex
	messages       []discord.Message
	keepLimit      int
	unlimitedUntil time.Time
}

func newPartialChannel(s *State, channelID discord.Snowflake) *Channel {
	return &Channel{
		ID: channelID,

		state:     s,
		partial:   true,
		keepLimit: s.config.MessageLimit,
	}
}

// Partial reports whether the channel is known only by ID.
func (c *Channel) Partial() bool {
	return c.partial
}

// IsGuildChannel reports whether the channel lives inside a guild.
func (c *Channel) IsGuildChannel() bool {
	return !c.GuildID.IsNil()
}

// IsThread reports whether the channel is a thread variant.
func (c *Channel) IsThread() bool {
	switch c.Type {
	case discord.ChannelTypeGuildNewsThread,
		discord.ChannelTypeGuildPublicThread,
		discord.ChannelTypeGuildPrivateThread:
		return true
	default:
		return false
	}
}

// IsTextBearing reports whether the channel keeps a message history window.
func (c *Channel) IsTextBearing() bool {
	switch c.Type {
	case discord.ChannelTypeGuildText,
		discord.ChannelTypeDM,
		discord.ChannelTypeGroupDM,
		discord.ChannelTypeGuildNews,
		discord.ChannelTypeGuildVoice,
		discord.ChannelTypeGuildNewsThread,
		discord.ChannelTypeGuildPublicThread,
		discord.ChannelTypeGuildPrivateThread:
		return true
	default:
		return false
	}
}

// Category returns the parent category channel, when one is set.
func (c *Channel) Category() (*Channel, bool) {
	if c.ParentID.IsNil() {
		return nil, false
	}

	return c.state.channels.Load(c.ParentID)
}

// Channels returns the channels nested under this category, ordered by
// (position, id). The relation is derived from each child's parent ID, so
// both sides of the link can never disagree.
func (c *Channel) Channels() []*Channel {
	if c.Type != discord.ChannelTypeGuildCategory {
		return nil
	}

	guild, ok := c.state.guilds.Load(c.GuildID)
	if !ok {
		return nil
	}

	var children []*Channel

	guild.channels.Range(func(_ discord.Snowflake, channel *Channel) bool {
		if channel.ParentID == c.ID {
			children = append(children, channel)
		}

		return true
	})

	sortChannels(children)

	return children
}

func sortChannels(channels []*Channel) {
	sort.SliceStable(channels, func(i, j int) bool {
		a, b := channels[i], channels[j]

		if a.Position != b.Position {
			return a.Position < b.Position
		}

		return a.ID < b.ID
	})
}

// ChannelFromData upserts a channel from a wire payload and links it into its
// guild. Wire data fills the channel only while it is still partial.
func (s *State) ChannelFromData(data discord.Channel, guildID discord.Snowflake) *Channel {
	if guildID.IsNil() && data.GuildID != nil {
		guildID = *data.GuildID
	}

	channel := s.channelOrCreate(data.ID)

	if channel.partial {
		channel.GuildID = guildID
		channel.SetAttributes(data)
		channel.partial = false
	}

	if !guildID.IsNil() {
		guild := s.guildOrCreate(guildID)
		guild.channels.Store(channel.ID, channel)
	}

	return channel
}

// SetAttributes unconditionally replaces every mutable field from the
// payload. No diff is produced.
func (c *Channel) SetAttributes(data discord.Channel) {
	c.Type = data.Type
	c.Name = data.Name
	c.Topic = data.Topic
	c.Position = data.Position
	c.NSFW = data.NSFW
	c.Bitrate = data.Bitrate
	c.UserLimit = data.UserLimit
	c.RTCRegion = data.RTCRegion
	c.Overwrites = overwriteMapFromList(data.PermissionOverwrites)

	if data.ParentID != nil {
		c.ParentID = *data.ParentID
	} else {
		c.ParentID = 0
	}

	if data.OwnerID != nil {
		c.OwnerID = *data.OwnerID
	}

	if data.ThreadMetadata != nil {
		c.Archived = data.ThreadMetadata.Archived
		c.AutoArchiveAfter = data.ThreadMetadata.AutoArchiveDuration
	}

	if len(data.Recipients) > 0 {
		recipients := make([]discord.Snowflake, 0, len(data.Recipients))
		for i := range data.Recipients {
			recipients = append(recipients, data.Recipients[i].ID)
		}

		c.Recipients = recipients
	}

	c.permCache.Clear()
}

// DifferenceUpdate applies the payload field by field, recording the previous
// value of every field that changed. Any change to a permission input clears
// the whole permission cache; entries are never pruned selectively.
func (c *Channel) DifferenceUpdate(data discord.Channel) OldAttributes {
	old := OldAttributes{}

	diffField(old, "type", &c.Type, data.Type)
	diffField(old, "name", &c.Name, data.Name)
	diffField(old, "topic", &c.Topic, data.Topic)
	diffField(old, "position", &c.Position, data.Position)
	diffField(old, "nsfw", &c.NSFW, data.NSFW)
	diffField(old, "bitrate", &c.Bitrate, data.Bitrate)
	diffField(old, "user_limit", &c.UserLimit, data.UserLimit)
	diffField(old, "rtc_region", &c.RTCRegion, data.RTCRegion)

	var parentID discord.Snowflake
	if data.ParentID != nil {
		parentID = *data.ParentID
	}

	diffField(old, "parent_id", &c.ParentID, parentID)

	if data.ThreadMetadata != nil {
		diffField(old, "archived", &c.Archived, data.ThreadMetadata.Archived)
		diffField(old, "auto_archive_after", &c.AutoArchiveAfter, data.ThreadMetadata.AutoArchiveDuration)
	}

	overwrites := overwriteMapFromList(data.PermissionOverwrites)
	if !overwriteMapsEqual(c.Overwrites, overwrites) {
		old["permission_overwrites"] = c.Overwrites
		c.Overwrites = overwrites
	}

	c.partial = false

	if _, ok := old["permission_overwrites"]; ok {
		c.permCache.Clear()
	} else if _, ok := old["position"]; ok {
		c.permCache.Clear()
	} else if _, ok := old["type"]; ok {
		c.permCache.Clear()
	}

	return old
}

// Delete detaches the channel from its guild and category and drops its
// overwrite and permission caches. The registry entry persists.
func (c *Channel) Delete() {
	if guild, ok := c.state.guilds.Load(c.GuildID); ok {
		guild.channels.Delete(c.ID)
	}

	c.GuildID = 0
	c.ParentID = 0
	c.Overwrites = nil
	c.permCache.Clear()
	c.threadMembers.Clear()
}

// AddThreadMember records a user as having joined a thread channel.
func (c *Channel) AddThreadMember(userID discord.Snowflake) {
	c.threadMembers.Store(userID, struct{}{})
}

// RemoveThreadMember removes a user from a thread's membership set.
func (c *Channel) RemoveThreadMember(userID discord.Snowflake) {
	c.threadMembers.Delete(userID)
}

// HasThreadMember reports whether a user has joined a thread channel.
func (c *Channel) HasThreadMember(userID discord.Snowflake) bool {
	return c.threadMembers.Has(userID)
}

// PermissionsFor computes the permission set the user holds in this channel.
// Results are cached per user ID until any permission input changes.
func (c *Channel) PermissionsFor(user *User) discord.Int64 {
	if cached, ok := c.permCache.Load(user.ID); ok {
		return cached
	}

	permissions := c.computePermissions(user)

	c.permCache.Store(user.ID, permissions)

	return permissions
}

// CachedPermissionCount returns the number of cached permission results.
func (c *Channel) CachedPermissionCount() int {
	return c.permCache.Count()
}

func (c *Channel) computePermissions(user *User) discord.Int64 {
	if !c.IsGuildChannel() {
		// Private and group channels carry no roles or overwrites; every
		// recipient holds the full text set.
		if snowflakeListContains(c.Recipients, user.ID) {
			return discord.PermissionAllText
		}

		return discord.PermissionNone
	}

	guild, ok := c.state.guilds.Load(c.GuildID)
	if !ok {
		return discord.PermissionNone
	}

	// The guild owner bypasses overwrite computation entirely.
	if guild.OwnerID == user.ID {
		return discord.PermissionAll & c.permissionMask()
	}

	profile, isMember := user.profiles.Load(guild.ID)
	if !isMember {
		// Webhooks posting into this channel get the everyone-overwritten
		// base instead of the empty set.
		if webhook, ok := c.state.webhooks.Load(user.ID); ok && webhook.ChannelID == c.ID {
			base := guild.basePermissions(nil)
			base = c.applyEveryoneOverwrite(base)

			return base & c.permissionMask()
		}

		return discord.PermissionNone
	}

	base := guild.basePermissions(profile)

	if base&discord.PermissionAdministrator != 0 {
		return discord.PermissionAll & c.permissionMask()
	}

	base = c.applyOverwrites(base, user.ID, profile)

	return base & c.permissionMask()
}

// applyOverwrites folds the channel's permission overwrites over the base
// bits in the canonical precedence order: the everyone overwrite, then every
// role overwrite the member's roles match (deny bits unioned across matches,
// then allow bits), then the member overwrite last.
func (c *Channel) applyOverwrites(base discord.Int64, userID discord.Snowflake, profile *GuildProfile) discord.Int64 {
	base = c.applyEveryoneOverwrite(base)

	var allow, deny discord.Int64

	for id, overwrite := range c.Overwrites {
		if overwrite.Type != discord.ChannelOverrideTypeRole || id == c.GuildID {
			continue
		}

		if profile.HasRole(id) {
			deny |= overwrite.Deny
			allow |= overwrite.Allow
		}
	}

	base = (base &^ deny) | allow

	if overwrite, ok := c.Overwrites[userID]; ok && overwrite.Type == discord.ChannelOverrideTypeMember {
		base = (base &^ overwrite.Deny) | overwrite.Allow
	}

	return base
}

func (c *Channel) applyEveryoneOverwrite(base discord.Int64) discord.Int64 {
	overwrite, ok := c.Overwrites[c.GuildID]
	if !ok || overwrite.Type != discord.ChannelOverrideTypeRole {
		return base
	}

	return (base &^ overwrite.Deny) | overwrite.Allow
}

// permissionMask is the channel-kind specific bit mask applied after
// overwrite resolution; voice kinds strip text bits and vice versa.
func (c *Channel) permissionMask() discord.Int64 {
	textOnly := discord.PermissionAllText &^ discord.PermissionViewChannel
	voiceOnly := discord.PermissionAllVoice &^ discord.PermissionViewChannel

	switch c.Type {
	case discord.ChannelTypeGuildVoice:
		return ^textOnly
	case discord.ChannelTypeGuildStageVoice:
		return ^(textOnly | discord.PermissionVoiceStreamVideo | discord.PermissionVoiceUseVAD)
	case discord.ChannelTypeGuildText,
		discord.ChannelTypeGuildNews,
		discord.ChannelTypeGuildNewsThread,
		discord.ChannelTypeGuildPublicThread,
		discord.ChannelTypeGuildPrivateThread,
		discord.ChannelTypeGuildForum,
		discord.ChannelTypeGuildMedia:
		return ^voiceOnly
	case discord.ChannelTypeGuildStore, discord.ChannelTypeGuildDirectory:
		return ^(textOnly | voiceOnly)
	default:
		return ^discord.Int64(0)
	}
}

// AddMessage appends a message to the channel's history window, trimming to
// the keep limit unless unbounded growth is currently allowed.
func (c *Channel) AddMessage(message discord.Message) {
	if !c.IsTextBearing() {
		return
	}

	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	if c.keepLimit <= 0 && c.unlimitedUntil.IsZero() {
		return
	}

	c.messages = append(c.messages, message)

	if c.unlimitedUntil.IsZero() && len(c.messages) > c.keepLimit {
		c.messages = c.messages[len(c.messages)-c.keepLimit:]
	}
}

// Messages returns a snapshot of the history window, oldest first.
func (c *Channel) Messages() []discord.Message {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	out := make([]discord.Message, len(c.messages))
	copy(out, c.messages)

	return out
}

func (c *Channel) MessageKeepLimit() int {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	return c.keepLimit
}

func (c *Channel) SetMessageKeepLimit(limit int) {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	if limit < 0 {
		limit = 0
	}

	c.keepLimit = limit

	if c.unlimitedUntil.IsZero() && len(c.messages) > limit {
		c.messages = c.messages[len(c.messages)-limit:]
	}
}

// EnableUnlimitedHistory lifts the history bound until the cooldown elapses,
// for bulk backfill. The state's sweeper restores the bound afterwards.
func (c *Channel) EnableUnlimitedHistory(cooldown time.Duration) {
	if cooldown <= 0 {
		cooldown = c.state.config.historyCooldown()
	}

	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	c.unlimitedUntil = time.Now().Add(cooldown)
}

// sweepHistory demotes the window back to the keep limit once the cooldown
// has elapsed. Reports whether a demotion happened.
func (c *Channel) sweepHistory(now time.Time) bool {
	c.historyMu.Lock()
	defer c.historyMu.Unlock()

	if c.unlimitedUntil.IsZero() || now.Before(c.unlimitedUntil) {
		return false
	}

	c.unlimitedUntil = time.Time{}

	if len(c.messages) > c.keepLimit {
		c.messages = c.messages[len(c.messages)-c.keepLimit:]
	}

	return true
}

// ToData serializes the channel back to the wire shape. With defaults false,
// fields at their default value are omitted; includeInternals gates the
// registry identity field.
func (c *Channel) ToData(defaults, includeInternals bool) map[string]any {
	data := map[string]any{}

	if includeInternals {
		data["id"] = c.ID
	}

	if defaults || c.Type != 0 {
		data["type"] = c.Type
	}

	if defaults || c.Name != "" {
		data["name"] = c.Name
	}

	if defaults || c.Topic != "" {
		data["topic"] = c.Topic
	}

	if defaults || c.Position != 0 {
		data["position"] = c.Position
	}

	if defaults || c.NSFW {
		data["nsfw"] = c.NSFW
	}

	if defaults || c.Bitrate != 0 {
		data["bitrate"] = c.Bitrate
	}

	if defaults || c.UserLimit != 0 {
		data["user_limit"] = c.UserLimit
	}

	if defaults || c.RTCRegion != "" {
		data["rtc_region"] = c.RTCRegion
	}

	if !c.ParentID.IsNil() {
		data["parent_id"] = c.ParentID
	} else if defaults {
		data["parent_id"] = nil
	}

	if len(c.Overwrites) > 0 {
		overwrites := make([]discord.ChannelOverwrite, 0, len(c.Overwrites))
		for _, overwrite := range c.Overwrites {
			overwrites = append(overwrites, overwrite)
		}

		data["permission_overwrites"] = overwrites
	} else if defaults {
		data["permission_overwrites"] = []discord.ChannelOverwrite{}
	}

	return data
}

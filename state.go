package lantern

import (
	"log/slog"

	"github.com/LanternTeam/Lantern/discord"
)

// State is a per-client identity cache of Discord entities. Every lookup and
// construction funnels through one of its registries, so two references to
// the same snowflake always resolve to the same live instance. Registry
// entries are added on first sight of an ID and removed only by explicit
// delete events; a deleted entity stays resident in its registry, detached
// from its parents, so historical references remain renderable.
type State struct {
	Logger *slog.Logger

	config Configuration

	guilds   Cache[discord.Snowflake, *Guild]
	roles    Cache[discord.Snowflake, *Role]
	channels Cache[discord.Snowflake, *Channel]
	users    Cache[discord.Snowflake, *User]
	webhooks Cache[discord.Snowflake, *Webhook]
	invites  Cache[string, *Invite]
}

func NewState(logger *slog.Logger, config Configuration) *State {
	if logger == nil {
		logger = slog.Default()
	}

	return &State{
		Logger: logger,

		config: config,

		guilds:   NewCache[discord.Snowflake, *Guild](100),
		roles:    NewCache[discord.Snowflake, *Role](500),
		channels: NewCache[discord.Snowflake, *Channel](500),
		users:    NewCache[discord.Snowflake, *User](1000),
		webhooks: NewCache[discord.Snowflake, *Webhook](50),
		invites:  NewCache[string, *Invite](50),
	}
}

func (s *State) Configuration() Configuration {
	return s.config
}

// Guild returns the guild with the given ID, if present.
func (s *State) Guild(guildID discord.Snowflake) (*Guild, bool) {
	return s.guilds.Load(guildID)
}

// Role returns the role with the given ID, if present.
func (s *State) Role(roleID discord.Snowflake) (*Role, bool) {
	return s.roles.Load(roleID)
}

// Channel returns the channel with the given ID, if present.
func (s *State) Channel(channelID discord.Snowflake) (*Channel, bool) {
	return s.channels.Load(channelID)
}

// User returns the user with the given ID, if present.
func (s *State) User(userID discord.Snowflake) (*User, bool) {
	return s.users.Load(userID)
}

// Webhook returns the webhook with the given ID, if present.
func (s *State) Webhook(webhookID discord.Snowflake) (*Webhook, bool) {
	return s.webhooks.Load(webhookID)
}

// Invite returns the invite with the given code, if present.
func (s *State) Invite(code string) (*Invite, bool) {
	return s.invites.Load(code)
}

// The *orCreate helpers are the get-or-create contract: they cannot fail, a
// missing entity is synthesized as a partial placeholder.

func (s *State) guildOrCreate(guildID discord.Snowflake) *Guild {
	return s.guilds.LoadOrCreate(guildID, func() *Guild {
		return newPartialGuild(s, guildID)
	})
}

func (s *State) roleOrCreate(roleID discord.Snowflake) *Role {
	return s.roles.LoadOrCreate(roleID, func() *Role {
		return newPartialRole(s, roleID)
	})
}

func (s *State) channelOrCreate(channelID discord.Snowflake) *Channel {
	return s.channels.LoadOrCreate(channelID, func() *Channel {
		return newPartialChannel(s, channelID)
	})
}

func (s *State) userOrCreate(userID discord.Snowflake) *User {
	return s.users.LoadOrCreate(userID, func() *User {
		return newPartialUser(s, userID)
	})
}

func (s *State) webhookOrCreate(webhookID discord.Snowflake) *Webhook {
	return s.webhooks.LoadOrCreate(webhookID, func() *Webhook {
		return newPartialWebhook(s, webhookID)
	})
}

func (s *State) inviteOrCreate(code string) *Invite {
	return s.invites.LoadOrCreate(code, func() *Invite {
		return newPartialInvite(s, code)
	})
}

// invalidateGuildPermissions clears the guild's permission cache and the
// permission cache of every channel in the guild. Caches are cleared, never
// recomputed in place; a stale permission cache silently mis-authorizes.
func (s *State) invalidateGuildPermissions(guildID discord.Snowflake) {
	guild, ok := s.guilds.Load(guildID)
	if !ok {
		return
	}

	guild.permCache.Clear()

	guild.channels.Range(func(_ discord.Snowflake, channel *Channel) bool {
		channel.permCache.Clear()

		return true
	})
}

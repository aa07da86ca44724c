package discord

import jsoniter "github.com/json-iterator/go"

// events.go contains the dispatch payload structures received from the
// gateway, plus the event name constants used to route them.

const (
	EventReady             = "READY"
	EventGuildCreate       = "GUILD_CREATE"
	EventGuildUpdate       = "GUILD_UPDATE"
	EventGuildDelete       = "GUILD_DELETE"
	EventGuildRoleCreate   = "GUILD_ROLE_CREATE"
	EventGuildRoleUpdate   = "GUILD_ROLE_UPDATE"
	EventGuildRoleDelete   = "GUILD_ROLE_DELETE"
	EventChannelCreate     = "CHANNEL_CREATE"
	EventChannelUpdate     = "CHANNEL_UPDATE"
	EventChannelDelete     = "CHANNEL_DELETE"
	EventThreadCreate      = "THREAD_CREATE"
	EventThreadUpdate      = "THREAD_UPDATE"
	EventThreadDelete      = "THREAD_DELETE"
	EventGuildMemberAdd    = "GUILD_MEMBER_ADD"
	EventGuildMemberUpdate = "GUILD_MEMBER_UPDATE"
	EventGuildMemberRemove = "GUILD_MEMBER_REMOVE"
	EventGuildMembersChunk = "GUILD_MEMBERS_CHUNK"
	EventUserUpdate        = "USER_UPDATE"
	EventMessageCreate     = "MESSAGE_CREATE"
	EventInviteCreate      = "INVITE_CREATE"
	EventInviteDelete      = "INVITE_DELETE"
	EventWebhooksUpdate    = "WEBHOOKS_UPDATE"
)

// GatewayPayload represents the base payload received from the gateway.
type GatewayPayload struct {
	Type     string              `json:"t"`
	Data     jsoniter.RawMessage `json:"d"`
	Sequence int32               `json:"s"`
	Op       int32               `json:"op"`
}

// Ready represents the initial state payload sent after identifying.
type Ready struct {
	SessionID string             `json:"session_id"`
	Guilds    []UnavailableGuild `json:"guilds"`
	User      User               `json:"user"`
	Version   int32              `json:"v"`
}

// GuildCreate represents a guild create event.
type GuildCreate Guild

// GuildUpdate represents a guild update event.
type GuildUpdate Guild

// GuildDelete represents a guild delete event.
type GuildDelete UnavailableGuild

// GuildRoleCreate represents a guild role create event.
type GuildRoleCreate struct {
	Role    Role      `json:"role"`
	GuildID Snowflake `json:"guild_id"`
}

// GuildRoleUpdate represents a guild role update event.
type GuildRoleUpdate struct {
	Role    Role      `json:"role"`
	GuildID Snowflake `json:"guild_id"`
}

// GuildRoleDelete represents a guild role delete event.
type GuildRoleDelete struct {
	GuildID Snowflake `json:"guild_id"`
	RoleID  Snowflake `json:"role_id"`
}

// ChannelCreate represents a channel create event.
type ChannelCreate Channel

// ChannelUpdate represents a channel update event.
type ChannelUpdate Channel

// ChannelDelete represents a channel delete event.
type ChannelDelete Channel

// ThreadCreate represents a thread create event.
type ThreadCreate Channel

// ThreadUpdate represents a thread update event.
type ThreadUpdate Channel

// ThreadDelete represents a thread delete event.
type ThreadDelete Channel

// GuildMemberAdd represents a guild member add event.
type GuildMemberAdd GuildMember

// GuildMemberUpdate represents a guild member update event.
type GuildMemberUpdate GuildMember

// GuildMemberRemove represents a guild member remove event.
type GuildMemberRemove struct {
	User    User      `json:"user"`
	GuildID Snowflake `json:"guild_id"`
}

// GuildMembersChunk represents a guild members chunk event.
type GuildMembersChunk struct {
	Nonce      string        `json:"nonce,omitempty"`
	Members    []GuildMember `json:"members"`
	GuildID    Snowflake     `json:"guild_id"`
	ChunkIndex int32         `json:"chunk_index"`
	ChunkCount int32         `json:"chunk_count"`
}

// UserUpdate represents a user update event.
type UserUpdate User

// MessageCreate represents a message create event.
type MessageCreate Message

// InviteCreate represents an invite create event.
type InviteCreate Invite

// InviteDelete represents an invite delete event.
type InviteDelete struct {
	GuildID   *Snowflake `json:"guild_id,omitempty"`
	ChannelID Snowflake  `json:"channel_id"`
	Code      string     `json:"code"`
}

// WebhooksUpdate represents a webhooks update event.
type WebhooksUpdate struct {
	GuildID   Snowflake `json:"guild_id"`
	ChannelID Snowflake `json:"channel_id"`
}

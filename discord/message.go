package discord

// message.go contains the wire structure for messages, trimmed to the fields
// the state layer keeps in channel history windows.

// MessageType represents the type of message.
type MessageType uint16

const (
	MessageTypeDefault MessageType = iota
	MessageTypeRecipientAdd
	MessageTypeRecipientRemove
	MessageTypeCall
	MessageTypeChannelNameChange
	MessageTypeChannelIconChange
	MessageTypeChannelPinnedMessage
	MessageTypeGuildMemberJoin
	MessageTypeUserPremiumGuildSubscription
	_
	_
	_
	_
	_
	_
	_
	_
	_
	_
	MessageTypeReply
	MessageTypeChatInputCommand
	MessageTypeThreadStarterMessage
)

// Message represents a message on discord.
type Message struct {
	Author          *User        `json:"author,omitempty"`
	Member          *GuildMember `json:"member,omitempty"`
	GuildID         *Snowflake   `json:"guild_id,omitempty"`
	WebhookID       *Snowflake   `json:"webhook_id,omitempty"`
	EditedTimestamp Timestamp    `json:"edited_timestamp,omitempty"`
	Timestamp       Timestamp    `json:"timestamp,omitempty"`
	Content         string       `json:"content"`
	Mentions        []User       `json:"mentions,omitempty"`
	MentionRoles    []Snowflake  `json:"mention_roles,omitempty"`
	ID              Snowflake    `json:"id"`
	ChannelID       Snowflake    `json:"channel_id"`
	Type            MessageType  `json:"type"`
	TTS             bool         `json:"tts,omitempty"`
	MentionEveryone bool         `json:"mention_everyone,omitempty"`
	Pinned          bool         `json:"pinned,omitempty"`
}

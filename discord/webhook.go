package discord

// webhook.go represents the wire structures for webhooks.

// WebhookType is the type of webhook.
type WebhookType uint8

const (
	WebhookTypeIncoming WebhookType = iota + 1
	WebhookTypeChannelFollower
	WebhookTypeApplication
)

// Webhook represents a webhook on discord.
type Webhook struct {
	GuildID       *Snowflake  `json:"guild_id,omitempty"`
	ChannelID     *Snowflake  `json:"channel_id,omitempty"`
	User          *User       `json:"user,omitempty"`
	ApplicationID *Snowflake  `json:"application_id,omitempty"`
	Name          string      `json:"name,omitempty"`
	Avatar        string      `json:"avatar,omitempty"`
	Token         string      `json:"token,omitempty"`
	ID            Snowflake   `json:"id"`
	Type          WebhookType `json:"type"`
}

package lantern

import (
	"github.com/LanternTeam/Lantern/discord"
)

// Webhook is the live, stateful representation of a webhook. Webhooks share
// the user snowflake space, which lets channel permission checks recognize a
// webhook author posting into its own channel.
type Webhook struct {
	Name   string
	Avatar string
	Token  string

	ID            discord.Snowflake
	GuildID       discord.Snowflake
	ChannelID     discord.Snowflake
	ApplicationID discord.Snowflake

	Type discord.WebhookType

	state   *State
	partial bool
}

func newPartialWebhook(s *State, webhookID discord.Snowflake) *Webhook {
	return &Webhook{
		ID: webhookID,

		state:   s,
		partial: true,
	}
}

// Partial reports whether the webhook is known only by ID.
func (w *Webhook) Partial() bool {
	return w.partial
}

// Channel returns the channel the webhook posts into, if present.
func (w *Webhook) Channel() (*Channel, bool) {
	return w.state.channels.Load(w.ChannelID)
}

// WebhookFromData upserts a webhook from a wire payload. Webhook payloads
// are always complete, so attributes replace in full.
func (s *State) WebhookFromData(data discord.Webhook) *Webhook {
	webhook := s.webhookOrCreate(data.ID)

	webhook.Name = data.Name
	webhook.Avatar = data.Avatar
	webhook.Type = data.Type

	if data.Token != "" {
		webhook.Token = data.Token
	}

	if data.GuildID != nil {
		webhook.GuildID = *data.GuildID
	}

	if data.ChannelID != nil {
		webhook.ChannelID = *data.ChannelID
	}

	if data.ApplicationID != nil {
		webhook.ApplicationID = *data.ApplicationID
	}

	if data.User != nil {
		s.UserFromData(*data.User)
	}

	webhook.partial = false

	return webhook
}

// Delete detaches the webhook from its channel. The registry entry persists.
func (w *Webhook) Delete() {
	w.ChannelID = 0
	w.GuildID = 0
	w.Token = ""
}

// ToData serializes the webhook back to the wire shape. includeInternals
// gates both the registry identity and the token, which never belongs in an
// outbound payload.
func (w *Webhook) ToData(defaults, includeInternals bool) map[string]any {
	data := map[string]any{}

	if includeInternals {
		data["id"] = w.ID

		if w.Token != "" {
			data["token"] = w.Token
		}
	}

	if defaults || w.Type != 0 {
		data["type"] = w.Type
	}

	if defaults || w.Name != "" {
		data["name"] = w.Name
	}

	if defaults || w.Avatar != "" {
		data["avatar"] = w.Avatar
	}

	if defaults || !w.GuildID.IsNil() {
		data["guild_id"] = w.GuildID
	}

	if defaults || !w.ChannelID.IsNil() {
		data["channel_id"] = w.ChannelID
	}

	if defaults || !w.ApplicationID.IsNil() {
		data["application_id"] = w.ApplicationID
	}

	return data
}

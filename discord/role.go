package discord

// role.go represents the wire structures for a guild role.

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// RoleFlags represents the flags on a role.
type RoleFlags uint32

const (
	RoleFlagsInPrompt RoleFlags = 1 << iota // Role can be selected by members in an onboarding prompt.
)

// Role represents a role on discord as it appears on the wire.
type Role struct {
	GuildID      *Snowflake `json:"guild_id,omitempty"`
	Tags         *RoleTag   `json:"tags,omitempty"`
	Name         string     `json:"name"`
	Icon         string     `json:"icon,omitempty"`
	UnicodeEmoji string     `json:"unicode_emoji,omitempty"`
	ID           Snowflake  `json:"id"`
	Permissions  Int64      `json:"permissions"`
	Color        Colour     `json:"color"`
	Flags        RoleFlags  `json:"flags"`
	Position     int32      `json:"position"`
	Hoist        bool       `json:"hoist"`
	Managed      bool       `json:"managed"`
	Mentionable  bool       `json:"mentionable"`
}

// RoleTag carries the markers describing what system manages a role.
// Tag objects are not guaranteed mutually exclusive across payload variants.
type RoleTag struct {
	BotID                 *Snowflake `json:"bot_id"`
	IntegrationID         *Snowflake `json:"integration_id"`
	PremiumSubscriber     *bool      `json:"premium_subscriber"`
	SubscriptionListingID *Snowflake `json:"subscription_listing_id"`
	AvailableForPurchase  *bool      `json:"available_for_purchase"`
	GuildConnections      *bool      `json:"guild_connections"`
}

// UnmarshalJSON decodes a tag object by key presence. The premium_subscriber,
// available_for_purchase and guild_connections markers arrive as
// present-but-null keys, so a plain struct decode would always leave their
// pointers nil; here a present key yields a non-nil pointer whatever the
// value is.
func (t *RoleTag) UnmarshalJSON(b []byte) error {
	var raw map[string]jsoniter.RawMessage

	if err := jsoniter.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal role tags: %w", err)
	}

	var err error

	if t.BotID, err = tagSnowflake(raw["bot_id"]); err != nil {
		return err
	}

	if t.IntegrationID, err = tagSnowflake(raw["integration_id"]); err != nil {
		return err
	}

	if t.SubscriptionListingID, err = tagSnowflake(raw["subscription_listing_id"]); err != nil {
		return err
	}

	t.PremiumSubscriber = tagMarker(raw, "premium_subscriber")
	t.AvailableForPurchase = tagMarker(raw, "available_for_purchase")
	t.GuildConnections = tagMarker(raw, "guild_connections")

	return nil
}

// MarshalJSON writes the tag object back in its wire form, with the marker
// keys carrying null rather than a boolean.
func (t RoleTag) MarshalJSON() ([]byte, error) {
	data := map[string]any{}

	if t.BotID != nil {
		data["bot_id"] = t.BotID
	}

	if t.IntegrationID != nil {
		data["integration_id"] = t.IntegrationID
	}

	if t.SubscriptionListingID != nil {
		data["subscription_listing_id"] = t.SubscriptionListingID
	}

	if t.PremiumSubscriber != nil {
		data["premium_subscriber"] = nil
	}

	if t.AvailableForPurchase != nil {
		data["available_for_purchase"] = nil
	}

	if t.GuildConnections != nil {
		data["guild_connections"] = nil
	}

	return jsoniter.Marshal(data)
}

func tagSnowflake(raw jsoniter.RawMessage) (*Snowflake, error) {
	if raw == nil || bytes.Equal(raw, null) {
		return nil, nil
	}

	var id Snowflake

	if err := id.UnmarshalJSON(raw); err != nil {
		return nil, err
	}

	return &id, nil
}

func tagMarker(raw map[string]jsoniter.RawMessage, key string) *bool {
	if _, ok := raw[key]; !ok {
		return nil
	}

	present := true

	return &present
}

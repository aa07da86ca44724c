package discord

// guild.go contains the wire structures to represent a guild.

// PremiumTier represents the current boosting tier of a guild.
type PremiumTier uint16

const (
	PremiumTierNone PremiumTier = iota
	PremiumTier1
	PremiumTier2
	PremiumTier3
)

// Guild represents a guild on discord.
type Guild struct {
	OwnerID                  *Snowflake    `json:"owner_id,omitempty"`
	AFKChannelID             *Snowflake    `json:"afk_channel_id,omitempty"`
	SystemChannelID          *Snowflake    `json:"system_channel_id,omitempty"`
	RulesChannelID           *Snowflake    `json:"rules_channel_id,omitempty"`
	Permissions              *Int64        `json:"permissions,omitempty"`
	Icon                     *string       `json:"icon"`
	JoinedAt                 Timestamp     `json:"joined_at,omitempty"`
	Name                     string        `json:"name"`
	Description              string        `json:"description,omitempty"`
	Banner                   string        `json:"banner,omitempty"`
	VanityURLCode            string        `json:"vanity_url_code,omitempty"`
	PreferredLocale          string        `json:"preferred_locale,omitempty"`
	Features                 []string      `json:"features,omitempty"`
	Roles                    []Role        `json:"roles,omitempty"`
	Channels                 []Channel     `json:"channels,omitempty"`
	Threads                  []Channel     `json:"threads,omitempty"`
	Members                  []GuildMember `json:"members,omitempty"`
	ID                       Snowflake     `json:"id"`
	MemberCount              int32         `json:"member_count,omitempty"`
	MaxMembers               int32         `json:"max_members,omitempty"`
	AFKTimeout               int32         `json:"afk_timeout,omitempty"`
	PremiumSubscriptionCount int32         `json:"premium_subscription_count,omitempty"`
	ApproximateMemberCount   int32         `json:"approximate_member_count,omitempty"`
	ApproximatePresenceCount int32         `json:"approximate_presence_count,omitempty"`
	PremiumTier              PremiumTier   `json:"premium_tier,omitempty"`
	Large                    bool          `json:"large,omitempty"`
	Unavailable              bool          `json:"unavailable,omitempty"`
}

// UnavailableGuild represents an unavailable guild.
type UnavailableGuild struct {
	ID          Snowflake `json:"id"`
	Unavailable bool      `json:"unavailable"`
}

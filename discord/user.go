package discord

// user.go represents the wire structures for a discord user.

// UserFlags represents the flags on a user's account.
type UserFlags uint32

const (
	UserFlagsDiscordEmployee UserFlags = 1 << iota
	UserFlagsPartneredServerOwner
	UserFlagsHypeSquadEvents
	UserFlagsBugHunterLevel1
	_
	_
	UserFlagsHouseBravery
	UserFlagsHouseBrilliance
	UserFlagsHouseBalance
	UserFlagsEarlySupporter
	UserFlagsTeamUser
	_
	_
	_
	UserFlagsBugHunterLevel2
	_
	UserFlagsVerifiedBot
	UserFlagsVerifiedDeveloper
	UserFlagsCertifiedModerator
	UserFlagsBotHTTPInteractions
	_
	_
	UserFlagsActiveDeveloper
)

// UserPremiumType represents the type of Nitro on a user's account.
type UserPremiumType uint8

const (
	UserPremiumTypeNone UserPremiumType = iota
	UserPremiumTypeNitroClassic
	UserPremiumTypeNitro
	UserPremiumTypeNitroBasic
)

// User represents a user on discord.
type User struct {
	Avatar        *string         `json:"avatar"`
	Banner        string          `json:"banner,omitempty"`
	GlobalName    string          `json:"global_name,omitempty"`
	Username      string          `json:"username"`
	Discriminator string          `json:"discriminator"`
	ID            Snowflake       `json:"id"`
	PremiumType   UserPremiumType `json:"premium_type,omitempty"`
	Flags         UserFlags       `json:"flags,omitempty"`
	PublicFlags   UserFlags       `json:"public_flags,omitempty"`
	AccentColor   Colour          `json:"accent_color,omitempty"`
	Bot           bool            `json:"bot,omitempty"`
	System        bool            `json:"system,omitempty"`
}

// GuildMember represents a guild member on discord.
type GuildMember struct {
	User         *User       `json:"user,omitempty"`
	GuildID      *Snowflake  `json:"guild_id,omitempty"`
	Nick         string      `json:"nick,omitempty"`
	Avatar       string      `json:"avatar,omitempty"`
	PremiumSince Timestamp   `json:"premium_since,omitempty"`
	JoinedAt     Timestamp   `json:"joined_at,omitempty"`
	Roles        []Snowflake `json:"roles"`
	Permissions  Int64       `json:"permissions,omitempty"`
	Flags        int32       `json:"flags,omitempty"`
	Deaf         bool        `json:"deaf,omitempty"`
	Mute         bool        `json:"mute,omitempty"`
	Pending      bool        `json:"pending,omitempty"`
}

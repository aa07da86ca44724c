package discord

// invites.go contains the wire structures for invites.

// InviteTargetType represents the type of an invite's target.
type InviteTargetType uint16

const (
	InviteTargetTypeStream InviteTargetType = 1 + iota
	InviteTargetTypeEmbeddedApplication
)

// Invite represents the structure of invite data. Invites are keyed by their
// code, not by a snowflake.
type Invite struct {
	ExpiresAt                Timestamp         `json:"expires_at,omitempty"`
	CreatedAt                Timestamp         `json:"created_at,omitempty"`
	Inviter                  *User             `json:"inviter,omitempty"`
	TargetType               *InviteTargetType `json:"target_type,omitempty"`
	TargetUser               *User             `json:"target_user,omitempty"`
	Guild                    *Guild            `json:"guild,omitempty"`
	Channel                  *Channel          `json:"channel,omitempty"`
	GuildID                  *Snowflake        `json:"guild_id,omitempty"`
	ChannelID                *Snowflake        `json:"channel_id,omitempty"`
	Code                     string            `json:"code"`
	Uses                     int32             `json:"uses,omitempty"`
	MaxUses                  int32             `json:"max_uses,omitempty"`
	MaxAge                   int32             `json:"max_age,omitempty"`
	ApproximateMemberCount   int32             `json:"approximate_member_count,omitempty"`
	ApproximatePresenceCount int32             `json:"approximate_presence_count,omitempty"`
	Temporary                bool              `json:"temporary,omitempty"`
}

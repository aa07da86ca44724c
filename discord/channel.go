package discord

import (
	"bytes"
	"fmt"
	"strconv"

	gotils_strconv "github.com/savsgio/gotils/strconv"
)

// channel.go contains the wire structures relating to channels.

// ChannelType represents a channel's type.
type ChannelType uint16

const (
	ChannelTypeGuildText ChannelType = iota
	ChannelTypeDM
	ChannelTypeGuildVoice
	ChannelTypeGroupDM
	ChannelTypeGuildCategory
	ChannelTypeGuildNews
	ChannelTypeGuildStore
	_
	_
	_
	ChannelTypeGuildNewsThread
	ChannelTypeGuildPublicThread
	ChannelTypeGuildPrivateThread
	ChannelTypeGuildStageVoice
	ChannelTypeGuildDirectory
	ChannelTypeGuildForum
	ChannelTypeGuildMedia
)

// Channel represents a Discord channel as it appears on the wire.
type Channel struct {
	OwnerID                    *Snowflake         `json:"owner_id,omitempty"`
	GuildID                    *Snowflake         `json:"guild_id,omitempty"`
	ParentID                   *Snowflake         `json:"parent_id,omitempty"`
	ApplicationID              *Snowflake         `json:"application_id,omitempty"`
	ThreadMetadata             *ThreadMetadata    `json:"thread_metadata,omitempty"`
	ThreadMember               *ThreadMember      `json:"member,omitempty"`
	LastPinTimestamp           *Timestamp         `json:"last_pin_timestamp,omitempty"`
	RTCRegion                  string             `json:"rtc_region,omitempty"`
	Topic                      string             `json:"topic,omitempty"`
	Icon                       string             `json:"icon,omitempty"`
	Name                       string             `json:"name,omitempty"`
	PermissionOverwrites       []ChannelOverwrite `json:"permission_overwrites,omitempty"`
	Recipients                 []User             `json:"recipients,omitempty"`
	ID                         Snowflake          `json:"id"`
	UserLimit                  int32              `json:"user_limit,omitempty"`
	Bitrate                    int32              `json:"bitrate,omitempty"`
	RateLimitPerUser           int32              `json:"rate_limit_per_user,omitempty"`
	Position                   int32              `json:"position,omitempty"`
	DefaultAutoArchiveDuration int32              `json:"default_auto_archive_duration,omitempty"`
	Type                       ChannelType        `json:"type"`
	NSFW                       bool               `json:"nsfw,omitempty"`
}

// ThreadMetadata contains the thread-specific channel fields.
type ThreadMetadata struct {
	ArchiveTimestamp    Timestamp `json:"archive_timestamp"`
	CreateTimestamp     Timestamp `json:"create_timestamp,omitempty"`
	AutoArchiveDuration int32     `json:"auto_archive_duration"`
	Archived            bool      `json:"archived"`
	Locked              bool      `json:"locked"`
	Invitable           bool      `json:"invitable,omitempty"`
}

// ThreadMember is used to indicate whether a user has joined a thread or not.
type ThreadMember struct {
	ID            *Snowflake `json:"id,omitempty"`
	UserID        *Snowflake `json:"user_id,omitempty"`
	GuildID       *Snowflake `json:"guild_id,omitempty"`
	JoinTimestamp Timestamp  `json:"join_timestamp"`
	Flags         int32      `json:"flags"`
}

// ChannelOverwrite represents a permission overwrite for a channel.
type ChannelOverwrite struct {
	Type  ChannelOverrideType `json:"type"`
	ID    Snowflake           `json:"id"`
	Allow Int64               `json:"allow"`
	Deny  Int64               `json:"deny"`
}

// ChannelOverrideType represents the target kind of a channel overwrite.
type ChannelOverrideType uint16

const (
	ChannelOverrideTypeRole ChannelOverrideType = iota
	ChannelOverrideTypeMember
)

func (in *ChannelOverrideType) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, null) {
		return nil
	}

	// Discord passes the overwrite type as a string inside audit logs.
	if b[0] == '"' && len(b) >= 2 {
		b = b[1 : len(b)-1]
	}

	i, err := strconv.ParseInt(gotils_strconv.B2S(b), decimalBase, bitSize)
	if err != nil {
		return fmt.Errorf("failed to unmarshal channel override type: %w", err)
	}

	*in = ChannelOverrideType(i)

	return nil
}

func (in ChannelOverrideType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(in))), nil
}

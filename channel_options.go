package lantern

import (
	"fmt"

	"github.com/LanternTeam/Lantern/discord"
)

const (
	channelNameLengthMin  = 1
	channelNameLengthMax  = 100
	channelTopicLengthMax = 1024
	channelUserLimitMax   = 99
)

// PrecreateChannel declares a channel expected to exist before the network
// confirms it. If the channel is already fully materialized the attribute
// arguments are silently ignored; the live entity wins.
func (s *State) PrecreateChannel(channelID discord.Snowflake, options ...ChannelOption) (*Channel, error) {
	if channelID.IsNil() {
		return nil, fmt.Errorf("%w: channel id must not be zero", ErrInvalidArgument)
	}

	patch, err := newChannelPatch(options)
	if err != nil {
		return nil, err
	}

	channel := s.channelOrCreate(channelID)

	if channel.partial {
		patch.apply(channel)
	}

	return channel, nil
}

// CopyWith returns a detached copy of the channel with the given fields
// replaced. The copy is not registered in any registry and shares no caches
// or history with the original.
func (c *Channel) CopyWith(options ...ChannelOption) (*Channel, error) {
	patch, err := newChannelPatch(options)
	if err != nil {
		return nil, err
	}

	copied := &Channel{
		Name:             c.Name,
		Topic:            c.Topic,
		RTCRegion:        c.RTCRegion,
		Recipients:       c.Recipients,
		ID:               c.ID,
		GuildID:          c.GuildID,
		ParentID:         c.ParentID,
		OwnerID:          c.OwnerID,
		Position:         c.Position,
		Bitrate:          c.Bitrate,
		UserLimit:        c.UserLimit,
		AutoArchiveAfter: c.AutoArchiveAfter,
		Type:             c.Type,
		NSFW:             c.NSFW,
		Archived:         c.Archived,

		state:     c.state,
		keepLimit: c.keepLimit,
	}

	if c.Overwrites != nil {
		copied.Overwrites = make(map[discord.Snowflake]discord.ChannelOverwrite, len(c.Overwrites))
		for id, overwrite := range c.Overwrites {
			copied.Overwrites[id] = overwrite
		}
	}

	patch.apply(copied)

	return copied, nil
}

// channelPatch holds the validated, explicitly-provided fields of a
// precreate or copy. Pointer fields distinguish "not provided" from a
// provided zero value.
type channelPatch struct {
	name        *string
	topic       *string
	rtcRegion   *string
	channelType *discord.ChannelType
	parentID    *discord.Snowflake
	position    *int32
	bitrate     *int32
	userLimit   *int32
	nsfw        *bool
}

// ChannelOption is a single validated field assignment for PrecreateChannel
// or Channel.CopyWith.
type ChannelOption func(*channelPatch) error

// newChannelPatch validates every option before any of them is applied, so a
// failing option leaves no partial mutation behind.
func newChannelPatch(options []ChannelOption) (*channelPatch, error) {
	patch := &channelPatch{}

	for _, option := range options {
		if err := option(patch); err != nil {
			return nil, err
		}
	}

	return patch, nil
}

func (p *channelPatch) apply(channel *Channel) {
	if p.name != nil {
		channel.Name = *p.name
	}

	if p.topic != nil {
		channel.Topic = *p.topic
	}

	if p.rtcRegion != nil {
		channel.RTCRegion = *p.rtcRegion
	}

	if p.channelType != nil {
		channel.Type = *p.channelType
	}

	if p.parentID != nil {
		channel.ParentID = *p.parentID
	}

	if p.position != nil {
		channel.Position = *p.position
	}

	if p.bitrate != nil {
		channel.Bitrate = *p.bitrate
	}

	if p.userLimit != nil {
		channel.UserLimit = *p.userLimit
	}

	if p.nsfw != nil {
		channel.NSFW = *p.nsfw
	}
}

func WithChannelName(name string) ChannelOption {
	return func(p *channelPatch) error {
		if len(name) < channelNameLengthMin || len(name) > channelNameLengthMax {
			return fmt.Errorf("%w: channel name length must be in [%d, %d]", ErrInvalidValue, channelNameLengthMin, channelNameLengthMax)
		}

		p.name = &name

		return nil
	}
}

func WithChannelTopic(topic string) ChannelOption {
	return func(p *channelPatch) error {
		if len(topic) > channelTopicLengthMax {
			return fmt.Errorf("%w: channel topic length must be at most %d", ErrInvalidValue, channelTopicLengthMax)
		}

		p.topic = &topic

		return nil
	}
}

func WithChannelType(channelType discord.ChannelType) ChannelOption {
	return func(p *channelPatch) error {
		p.channelType = &channelType

		return nil
	}
}

func WithChannelParent(parentID discord.Snowflake) ChannelOption {
	return func(p *channelPatch) error {
		p.parentID = &parentID

		return nil
	}
}

func WithChannelPosition(position int32) ChannelOption {
	return func(p *channelPatch) error {
		if position < 0 {
			return fmt.Errorf("%w: channel position must not be negative", ErrInvalidValue)
		}

		p.position = &position

		return nil
	}
}

func WithChannelBitrate(bitrate int32) ChannelOption {
	return func(p *channelPatch) error {
		if bitrate < 0 {
			return fmt.Errorf("%w: channel bitrate must not be negative", ErrInvalidValue)
		}

		p.bitrate = &bitrate

		return nil
	}
}

func WithChannelUserLimit(userLimit int32) ChannelOption {
	return func(p *channelPatch) error {
		if userLimit < 0 || userLimit > channelUserLimitMax {
			return fmt.Errorf("%w: channel user limit must be in [0, %d]", ErrInvalidValue, channelUserLimitMax)
		}

		p.userLimit = &userLimit

		return nil
	}
}

func WithChannelNSFW(nsfw bool) ChannelOption {
	return func(p *channelPatch) error {
		p.nsfw = &nsfw

		return nil
	}
}

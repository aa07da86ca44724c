package lantern

import (
	"context"

	"github.com/LanternTeam/Lantern/discord"
)

// OnReady seeds the state with the session's user and the unavailable guild
// placeholders. The guilds arrive as bare IDs; each later GUILD_CREATE
// materializes one.
func OnReady(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var readyPayload discord.Ready

	err := unmarshalPayload(msg, &readyPayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	s.UserFromData(readyPayload.User)

	for _, unavailableGuild := range readyPayload.Guilds {
		guild := s.guildOrCreate(unavailableGuild.ID)
		guild.Unavailable = true
	}

	s.Logger.Info("State ready", "session_id", readyPayload.SessionID, "guilds", len(readyPayload.Guilds))

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnGuildCreate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildCreatePayload discord.GuildCreate

	err := unmarshalPayload(msg, &guildCreatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	guild := s.GuildFromData(discord.Guild(guildCreatePayload))

	return DispatchResult{
		Data:  msg.Data,
		Extra: NewExtra().Set("lazy", guild.Unavailable),
	}, true, nil
}

func OnGuildUpdate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildUpdatePayload discord.GuildUpdate

	err := unmarshalPayload(msg, &guildUpdatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	guild := s.guildOrCreate(guildUpdatePayload.ID)

	if guild.Partial() {
		s.Logger.Warn("Received "+discord.EventGuildUpdate+" for a guild not in state", "guild_id", guildUpdatePayload.ID)
	}

	changes := guild.DifferenceUpdate(discord.Guild(guildUpdatePayload))

	return DispatchResult{
		Data:  msg.Data,
		Extra: NewExtra().Set("changes", changes),
	}, true, nil
}

func OnGuildDelete(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildDeletePayload discord.GuildDelete

	err := unmarshalPayload(msg, &guildDeletePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	guild, ok := s.Guild(guildDeletePayload.ID)
	if !ok {
		return DispatchResult{msg.Data, nil}, true, nil
	}

	// An unavailable delete is an outage, not a removal.
	if guildDeletePayload.Unavailable {
		guild.Unavailable = true
	} else {
		guild.Delete()
	}

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnGuildRoleCreate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildRoleCreatePayload discord.GuildRoleCreate

	err := unmarshalPayload(msg, &guildRoleCreatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	s.RoleFromData(guildRoleCreatePayload.Role, guildRoleCreatePayload.GuildID)

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnGuildRoleUpdate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildRoleUpdatePayload discord.GuildRoleUpdate

	err := unmarshalPayload(msg, &guildRoleUpdatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	role := s.RoleFromData(guildRoleUpdatePayload.Role, guildRoleUpdatePayload.GuildID)
	before := role.ToData(false, true)
	changes := role.DifferenceUpdate(guildRoleUpdatePayload.Role)

	return DispatchResult{
		Data:  msg.Data,
		Extra: NewExtra().Set("before", before).Set("changes", changes),
	}, true, nil
}

func OnGuildRoleDelete(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildRoleDeletePayload discord.GuildRoleDelete

	err := unmarshalPayload(msg, &guildRoleDeletePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	if role, ok := s.Role(guildRoleDeletePayload.RoleID); ok {
		role.Delete()
	}

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnChannelCreate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var channelCreatePayload discord.ChannelCreate

	err := unmarshalPayload(msg, &channelCreatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	s.ChannelFromData(discord.Channel(channelCreatePayload), 0)

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnChannelUpdate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var channelUpdatePayload discord.ChannelUpdate

	err := unmarshalPayload(msg, &channelUpdatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	channel := s.ChannelFromData(discord.Channel(channelUpdatePayload), 0)
	changes := channel.DifferenceUpdate(discord.Channel(channelUpdatePayload))

	return DispatchResult{
		Data:  msg.Data,
		Extra: NewExtra().Set("changes", changes),
	}, true, nil
}

func OnChannelDelete(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var channelDeletePayload discord.ChannelDelete

	err := unmarshalPayload(msg, &channelDeletePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	if channel, ok := s.Channel(channelDeletePayload.ID); ok {
		channel.Delete()
	}

	return DispatchResult{msg.Data, nil}, true, nil
}

// Threads are channels with extra metadata; the channel handlers carry them.

func OnThreadCreate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	return OnChannelCreate(ctx, s, msg)
}

func OnThreadUpdate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	return OnChannelUpdate(ctx, s, msg)
}

func OnThreadDelete(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	return OnChannelDelete(ctx, s, msg)
}

func OnGuildMemberAdd(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildMemberAddPayload discord.GuildMemberAdd

	err := unmarshalPayload(msg, &guildMemberAddPayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	member := discord.GuildMember(guildMemberAddPayload)

	user := s.MemberFromData(member, 0)

	if user != nil && member.GuildID != nil {
		if guild, ok := s.Guild(*member.GuildID); ok {
			guild.MemberCount++
		}
	}

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnGuildMemberUpdate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildMemberUpdatePayload discord.GuildMemberUpdate

	err := unmarshalPayload(msg, &guildMemberUpdatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	_, changes := s.MemberUpdateFromData(discord.GuildMember(guildMemberUpdatePayload), 0)

	return DispatchResult{
		Data:  msg.Data,
		Extra: NewExtra().Set("changes", changes),
	}, true, nil
}

func OnGuildMemberRemove(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildMemberRemovePayload discord.GuildMemberRemove

	err := unmarshalPayload(msg, &guildMemberRemovePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	s.MemberRemove(guildMemberRemovePayload.User.ID, guildMemberRemovePayload.GuildID)

	if guild, ok := s.Guild(guildMemberRemovePayload.GuildID); ok && guild.MemberCount > 0 {
		guild.MemberCount--
	}

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnGuildMembersChunk(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var guildMembersChunkPayload discord.GuildMembersChunk

	err := unmarshalPayload(msg, &guildMembersChunkPayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	for i := range guildMembersChunkPayload.Members {
		s.MemberFromData(guildMembersChunkPayload.Members[i], guildMembersChunkPayload.GuildID)
	}

	s.Logger.Debug("Chunked guild members",
		"guild_id", guildMembersChunkPayload.GuildID,
		"memberCount", len(guildMembersChunkPayload.Members),
		"chunkIndex", guildMembersChunkPayload.ChunkIndex,
		"chunkCount", guildMembersChunkPayload.ChunkCount)

	// Member chunks are state backfill, not an event consumers care about.
	return DispatchResult{nil, nil}, false, nil
}

func OnUserUpdate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var userUpdatePayload discord.UserUpdate

	err := unmarshalPayload(msg, &userUpdatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	user := s.userOrCreate(userUpdatePayload.ID)
	changes := user.DifferenceUpdate(discord.User(userUpdatePayload))

	return DispatchResult{
		Data:  msg.Data,
		Extra: NewExtra().Set("changes", changes),
	}, true, nil
}

func OnMessageCreate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var messageCreatePayload discord.MessageCreate

	err := unmarshalPayload(msg, &messageCreatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	message := discord.Message(messageCreatePayload)

	if message.Author != nil {
		s.UserFromData(*message.Author)
	}

	channel := s.channelOrCreate(message.ChannelID)
	channel.AddMessage(message)

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnInviteCreate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var inviteCreatePayload discord.InviteCreate

	err := unmarshalPayload(msg, &inviteCreatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	s.InviteFromData(discord.Invite(inviteCreatePayload))

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnInviteDelete(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var inviteDeletePayload discord.InviteDelete

	err := unmarshalPayload(msg, &inviteDeletePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	if invite, ok := s.Invite(inviteDeletePayload.Code); ok {
		invite.Delete()
	}

	return DispatchResult{msg.Data, nil}, true, nil
}

func OnWebhooksUpdate(ctx context.Context, s *State, msg *discord.GatewayPayload) (DispatchResult, bool, error) {
	var webhooksUpdatePayload discord.WebhooksUpdate

	err := unmarshalPayload(msg, &webhooksUpdatePayload)
	if err != nil {
		return DispatchResult{nil, nil}, false, err
	}

	// The payload carries no webhook bodies; known webhooks for the channel
	// may be stale until refetched, so nothing to mutate here.
	return DispatchResult{msg.Data, nil}, true, nil
}

func init() {
	RegisterDispatchHandler(discord.EventReady, OnReady)
	RegisterDispatchHandler(discord.EventGuildCreate, OnGuildCreate)
	RegisterDispatchHandler(discord.EventGuildUpdate, OnGuildUpdate)
	RegisterDispatchHandler(discord.EventGuildDelete, OnGuildDelete)
	RegisterDispatchHandler(discord.EventGuildRoleCreate, OnGuildRoleCreate)
	RegisterDispatchHandler(discord.EventGuildRoleUpdate, OnGuildRoleUpdate)
	RegisterDispatchHandler(discord.EventGuildRoleDelete, OnGuildRoleDelete)
	RegisterDispatchHandler(discord.EventChannelCreate, OnChannelCreate)
	RegisterDispatchHandler(discord.EventChannelUpdate, OnChannelUpdate)
	RegisterDispatchHandler(discord.EventChannelDelete, OnChannelDelete)
	RegisterDispatchHandler(discord.EventThreadCreate, OnThreadCreate)
	RegisterDispatchHandler(discord.EventThreadUpdate, OnThreadUpdate)
	RegisterDispatchHandler(discord.EventThreadDelete, OnThreadDelete)
	RegisterDispatchHandler(discord.EventGuildMemberAdd, OnGuildMemberAdd)
	RegisterDispatchHandler(discord.EventGuildMemberUpdate, OnGuildMemberUpdate)
	RegisterDispatchHandler(discord.EventGuildMemberRemove, OnGuildMemberRemove)
	RegisterDispatchHandler(discord.EventGuildMembersChunk, OnGuildMembersChunk)
	RegisterDispatchHandler(discord.EventUserUpdate, OnUserUpdate)
	RegisterDispatchHandler(discord.EventMessageCreate, OnMessageCreate)
	RegisterDispatchHandler(discord.EventInviteCreate, OnInviteCreate)
	RegisterDispatchHandler(discord.EventInviteDelete, OnInviteDelete)
	RegisterDispatchHandler(discord.EventWebhooksUpdate, OnWebhooksUpdate)
}

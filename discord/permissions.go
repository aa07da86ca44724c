package discord

// permissions.go contains the permission bit positions used by roles and
// channel overwrites. Lantern treats permission sets as opaque bit masks, the
// human meaning of each bit lives with Discord's documentation.

const (
	PermissionCreateInstantInvite   Int64 = 1 << iota // Allows creation of instant invites.
	PermissionKickMembers                             // Allows kicking members.
	PermissionBanMembers                              // Allows banning members.
	PermissionAdministrator                           // Allows all permissions and bypasses channel permission overwrites.
	PermissionManageChannels                          // Allows management and editing of channels.
	PermissionManageServer                            // Allows management and editing of the guild.
	PermissionAddReactions                            // Allows for the addition of reactions to messages.
	PermissionViewAuditLogs                           // Allows for viewing of audit logs.
	PermissionVoicePrioritySpeaker                    // Allows for using priority speaker in a voice channel.
	PermissionVoiceStreamVideo                        // Allows the user to go live.
	PermissionViewChannel                             // Allows viewing a channel, reading messages and joining voice.
	PermissionSendMessages                            // Allows for sending messages in a channel.
	PermissionSendTTSMessages                         // Allows for sending of /tts messages.
	PermissionManageMessages                          // Allows for deletion of other users messages.
	PermissionEmbedLinks                              // Links sent by users with this permission will be auto-embedded.
	PermissionAttachFiles                             // Allows for uploading images and files.
	PermissionReadMessageHistory                      // Allows for reading of message history.
	PermissionMentionEveryone                         // Allows for using the @everyone tag.
	PermissionUseExternalEmojis                       // Allows the usage of custom emojis from other servers.
	PermissionViewGuildInsights                       // Allows for viewing guild insights.
	PermissionVoiceConnect                            // Allows for joining of a voice channel.
	PermissionVoiceSpeak                              // Allows for speaking in a voice channel.
	PermissionVoiceMuteMembers                        // Allows for muting members in a voice channel.
	PermissionVoiceDeafenMembers                      // Allows for deafening of members in a voice channel.
	PermissionVoiceMoveMembers                        // Allows for moving of members between voice channels.
	PermissionVoiceUseVAD                             // Allows for using voice-activity-detection.
	PermissionChangeNickname                          // Allows for modification of own nickname.
	PermissionManageNicknames                         // Allows for modification of other users nicknames.
	PermissionManageRoles                             // Allows management and editing of roles.
	PermissionManageWebhooks                          // Allows management and editing of webhooks.
	PermissionManageEmojis                            // Allows management and editing of emojis and stickers.
	PermissionUseSlashCommands                        // Allows members to use application commands.
	PermissionVoiceRequestToSpeak                     // Allows for requesting to speak in stage channels.
	PermissionManageEvents                            // Allows for creating, editing, and deleting scheduled events.
	PermissionManageThreads                           // Allows for deleting and archiving threads.
	PermissionCreatePublicThreads                     // Allows for creating public and announcement threads.
	PermissionCreatePrivateThreads                    // Allows for creating private threads.
	PermissionUseExternalStickers                     // Allows the usage of custom stickers from other servers.
	PermissionSendMessagesInThreads                   // Allows for sending messages in threads.
	PermissionUseActivities                           // Allows for using Activities in a voice channel.
	PermissionModerateMembers                         // Allows for timing out users.
)

const (
	PermissionAllText = PermissionViewChannel |
		PermissionSendMessages |
		PermissionSendTTSMessages |
		PermissionManageMessages |
		PermissionEmbedLinks |
		PermissionAttachFiles |
		PermissionReadMessageHistory |
		PermissionMentionEveryone |
		PermissionUseExternalEmojis |
		PermissionUseExternalStickers |
		PermissionManageThreads |
		PermissionCreatePublicThreads |
		PermissionCreatePrivateThreads |
		PermissionSendMessagesInThreads

	PermissionAllVoice = PermissionViewChannel |
		PermissionVoiceConnect |
		PermissionVoiceSpeak |
		PermissionVoiceStreamVideo |
		PermissionVoiceMuteMembers |
		PermissionVoiceDeafenMembers |
		PermissionVoiceMoveMembers |
		PermissionVoiceUseVAD |
		PermissionVoicePrioritySpeaker |
		PermissionVoiceRequestToSpeak |
		PermissionUseActivities

	PermissionAllChannel = PermissionAllText |
		PermissionAllVoice |
		PermissionCreateInstantInvite |
		PermissionManageRoles |
		PermissionManageChannels |
		PermissionAddReactions |
		PermissionViewAuditLogs |
		PermissionManageWebhooks |
		PermissionUseSlashCommands

	PermissionAll = PermissionAllChannel |
		PermissionKickMembers |
		PermissionBanMembers |
		PermissionManageServer |
		PermissionAdministrator |
		PermissionManageEmojis |
		PermissionViewGuildInsights |
		PermissionChangeNickname |
		PermissionManageNicknames |
		PermissionManageEvents |
		PermissionModerateMembers

	// PermissionNone is the empty permission set.
	PermissionNone Int64 = 0
)

package lantern

import "github.com/LanternTeam/Lantern/discord"

// role_manager.go contains the closed variant set describing why a role is
// system managed. The metadata's concrete type always agrees with its manager
// type because both come from the same value.

// RoleManagerType discriminates how a role is system managed.
type RoleManagerType uint8

const (
	// RoleManagerTypeNone marks a role that is not managed.
	RoleManagerTypeNone RoleManagerType = iota

	// RoleManagerTypeUnset marks a managed role whose payload carried no
	// recognizable tag yet. Later re-syncs may upgrade it.
	RoleManagerTypeUnset

	// RoleManagerTypeUnknown marks a managed role whose tag shape was not
	// recognized.
	RoleManagerTypeUnknown

	RoleManagerTypeBot
	RoleManagerTypeBooster
	RoleManagerTypeIntegration
	RoleManagerTypeSubscription
	RoleManagerTypeAppRoleConnection
)

func (t RoleManagerType) String() string {
	switch t {
	case RoleManagerTypeNone:
		return "none"
	case RoleManagerTypeUnset:
		return "unset"
	case RoleManagerTypeUnknown:
		return "unknown"
	case RoleManagerTypeBot:
		return "bot"
	case RoleManagerTypeBooster:
		return "booster"
	case RoleManagerTypeIntegration:
		return "integration"
	case RoleManagerTypeSubscription:
		return "subscription"
	case RoleManagerTypeAppRoleConnection:
		return "application_role_connection"
	default:
		return "undefined"
	}
}

// NewMetadata returns the zero metadata value paired with the type.
func (t RoleManagerType) NewMetadata() RoleManagerMetadata {
	switch t {
	case RoleManagerTypeUnset:
		return RoleManagerUnset{}
	case RoleManagerTypeUnknown:
		return RoleManagerUnknown{}
	case RoleManagerTypeBot:
		return RoleManagerBot{}
	case RoleManagerTypeBooster:
		return RoleManagerBooster{}
	case RoleManagerTypeIntegration:
		return RoleManagerIntegration{}
	case RoleManagerTypeSubscription:
		return RoleManagerSubscription{}
	case RoleManagerTypeAppRoleConnection:
		return RoleManagerAppRoleConnection{}
	default:
		return RoleManagerNone{}
	}
}

// RoleManagerMetadata is the sealed interface over the manager variants. Each
// variant carries only the fields relevant to its kind.
type RoleManagerMetadata interface {
	ManagerType() RoleManagerType

	// appendTags writes the variant's wire tag fields into a tags object.
	appendTags(tags map[string]any)
}

type (
	RoleManagerNone    struct{}
	RoleManagerUnset   struct{}
	RoleManagerUnknown struct{}

	RoleManagerBot struct {
		BotID discord.Snowflake
	}

	RoleManagerBooster struct{}

	RoleManagerIntegration struct {
		IntegrationID discord.Snowflake
	}

	RoleManagerSubscription struct {
		IntegrationID         discord.Snowflake
		SubscriptionListingID discord.Snowflake
		AvailableForPurchase  bool
	}

	RoleManagerAppRoleConnection struct{}
)

func (RoleManagerNone) ManagerType() RoleManagerType    { return RoleManagerTypeNone }
func (RoleManagerUnset) ManagerType() RoleManagerType   { return RoleManagerTypeUnset }
func (RoleManagerUnknown) ManagerType() RoleManagerType { return RoleManagerTypeUnknown }
func (RoleManagerBot) ManagerType() RoleManagerType     { return RoleManagerTypeBot }
func (RoleManagerBooster) ManagerType() RoleManagerType { return RoleManagerTypeBooster }

func (RoleManagerIntegration) ManagerType() RoleManagerType {
	return RoleManagerTypeIntegration
}

func (RoleManagerSubscription) ManagerType() RoleManagerType {
	return RoleManagerTypeSubscription
}

func (RoleManagerAppRoleConnection) ManagerType() RoleManagerType {
	return RoleManagerTypeAppRoleConnection
}

func (RoleManagerNone) appendTags(map[string]any)    {}
func (RoleManagerUnset) appendTags(map[string]any)   {}
func (RoleManagerUnknown) appendTags(map[string]any) {}

func (m RoleManagerBot) appendTags(tags map[string]any) {
	tags["bot_id"] = m.BotID
}

func (RoleManagerBooster) appendTags(tags map[string]any) {
	tags["premium_subscriber"] = nil
}

func (m RoleManagerIntegration) appendTags(tags map[string]any) {
	tags["integration_id"] = m.IntegrationID
}

func (m RoleManagerSubscription) appendTags(tags map[string]any) {
	tags["integration_id"] = m.IntegrationID
	tags["subscription_listing_id"] = m.SubscriptionListingID

	if m.AvailableForPurchase {
		tags["available_for_purchase"] = nil
	}
}

func (RoleManagerAppRoleConnection) appendTags(tags map[string]any) {
	tags["guild_connections"] = nil
}

// parseRoleManager inspects the payload's managed flag and tag object in a
// fixed priority order. Tag objects are not guaranteed mutually exclusive
// across payload variants, so the first match wins and the order must not
// change.
func parseRoleManager(managed bool, tags *discord.RoleTag) RoleManagerMetadata {
	if !managed {
		return RoleManagerNone{}
	}

	if tags == nil {
		return RoleManagerUnset{}
	}

	switch {
	case tags.BotID != nil:
		return RoleManagerBot{BotID: *tags.BotID}
	case tags.PremiumSubscriber != nil:
		return RoleManagerBooster{}
	case tags.SubscriptionListingID != nil:
		sub := RoleManagerSubscription{
			SubscriptionListingID: *tags.SubscriptionListingID,
			AvailableForPurchase:  tags.AvailableForPurchase != nil,
		}

		if tags.IntegrationID != nil {
			sub.IntegrationID = *tags.IntegrationID
		}

		return sub
	case tags.IntegrationID != nil:
		return RoleManagerIntegration{IntegrationID: *tags.IntegrationID}
	case tags.GuildConnections != nil:
		return RoleManagerAppRoleConnection{}
	default:
		return RoleManagerUnknown{}
	}
}

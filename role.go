package lantern

import (
	"fmt"
	"sort"

	"github.com/LanternTeam/Lantern/discord"
)

const (
	roleNameLengthMin = 1
	roleNameLengthMax = 100
)

// Role is the live, stateful representation of a guild role. At most one
// instance exists per ID within a State.
type Role struct {
	Name         string
	Icon         string
	UnicodeEmoji string
	Manager      RoleManagerMetadata
	ID           discord.Snowflake
	GuildID      discord.Snowflake
	Permissions  discord.Int64
	Colour       discord.Colour
	Flags        discord.RoleFlags
	Position     int32
	Hoist        bool
	Mentionable  bool

	state   *State
	partial bool
}

func newPartialRole(s *State, roleID discord.Snowflake) *Role {
	return &Role{
		ID:      roleID,
		Manager: RoleManagerUnset{},

		state:   s,
		partial: true,
	}
}

// Partial reports whether the role is known only by ID.
func (r *Role) Partial() bool {
	return r.partial
}

// Managed reports whether the role is system managed.
func (r *Role) Managed() bool {
	return r.ManagerType() != RoleManagerTypeNone
}

func (r *Role) ManagerType() RoleManagerType {
	if r.Manager == nil {
		return RoleManagerTypeNone
	}

	return r.Manager.ManagerType()
}

// IsDefault reports whether this is the guild's everyone role, identified by
// the role ID matching the guild ID.
func (r *Role) IsDefault() bool {
	return !r.ID.IsNil() && r.ID == r.GuildID
}

// Compare orders roles by (position, id), which is total within a guild.
func (r *Role) Compare(other *Role) int {
	switch {
	case r.Position < other.Position:
		return -1
	case r.Position > other.Position:
		return 1
	case r.ID < other.ID:
		return -1
	case r.ID > other.ID:
		return 1
	default:
		return 0
	}
}

func (r *Role) Mention() string {
	return fmt.Sprintf("<@&%s>", r.ID)
}

// SortRoles sorts roles in place by (position, id).
func SortRoles(roles []*Role) {
	sort.SliceStable(roles, func(i, j int) bool {
		return roles[i].Compare(roles[j]) < 0
	})
}

// RoleFromData upserts a role from a wire payload and links it into its
// guild. Wire data fills the role only while it is still partial; update
// events flow through DifferenceUpdate instead.
func (s *State) RoleFromData(data discord.Role, guildID discord.Snowflake) *Role {
	if guildID.IsNil() && data.GuildID != nil {
		guildID = *data.GuildID
	}

	role := s.roleOrCreate(data.ID)

	if role.partial {
		role.GuildID = guildID
		role.SetAttributes(data)
		role.partial = false
	}

	guild := s.guildOrCreate(guildID)

	if !guild.roles.Has(role.ID) {
		guild.roles.Store(role.ID, role)

		// A new role changes the permission inputs of every member holding it.
		s.invalidateGuildPermissions(guildID)
	}

	return role
}

// SetAttributes unconditionally replaces every mutable field from the
// payload. No diff is produced; first full materialization uses this path.
func (r *Role) SetAttributes(data discord.Role) {
	r.Name = data.Name
	r.Colour = data.Color
	r.Permissions = data.Permissions
	r.Position = data.Position
	r.Hoist = data.Hoist
	r.Mentionable = data.Mentionable
	r.Flags = data.Flags
	r.Icon = data.Icon
	r.UnicodeEmoji = data.UnicodeEmoji
	r.Manager = parseRoleManager(data.Managed, data.Tags)
}

// DifferenceUpdate applies the payload field by field, recording the previous
// value of every field that changed. Keys absent from the result mean
// "unchanged", not "unknown". A position or permissions change clears the
// guild's and every guild channel's permission cache before returning.
func (r *Role) DifferenceUpdate(data discord.Role) OldAttributes {
	old := OldAttributes{}

	diffField(old, "name", &r.Name, data.Name)
	diffField(old, "color", &r.Colour, data.Color)
	diffField(old, "permissions", &r.Permissions, data.Permissions)
	diffField(old, "position", &r.Position, data.Position)
	diffField(old, "hoist", &r.Hoist, data.Hoist)
	diffField(old, "mentionable", &r.Mentionable, data.Mentionable)
	diffField(old, "flags", &r.Flags, data.Flags)
	diffField(old, "icon", &r.Icon, data.Icon)
	diffField(old, "unicode_emoji", &r.UnicodeEmoji, data.UnicodeEmoji)

	// Manager detection re-runs only while the type is still unset; once
	// resolved it is immutable across re-syncs.
	if r.ManagerType() == RoleManagerTypeUnset {
		manager := parseRoleManager(data.Managed, data.Tags)
		if manager.ManagerType() != RoleManagerTypeUnset {
			old["manager"] = r.Manager
			r.Manager = manager
		}
	}

	r.partial = false

	if _, ok := old["position"]; ok {
		r.state.invalidateGuildPermissions(r.GuildID)
	} else if _, ok := old["permissions"]; ok {
		r.state.invalidateGuildPermissions(r.GuildID)
	}

	return old
}

// Delete detaches the role from its guild: it is removed from the guild's
// role collection and from every member's cached role-ID list, and the
// guild's permission caches are cleared. The registry entry persists so other
// holders see a consistent detached role rather than a dangling reference.
func (r *Role) Delete() {
	guild, ok := r.state.guilds.Load(r.GuildID)
	if ok {
		guild.roles.Delete(r.ID)

		guild.members.Range(func(_ discord.Snowflake, member *User) bool {
			if profile, ok := member.profiles.Load(guild.ID); ok {
				profile.removeRole(r.ID)
			}

			return true
		})

		r.state.invalidateGuildPermissions(r.GuildID)
	}

	r.GuildID = 0
}

// PrecreateRole declares a role expected to exist before the network confirms
// it. If the role is already fully materialized the attribute arguments are
// silently ignored; the live entity wins.
func (s *State) PrecreateRole(roleID discord.Snowflake, options ...RoleOption) (*Role, error) {
	if roleID.IsNil() {
		return nil, fmt.Errorf("%w: role id must not be zero", ErrInvalidArgument)
	}

	patch, err := newRolePatch(options)
	if err != nil {
		return nil, err
	}

	role := s.roleOrCreate(roleID)

	if role.partial {
		patch.apply(role)
	}

	return role, nil
}

// CopyWith returns a detached copy of the role with the given fields
// replaced. The copy is not registered in any registry.
func (r *Role) CopyWith(options ...RoleOption) (*Role, error) {
	patch, err := newRolePatch(options)
	if err != nil {
		return nil, err
	}

	copied := *r
	copied.partial = false

	patch.apply(&copied)

	return &copied, nil
}

// ToData serializes the role back to the wire shape. With defaults false,
// fields at their default value are omitted; includeInternals gates the
// registry identity fields (id, manager tags).
func (r *Role) ToData(defaults, includeInternals bool) map[string]any {
	data := map[string]any{}

	if includeInternals {
		data["id"] = r.ID
	}

	if defaults || r.Name != "" {
		data["name"] = r.Name
	}

	if defaults || r.Colour != 0 {
		data["color"] = r.Colour
	}

	if defaults || r.Permissions != 0 {
		data["permissions"] = r.Permissions
	}

	if defaults || r.Position != 0 {
		data["position"] = r.Position
	}

	if defaults || r.Hoist {
		data["hoist"] = r.Hoist
	}

	if defaults || r.Mentionable {
		data["mentionable"] = r.Mentionable
	}

	if defaults || r.Flags != 0 {
		data["flags"] = r.Flags
	}

	if defaults || r.Managed() {
		data["managed"] = r.Managed()
	}

	if r.Icon != "" {
		data["icon"] = r.Icon
	} else if defaults {
		data["icon"] = nil
	}

	if r.UnicodeEmoji != "" {
		data["unicode_emoji"] = r.UnicodeEmoji
	} else if defaults {
		data["unicode_emoji"] = nil
	}

	if includeInternals {
		switch r.ManagerType() {
		case RoleManagerTypeNone, RoleManagerTypeUnset, RoleManagerTypeUnknown:
		default:
			tags := map[string]any{}
			r.Manager.appendTags(tags)
			data["tags"] = tags
		}
	}

	return data
}

// rolePatch holds the validated, explicitly-provided fields of a precreate or
// copy-with call. Pointer fields distinguish "not provided" from a provided
// zero value.
type rolePatch struct {
	name         *string
	colour       *discord.Colour
	permissions  *discord.Int64
	position     *int32
	hoist        *bool
	mentionable  *bool
	flags        *discord.RoleFlags
	icon         *string
	unicodeEmoji *string
	manager      RoleManagerMetadata
}

// RoleOption is a single validated field assignment for PrecreateRole or
// Role.CopyWith.
type RoleOption func(*rolePatch) error

// newRolePatch validates every option before any of them is applied, so a
// failing call leaves no partial mutation behind.
func newRolePatch(options []RoleOption) (*rolePatch, error) {
	patch := &rolePatch{}

	for _, option := range options {
		if err := option(patch); err != nil {
			return nil, err
		}
	}

	if patch.icon != nil && *patch.icon != "" && patch.unicodeEmoji != nil && *patch.unicodeEmoji != "" {
		return nil, fmt.Errorf("%w: icon and unicode emoji are mutually exclusive", ErrInvalidValue)
	}

	return patch, nil
}

func (p *rolePatch) apply(role *Role) {
	if p.name != nil {
		role.Name = *p.name
	}

	if p.colour != nil {
		role.Colour = *p.colour
	}

	if p.permissions != nil {
		role.Permissions = *p.permissions
	}

	if p.position != nil {
		role.Position = *p.position
	}

	if p.hoist != nil {
		role.Hoist = *p.hoist
	}

	if p.mentionable != nil {
		role.Mentionable = *p.mentionable
	}

	if p.flags != nil {
		role.Flags = *p.flags
	}

	// Setting either side of the icon pair nulls the other.
	if p.icon != nil {
		role.Icon = *p.icon

		if *p.icon != "" {
			role.UnicodeEmoji = ""
		}
	}

	if p.unicodeEmoji != nil {
		role.UnicodeEmoji = *p.unicodeEmoji

		if *p.unicodeEmoji != "" {
			role.Icon = ""
		}
	}

	if p.manager != nil {
		role.Manager = p.manager
	}
}

func WithRoleName(name string) RoleOption {
	return func(p *rolePatch) error {
		if len(name) < roleNameLengthMin || len(name) > roleNameLengthMax {
			return fmt.Errorf("%w: role name length must be in [%d, %d]", ErrInvalidValue, roleNameLengthMin, roleNameLengthMax)
		}

		p.name = &name

		return nil
	}
}

func WithRoleColour(colour discord.Colour) RoleOption {
	return func(p *rolePatch) error {
		if colour < 0 || colour > 0xffffff {
			return fmt.Errorf("%w: colour out of range", ErrInvalidValue)
		}

		p.colour = &colour

		return nil
	}
}

func WithRolePermissions(permissions discord.Int64) RoleOption {
	return func(p *rolePatch) error {
		if permissions < 0 {
			return fmt.Errorf("%w: permissions must not be negative", ErrInvalidValue)
		}

		p.permissions = &permissions

		return nil
	}
}

func WithRolePosition(position int32) RoleOption {
	return func(p *rolePatch) error {
		if position < 0 {
			return fmt.Errorf("%w: position must not be negative", ErrInvalidValue)
		}

		p.position = &position

		return nil
	}
}

func WithRoleHoist(hoist bool) RoleOption {
	return func(p *rolePatch) error {
		p.hoist = &hoist

		return nil
	}
}

func WithRoleMentionable(mentionable bool) RoleOption {
	return func(p *rolePatch) error {
		p.mentionable = &mentionable

		return nil
	}
}

func WithRoleFlags(flags discord.RoleFlags) RoleOption {
	return func(p *rolePatch) error {
		p.flags = &flags

		return nil
	}
}

func WithRoleIcon(icon string) RoleOption {
	return func(p *rolePatch) error {
		p.icon = &icon

		return nil
	}
}

func WithRoleUnicodeEmoji(emoji string) RoleOption {
	return func(p *rolePatch) error {
		p.unicodeEmoji = &emoji

		return nil
	}
}

func WithRoleManager(manager RoleManagerMetadata) RoleOption {
	return func(p *rolePatch) error {
		if manager == nil {
			return fmt.Errorf("%w: manager metadata must not be nil", ErrInvalidArgument)
		}

		p.manager = manager

		return nil
	}
}

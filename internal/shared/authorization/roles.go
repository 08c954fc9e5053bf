// Package authorization maps role names onto closed tiers and the
// capabilities each tier carries.
package authorization

import "strings"

type RoleTier string

const (
	TierSuperAdmin RoleTier = "super_admin"
	TierAdmin      RoleTier = "admin"
	TierManager    RoleTier = "manager"
	TierViewer     RoleTier = "viewer"
	// TierCustom covers every role created at runtime.
	TierCustom RoleTier = "custom"
)

// Built-in role names as stored in the roles table.
const (
	RoleNameSuperAdmin = "Super Admin"
	RoleNameAdmin      = "Admin"
	RoleNameManager    = "Manager"
	RoleNameViewer     = "Viewer"
)

type Capability string

const (
	CapabilityManagePermissions Capability = "manage_permissions"
	CapabilityViewPermissions   Capability = "view_permissions"
)

var tierCapabilities = map[RoleTier][]Capability{
	TierSuperAdmin: {CapabilityManagePermissions, CapabilityViewPermissions},
	TierAdmin:      {CapabilityManagePermissions, CapabilityViewPermissions},
	TierManager:    {CapabilityViewPermissions},
}

var tierByName = map[string]RoleTier{
	normalize(RoleNameSuperAdmin): TierSuperAdmin,
	normalize(RoleNameAdmin):      TierAdmin,
	normalize(RoleNameManager):    TierManager,
	normalize(RoleNameViewer):     TierViewer,
}

func normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// ParseRoleTier resolves a stored role name. Casing and inner whitespace are
// ignored; unknown names are TierCustom.
func ParseRoleTier(roleName string) RoleTier {
	if tier, ok := tierByName[normalize(roleName)]; ok {
		return tier
	}
	return TierCustom
}

func (t RoleTier) String() string {
	return string(t)
}

func (t RoleTier) Has(c Capability) bool {
	for _, have := range tierCapabilities[t] {
		if have == c {
			return true
		}
	}
	return false
}

// IsProtected reports whether roles of this tier are immune to permission writes.
func (t RoleTier) IsProtected() bool {
	return t == TierSuperAdmin
}

func (t RoleTier) CanManagePermissions() bool {
	return t.Has(CapabilityManagePermissions)
}

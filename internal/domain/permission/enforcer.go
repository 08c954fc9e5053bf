package permission

// PolicyEnforcer answers route-level permission checks from policies that
// mirror the effective grants.
type PolicyEnforcer interface {
	Enforce(roleName, permissionName string) (bool, error)
	// ReplaceRolePolicies makes permissionNames the complete policy set of roleName.
	ReplaceRolePolicies(roleName string, permissionNames []string) error
	LoadPolicy() error
}

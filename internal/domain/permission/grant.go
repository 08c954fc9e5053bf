package permission

import (
	"fmt"
	"time"
)

// Grant associates a permission with a role. A role holds a permission at most once.
type Grant struct {
	roleID       uint
	permissionID uint
	isActive     bool
	grantedBy    string
	grantedAt    time.Time
}

func NewGrant(roleID, permissionID uint, grantedBy string, grantedAt time.Time) (*Grant, error) {
	if roleID == 0 {
		return nil, fmt.Errorf("grant role ID cannot be zero")
	}
	if permissionID == 0 {
		return nil, fmt.Errorf("grant permission ID cannot be zero")
	}
	return &Grant{
		roleID:       roleID,
		permissionID: permissionID,
		isActive:     true,
		grantedBy:    grantedBy,
		grantedAt:    grantedAt,
	}, nil
}

func ReconstructGrant(roleID, permissionID uint, isActive bool, grantedBy string, grantedAt time.Time) *Grant {
	return &Grant{
		roleID:       roleID,
		permissionID: permissionID,
		isActive:     isActive,
		grantedBy:    grantedBy,
		grantedAt:    grantedAt,
	}
}

func (g *Grant) RoleID() uint         { return g.roleID }
func (g *Grant) PermissionID() uint   { return g.permissionID }
func (g *Grant) IsActive() bool       { return g.isActive }
func (g *Grant) GrantedBy() string    { return g.grantedBy }
func (g *Grant) GrantedAt() time.Time { return g.grantedAt }

// NewGrants stamps one grant per permission ID with the same audit fields.
func NewGrants(roleID uint, permissionIDs []uint, grantedBy string, grantedAt time.Time) ([]*Grant, error) {
	grants := make([]*Grant, 0, len(permissionIDs))
	for _, pid := range permissionIDs {
		g, err := NewGrant(roleID, pid, grantedBy, grantedAt)
		if err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, nil
}

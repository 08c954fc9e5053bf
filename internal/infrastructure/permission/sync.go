package permission

import (
	"context"
	"fmt"

	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/logger"
)

// PolicySync mirrors effective grants into enforcer policies.
type PolicySync struct {
	roles       permission.RoleRepository
	permissions permission.PermissionRepository
	grants      permission.GrantRepository
	enforcer    permission.PolicyEnforcer
	logger      logger.Interface
}

func NewPolicySync(
	roles permission.RoleRepository,
	permissions permission.PermissionRepository,
	grants permission.GrantRepository,
	enforcer permission.PolicyEnforcer,
	logger logger.Interface,
) *PolicySync {
	return &PolicySync{
		roles:       roles,
		permissions: permissions,
		grants:      grants,
		enforcer:    enforcer,
		logger:      logger,
	}
}

// SyncAll rewrites the policies of every active role.
func (s *PolicySync) SyncAll(ctx context.Context) error {
	roles, err := s.roles.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}

	ids := make([]uint, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID())
	}

	if err := s.SyncRoles(ctx, ids); err != nil {
		return err
	}

	s.logger.Infow("policies synced", "roles", len(ids))
	return nil
}

// SyncRoles rewrites the policies of the given roles from their effective grants.
// Inactive roles lose all policies.
func (s *PolicySync) SyncRoles(ctx context.Context, roleIDs []uint) error {
	if len(roleIDs) == 0 {
		return nil
	}

	perms, err := s.permissions.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load permissions: %w", err)
	}
	names := make(map[uint]string, len(perms))
	for _, p := range perms {
		names[p.ID()] = p.Name().String()
	}

	for _, roleID := range roleIDs {
		role, err := s.roles.GetByID(ctx, roleID)
		if err != nil {
			return fmt.Errorf("failed to load role %d: %w", roleID, err)
		}
		if role == nil {
			continue
		}

		var granted []string
		if role.IsActive() {
			grants, err := s.grants.ListActiveByRole(ctx, roleID)
			if err != nil {
				return fmt.Errorf("failed to load grants of role %d: %w", roleID, err)
			}
			for _, g := range grants {
				if name, ok := names[g.PermissionID()]; ok {
					granted = append(granted, name)
				}
			}
		}

		if err := s.enforcer.ReplaceRolePolicies(role.Name(), granted); err != nil {
			return err
		}
		s.logger.Debugw("role policies replaced", "role", role.Name(), "count", len(granted))
	}

	return nil
}

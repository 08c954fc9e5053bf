package usecases

import (
	"context"
	"fmt"
	"time"

	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/errors"
	"tourbook/internal/shared/logger"
)

// PolicySyncer rewrites route-level policies after grants change.
type PolicySyncer interface {
	SyncRoles(ctx context.Context, roleIDs []uint) error
}

// requireManager rejects callers whose tier cannot manage permissions.
func requireManager(caller authorization.Caller) error {
	if !caller.Tier().CanManagePermissions() {
		return errors.NewForbiddenError(
			"only Super Admin or Admin can manage permissions",
			fmt.Sprintf("role=%s", caller.RoleName),
		)
	}
	return nil
}

// changeNotifier propagates grant rewrites to the policy enforcer and the
// event bus. Both are optional and their failures never undo a write.
type changeNotifier struct {
	syncer    PolicySyncer
	publisher permission.GrantEventPublisher
	logger    logger.Interface
}

func (n changeNotifier) notify(ctx context.Context, roleIDs []uint, changedBy string) {
	if len(roleIDs) == 0 {
		return
	}

	if n.syncer != nil {
		if err := n.syncer.SyncRoles(ctx, roleIDs); err != nil {
			n.logger.Errorw("failed to sync role policies", "role_ids", roleIDs, "error", err)
		}
	}

	if n.publisher != nil {
		event := permission.GrantsChangedEvent{
			RoleIDs:   roleIDs,
			ChangedBy: changedBy,
			Timestamp: time.Now().UTC(),
		}
		if err := n.publisher.PublishGrantsChanged(ctx, event); err != nil {
			n.logger.Warnw("failed to publish grants changed event", "role_ids", roleIDs, "error", err)
		}
	}
}

// matrixLoader reads the full state the matrix is built from.
type matrixLoader struct {
	roles       permission.RoleRepository
	permissions permission.PermissionRepository
	grants      permission.GrantRepository
	ordering    permission.MatrixOrdering
}

func (l matrixLoader) load(ctx context.Context) (*permission.Matrix, error) {
	roles, err := l.roles.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	perms, err := l.permissions.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	grants, err := l.grants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	return permission.BuildMatrix(roles, perms, grants, l.ordering), nil
}

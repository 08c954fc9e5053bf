package usecases

import (
	"context"
	"fmt"
	"time"

	"tourbook/internal/application/permission/dto"
	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/errors"
	"tourbook/internal/shared/logger"
)

type CopyRolePermissionsCommand struct {
	Caller     authorization.Caller
	FromRoleID uint
	ToRoleID   uint
}

type CopyRolePermissionsExecutor interface {
	Execute(ctx context.Context, cmd CopyRolePermissionsCommand) (*dto.CopyPermissionsResponse, error)
}

// CopyRolePermissionsUseCase overwrites the destination role's grants with
// the source role's effective grants.
type CopyRolePermissionsUseCase struct {
	roleRepo  permission.RoleRepository
	grantRepo permission.GrantRepository
	notifier  changeNotifier
	logger    logger.Interface
	now       func() time.Time
}

func NewCopyRolePermissionsUseCase(
	roleRepo permission.RoleRepository,
	grantRepo permission.GrantRepository,
	syncer PolicySyncer,
	publisher permission.GrantEventPublisher,
	logger logger.Interface,
) *CopyRolePermissionsUseCase {
	return &CopyRolePermissionsUseCase{
		roleRepo:  roleRepo,
		grantRepo: grantRepo,
		notifier:  changeNotifier{syncer: syncer, publisher: publisher, logger: logger},
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *CopyRolePermissionsUseCase) Execute(ctx context.Context, cmd CopyRolePermissionsCommand) (*dto.CopyPermissionsResponse, error) {
	uc.logger.Infow("executing copy role permissions use case",
		"user_id", cmd.Caller.UserID,
		"from_role_id", cmd.FromRoleID,
		"to_role_id", cmd.ToRoleID,
	)

	if err := requireManager(cmd.Caller); err != nil {
		return nil, err
	}

	if cmd.FromRoleID == cmd.ToRoleID {
		return nil, errors.NewValidationError("source and destination roles must differ")
	}

	from, err := uc.findRole(ctx, cmd.FromRoleID, "source")
	if err != nil {
		return nil, err
	}
	to, err := uc.findRole(ctx, cmd.ToRoleID, "destination")
	if err != nil {
		return nil, err
	}

	if from.IsProtected() || to.IsProtected() {
		uc.logger.Warnw("copy involving protected role rejected", "from", from.Name(), "to", to.Name())
		return nil, errors.NewProtectedEntityError(fmt.Sprintf("permissions of %s cannot be copied", authorization.RoleNameSuperAdmin))
	}

	sourceGrants, err := uc.grantRepo.ListActiveByRole(ctx, from.ID())
	if err != nil {
		uc.logger.Errorw("failed to list source grants", "role_id", from.ID(), "error", err)
		return nil, fmt.Errorf("failed to list source grants: %w", err)
	}
	existing, err := uc.grantRepo.ListActiveByRole(ctx, to.ID())
	if err != nil {
		uc.logger.Errorw("failed to list destination grants", "role_id", to.ID(), "error", err)
		return nil, fmt.Errorf("failed to list destination grants: %w", err)
	}

	ids := make([]uint, 0, len(sourceGrants))
	for _, g := range sourceGrants {
		ids = append(ids, g.PermissionID())
	}

	grants, err := permission.NewGrants(to.ID(), ids, cmd.Caller.UserID, uc.now().UTC())
	if err != nil {
		return nil, errors.NewInternalError("failed to build grants", err.Error())
	}

	if err := uc.grantRepo.ReplaceForRole(ctx, to.ID(), grants); err != nil {
		uc.logger.Errorw("failed to replace destination grants", "role_id", to.ID(), "error", err)
		return nil, fmt.Errorf("failed to copy permissions: %w", err)
	}

	uc.notifier.notify(ctx, []uint{to.ID()}, cmd.Caller.UserID)

	uc.logger.Infow("role permissions copied", "from", from.Name(), "to", to.Name(), "count", len(ids))
	return &dto.CopyPermissionsResponse{
		FromRole:        from.Name(),
		ToRole:          to.Name(),
		PermissionCount: len(ids),
		OldCount:        len(existing),
	}, nil
}

func (uc *CopyRolePermissionsUseCase) findRole(ctx context.Context, id uint, side string) (*permission.Role, error) {
	role, err := uc.roleRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get role", "role_id", id, "error", err)
		return nil, fmt.Errorf("failed to get %s role: %w", side, err)
	}
	if role == nil || !role.IsActive() {
		return nil, errors.NewNotFoundError(side+" role not found", fmt.Sprintf("id=%d", id))
	}
	return role, nil
}

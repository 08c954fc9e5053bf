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

type ToggleRolePermissionCommand struct {
	Caller       authorization.Caller
	RoleID       uint
	PermissionID uint
	Granted      bool
}

type ToggleRolePermissionExecutor interface {
	Execute(ctx context.Context, cmd ToggleRolePermissionCommand) (*dto.TogglePermissionResponse, error)
}

type ToggleRolePermissionUseCase struct {
	roleRepo       permission.RoleRepository
	permissionRepo permission.PermissionRepository
	grantRepo      permission.GrantRepository
	notifier       changeNotifier
	logger         logger.Interface
	now            func() time.Time
}

func NewToggleRolePermissionUseCase(
	roleRepo permission.RoleRepository,
	permissionRepo permission.PermissionRepository,
	grantRepo permission.GrantRepository,
	syncer PolicySyncer,
	publisher permission.GrantEventPublisher,
	logger logger.Interface,
) *ToggleRolePermissionUseCase {
	return &ToggleRolePermissionUseCase{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		grantRepo:      grantRepo,
		notifier:       changeNotifier{syncer: syncer, publisher: publisher, logger: logger},
		logger:         logger,
		now:            time.Now,
	}
}

func (uc *ToggleRolePermissionUseCase) Execute(ctx context.Context, cmd ToggleRolePermissionCommand) (*dto.TogglePermissionResponse, error) {
	uc.logger.Infow("executing toggle role permission use case",
		"user_id", cmd.Caller.UserID,
		"role_id", cmd.RoleID,
		"permission_id", cmd.PermissionID,
		"granted", cmd.Granted,
	)

	if err := requireManager(cmd.Caller); err != nil {
		return nil, err
	}

	role, err := uc.roleRepo.GetByID(ctx, cmd.RoleID)
	if err != nil {
		uc.logger.Errorw("failed to get role", "role_id", cmd.RoleID, "error", err)
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil || !role.IsActive() {
		return nil, errors.NewNotFoundError("role not found", fmt.Sprintf("id=%d", cmd.RoleID))
	}
	if role.IsProtected() {
		return nil, errors.NewProtectedEntityError(fmt.Sprintf("permissions of %s cannot be changed", role.Name()))
	}

	perm, err := uc.permissionRepo.GetByID(ctx, cmd.PermissionID)
	if err != nil {
		uc.logger.Errorw("failed to get permission", "permission_id", cmd.PermissionID, "error", err)
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}
	if perm == nil || !perm.IsActive() {
		return nil, errors.NewNotFoundError("permission not found", fmt.Sprintf("id=%d", cmd.PermissionID))
	}

	grants, err := uc.grantRepo.ListActiveByRole(ctx, role.ID())
	if err != nil {
		uc.logger.Errorw("failed to list role grants", "role_id", role.ID(), "error", err)
		return nil, fmt.Errorf("failed to list role grants: %w", err)
	}
	held := false
	for _, g := range grants {
		if g.PermissionID() == perm.ID() {
			held = true
			break
		}
	}

	resp := &dto.TogglePermissionResponse{
		RoleID:       role.ID(),
		PermissionID: perm.ID(),
		Granted:      cmd.Granted,
	}
	if held == cmd.Granted {
		return resp, nil
	}

	if cmd.Granted {
		grant, err := permission.NewGrant(role.ID(), perm.ID(), cmd.Caller.UserID, uc.now().UTC())
		if err != nil {
			return nil, errors.NewInternalError("failed to build grant", err.Error())
		}
		if err := uc.grantRepo.Add(ctx, grant); err != nil {
			uc.logger.Errorw("failed to add grant", "role_id", role.ID(), "permission_id", perm.ID(), "error", err)
			return nil, fmt.Errorf("failed to grant permission: %w", err)
		}
	} else {
		if err := uc.grantRepo.Remove(ctx, role.ID(), perm.ID()); err != nil {
			uc.logger.Errorw("failed to remove grant", "role_id", role.ID(), "permission_id", perm.ID(), "error", err)
			return nil, fmt.Errorf("failed to revoke permission: %w", err)
		}
	}
	resp.Changed = true

	uc.notifier.notify(ctx, []uint{role.ID()}, cmd.Caller.UserID)

	uc.logger.Infow("role permission toggled", "role", role.Name(), "permission", perm.Name().String(), "granted", cmd.Granted)
	return resp, nil
}

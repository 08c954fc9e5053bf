package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourbook/internal/application/permission/dto"
	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/logger"
	"tourbook/internal/shared/utils/setutil"
)

// UpdateRolePermissionsCommand carries the desired grant set per role ID.
// A role present with an empty list is cleared; a role absent from the map
// is left unchanged.
type UpdateRolePermissionsCommand struct {
	Caller      authorization.Caller
	Permissions map[uint][]uint
}

type UpdateRolePermissionsExecutor interface {
	Execute(ctx context.Context, cmd UpdateRolePermissionsCommand) (*dto.UpdatePermissionsResponse, error)
}

type UpdateRolePermissionsUseCase struct {
	roleRepo       permission.RoleRepository
	permissionRepo permission.PermissionRepository
	grantRepo      permission.GrantRepository
	loader         matrixLoader
	notifier       changeNotifier
	logger         logger.Interface
	now            func() time.Time
}

func NewUpdateRolePermissionsUseCase(
	roleRepo permission.RoleRepository,
	permissionRepo permission.PermissionRepository,
	grantRepo permission.GrantRepository,
	ordering permission.MatrixOrdering,
	syncer PolicySyncer,
	publisher permission.GrantEventPublisher,
	logger logger.Interface,
) *UpdateRolePermissionsUseCase {
	return &UpdateRolePermissionsUseCase{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		grantRepo:      grantRepo,
		loader: matrixLoader{
			roles:       roleRepo,
			permissions: permissionRepo,
			grants:      grantRepo,
			ordering:    ordering,
		},
		notifier: changeNotifier{syncer: syncer, publisher: publisher, logger: logger},
		logger:   logger,
		now:      time.Now,
	}
}

func (uc *UpdateRolePermissionsUseCase) Execute(ctx context.Context, cmd UpdateRolePermissionsCommand) (*dto.UpdatePermissionsResponse, error) {
	uc.logger.Infow("executing update role permissions use case",
		"user_id", cmd.Caller.UserID,
		"role", cmd.Caller.RoleName,
		"roles_submitted", len(cmd.Permissions),
	)

	if err := requireManager(cmd.Caller); err != nil {
		uc.logger.Warnw("permission update rejected", "user_id", cmd.Caller.UserID, "role", cmd.Caller.RoleName)
		return nil, err
	}

	roles, err := uc.roleRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list roles", "error", err)
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	activePerms, err := uc.permissionRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list permissions", "error", err)
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	// Only permissions the matrix displays can be submitted.
	valid := setutil.NewUintSet()
	for _, p := range activePerms {
		if uc.loader.ordering.HasModule(p.Module()) {
			valid.Add(p.ID())
		}
	}

	grants, err := uc.grantRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list grants", "error", err)
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	current := make(map[uint]*setutil.UintSet)
	for _, g := range grants {
		set, ok := current[g.RoleID()]
		if !ok {
			set = setutil.NewUintSet()
			current[g.RoleID()] = set
		}
		set.Add(g.PermissionID())
	}

	resp := &dto.UpdatePermissionsResponse{
		ChangedRoles: make(map[string]dto.RoleOutcome),
	}
	var succeeded, failed []string
	var changedIDs []uint

	for _, role := range roles {
		submitted, ok := cmd.Permissions[role.ID()]
		if !ok {
			continue
		}
		if role.IsProtected() {
			uc.logger.Debugw("skipping protected role", "role", role.Name())
			continue
		}
		if !role.IsActive() {
			uc.logger.Debugw("skipping inactive role", "role", role.Name())
			continue
		}

		desired := setutil.NewUintSet()
		for _, id := range submitted {
			if valid.Has(id) {
				desired.Add(id)
			}
		}

		// Grants outside the displayed modules are kept as they are.
		visible := setutil.NewUintSet()
		hidden := setutil.NewUintSet()
		if had, ok := current[role.ID()]; ok {
			for _, id := range had.Sorted() {
				if valid.Has(id) {
					visible.Add(id)
				} else {
					hidden.Add(id)
				}
			}
		}
		if desired.Equal(visible) {
			continue
		}

		outcome := uc.replace(ctx, role, desired, hidden, visible.Len(), cmd.Caller.UserID)
		resp.ChangedRoles[role.Name()] = outcome
		if outcome.Success {
			succeeded = append(succeeded, role.Name())
			changedIDs = append(changedIDs, role.ID())
		} else {
			failed = append(failed, role.Name())
		}
	}

	resp.TotalChanged = len(succeeded)
	resp.Success = len(failed) == 0
	resp.Summary = summarize(succeeded, failed)
	switch {
	case len(failed) > 0:
		resp.Message = "some roles could not be updated"
	case len(succeeded) == 0:
		resp.Message = "no changes detected"
	default:
		resp.Message = "permissions updated successfully"
	}

	uc.notifier.notify(ctx, changedIDs, cmd.Caller.UserID)

	m, err := uc.loader.load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to reload permission matrix", "error", err)
	} else {
		resp.Data = dto.ToMatrixData(m)
	}

	uc.logger.Infow("role permissions reconciled",
		"user_id", cmd.Caller.UserID,
		"changed", len(succeeded),
		"failed", len(failed),
	)
	return resp, nil
}

// replace rewrites one role's grant set to desired plus kept and reports the
// outcome. Errors are recorded on the outcome so the rest of the batch keeps going.
func (uc *UpdateRolePermissionsUseCase) replace(ctx context.Context, role *permission.Role, desired, kept *setutil.UintSet, oldCount int, grantedBy string) dto.RoleOutcome {
	ids := desired.Sorted()
	merged := setutil.NewUintSet(ids...)
	merged.AddAll(kept.Sorted())

	grants, err := permission.NewGrants(role.ID(), merged.Sorted(), grantedBy, uc.now().UTC())
	if err == nil {
		err = uc.grantRepo.ReplaceForRole(ctx, role.ID(), grants)
	}
	if err != nil {
		uc.logger.Errorw("failed to replace role grants", "role", role.Name(), "role_id", role.ID(), "error", err)
		return dto.RoleOutcome{
			Success: false,
			Message: fmt.Sprintf("failed to update permissions for %s", role.Name()),
			Error:   err.Error(),
		}
	}

	count := len(ids)
	return dto.RoleOutcome{
		Success:         true,
		Message:         fmt.Sprintf("%s now has %d permissions", role.Name(), count),
		PermissionCount: &count,
		OldCount:        &oldCount,
	}
}

func summarize(succeeded, failed []string) string {
	if len(succeeded) == 0 && len(failed) == 0 {
		return "no roles changed"
	}

	var parts []string
	if len(succeeded) > 0 {
		parts = append(parts, "updated: "+strings.Join(succeeded, ", "))
	}
	if len(failed) > 0 {
		parts = append(parts, "failed: "+strings.Join(failed, ", "))
	}
	return strings.Join(parts, "; ")
}

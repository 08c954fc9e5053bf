package http

import (
	"tourbook/internal/application/permission/usecases"
	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/logger"
)

type allUseCases struct {
	getMatrix  *usecases.GetPermissionMatrixUseCase
	update     *usecases.UpdateRolePermissionsUseCase
	copy       *usecases.CopyRolePermissionsUseCase
	toggle     *usecases.ToggleRolePermissionUseCase
	createRole *usecases.CreateRoleUseCase
}

func newUseCases(
	repos *repositories,
	syncer usecases.PolicySyncer,
	publisher permission.GrantEventPublisher,
	log logger.Interface,
) *allUseCases {
	ordering := permission.DefaultOrdering()

	return &allUseCases{
		getMatrix:  usecases.NewGetPermissionMatrixUseCase(repos.roleRepo, repos.permissionRepo, repos.grantRepo, ordering, log),
		update:     usecases.NewUpdateRolePermissionsUseCase(repos.roleRepo, repos.permissionRepo, repos.grantRepo, ordering, syncer, publisher, log),
		copy:       usecases.NewCopyRolePermissionsUseCase(repos.roleRepo, repos.grantRepo, syncer, publisher, log),
		toggle:     usecases.NewToggleRolePermissionUseCase(repos.roleRepo, repos.permissionRepo, repos.grantRepo, syncer, publisher, log),
		createRole: usecases.NewCreateRoleUseCase(repos.roleRepo, log),
	}
}

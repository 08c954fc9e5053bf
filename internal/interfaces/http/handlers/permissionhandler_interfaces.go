package handlers

import (
	"context"

	"tourbook/internal/application/permission/dto"
	"tourbook/internal/application/permission/usecases"
)

// Use case interfaces for PermissionHandler

type getPermissionMatrixUseCase interface {
	Execute(ctx context.Context, query usecases.GetPermissionMatrixQuery) (*dto.MatrixResponse, error)
}

type updateRolePermissionsUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateRolePermissionsCommand) (*dto.UpdatePermissionsResponse, error)
}

type copyRolePermissionsUseCase interface {
	Execute(ctx context.Context, cmd usecases.CopyRolePermissionsCommand) (*dto.CopyPermissionsResponse, error)
}

type toggleRolePermissionUseCase interface {
	Execute(ctx context.Context, cmd usecases.ToggleRolePermissionCommand) (*dto.TogglePermissionResponse, error)
}

type createRoleUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateRoleCommand) (*dto.RoleDTO, error)
}

package usecases

import (
	"context"

	"tourbook/internal/application/permission/dto"
	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/errors"
	"tourbook/internal/shared/logger"
)

type GetPermissionMatrixQuery struct{}

type GetPermissionMatrixExecutor interface {
	Execute(ctx context.Context, query GetPermissionMatrixQuery) (*dto.MatrixResponse, error)
}

type GetPermissionMatrixUseCase struct {
	loader matrixLoader
	logger logger.Interface
}

func NewGetPermissionMatrixUseCase(
	roleRepo permission.RoleRepository,
	permissionRepo permission.PermissionRepository,
	grantRepo permission.GrantRepository,
	ordering permission.MatrixOrdering,
	logger logger.Interface,
) *GetPermissionMatrixUseCase {
	return &GetPermissionMatrixUseCase{
		loader: matrixLoader{
			roles:       roleRepo,
			permissions: permissionRepo,
			grants:      grantRepo,
			ordering:    ordering,
		},
		logger: logger,
	}
}

func (uc *GetPermissionMatrixUseCase) Execute(ctx context.Context, _ GetPermissionMatrixQuery) (*dto.MatrixResponse, error) {
	uc.logger.Debugw("executing get permission matrix use case")

	m, err := uc.loader.load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load permission matrix", "error", err)
		return nil, errors.NewInternalError("could not load permission matrix")
	}

	return dto.ToMatrixResponse(m), nil
}

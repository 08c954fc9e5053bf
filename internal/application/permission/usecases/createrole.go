package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"tourbook/internal/application/permission/dto"
	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/errors"
	"tourbook/internal/shared/logger"
)

type CreateRoleCommand struct {
	Caller      authorization.Caller
	Name        string
	Level       int
	Description string
}

type CreateRoleExecutor interface {
	Execute(ctx context.Context, cmd CreateRoleCommand) (*dto.RoleDTO, error)
}

type CreateRoleUseCase struct {
	roleRepo  permission.RoleRepository
	sanitizer *bluemonday.Policy
	logger    logger.Interface
}

func NewCreateRoleUseCase(roleRepo permission.RoleRepository, logger logger.Interface) *CreateRoleUseCase {
	return &CreateRoleUseCase{
		roleRepo:  roleRepo,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

func (uc *CreateRoleUseCase) Execute(ctx context.Context, cmd CreateRoleCommand) (*dto.RoleDTO, error) {
	uc.logger.Infow("executing create role use case", "user_id", cmd.Caller.UserID, "name", cmd.Name, "level", cmd.Level)

	if err := requireManager(cmd.Caller); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Description))
	role, err := permission.NewRole(cmd.Name, cmd.Level, description)
	if err != nil {
		uc.logger.Errorw("invalid create role command", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	existing, err := uc.roleRepo.GetByName(ctx, role.Name())
	if err != nil {
		uc.logger.Errorw("failed to check role name", "name", role.Name(), "error", err)
		return nil, fmt.Errorf("failed to check role name: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("role name already exists", role.Name())
	}

	if role.IsProtected() {
		roles, err := uc.roleRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list roles: %w", err)
		}
		for _, r := range roles {
			if r.IsProtected() {
				return nil, errors.NewProtectedEntityError(fmt.Sprintf("%s already exists", r.Name()))
			}
		}
	}

	if err := uc.roleRepo.Create(ctx, role); err != nil {
		if errors.IsConflictError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create role", "name", role.Name(), "error", err)
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	uc.logger.Infow("role created", "role_id", role.ID(), "name", role.Name(), "tier", role.Tier())
	result := dto.ToRoleDTO(role)
	return &result, nil
}

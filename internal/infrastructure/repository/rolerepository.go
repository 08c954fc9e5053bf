package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"tourbook/internal/domain/permission"
	"tourbook/internal/infrastructure/persistence/mappers"
	"tourbook/internal/infrastructure/persistence/models"
	"tourbook/internal/shared/db"
	"tourbook/internal/shared/errors"
)

type RoleRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PermissionMapper
}

func NewRoleRepository(db *gorm.DB) permission.RoleRepository {
	return &RoleRepositoryImpl{db: db, mapper: mappers.NewPermissionMapper()}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *permission.Role) error {
	model := r.mapper.RoleToModel(role)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("role already exists", role.Name())
		}
		return fmt.Errorf("failed to create role: %w", err)
	}

	return role.SetID(model.ID)
}

func (r *RoleRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return r.mapper.RoleToDomain(&model)
}

func (r *RoleRepositoryImpl) GetByName(ctx context.Context, name string) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}

	return r.mapper.RoleToDomain(&model)
}

func (r *RoleRepositoryImpl) ListActive(ctx context.Context) ([]*permission.Role, error) {
	var rows []models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.Active()).
		Order("level ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active roles: %w", err)
	}

	return r.mapper.RolesToDomain(rows)
}

func (r *RoleRepositoryImpl) ListAll(ctx context.Context) ([]*permission.Role, error) {
	var rows []models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).
		Order("level ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	return r.mapper.RolesToDomain(rows)
}

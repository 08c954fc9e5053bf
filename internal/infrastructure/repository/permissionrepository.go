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

type PermissionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PermissionMapper
}

func NewPermissionRepository(db *gorm.DB) permission.PermissionRepository {
	return &PermissionRepositoryImpl{db: db, mapper: mappers.NewPermissionMapper()}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, p *permission.Permission) error {
	model := r.mapper.PermissionToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("permission already exists", p.Name().String())
		}
		return fmt.Errorf("failed to create permission: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PermissionRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Permission, error) {
	var model models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return r.mapper.PermissionToDomain(&model)
}

func (r *PermissionRepositoryImpl) GetByName(ctx context.Context, name string) (*permission.Permission, error) {
	var model models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission by name: %w", err)
	}

	return r.mapper.PermissionToDomain(&model)
}

func (r *PermissionRepositoryImpl) ListActive(ctx context.Context) ([]*permission.Permission, error) {
	var rows []models.PermissionModel
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.Active()).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active permissions: %w", err)
	}

	return r.mapper.PermissionsToDomain(rows)
}

func (r *PermissionRepositoryImpl) SetActive(ctx context.Context, id uint, active bool) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.PermissionModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update permission status: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the value is unchanged.
	var count int64
	if err := tx.Model(&models.PermissionModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if count == 0 {
		return errors.NewNotFoundError("permission not found")
	}
	return nil
}

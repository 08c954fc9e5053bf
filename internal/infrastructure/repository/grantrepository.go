package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tourbook/internal/domain/permission"
	"tourbook/internal/infrastructure/persistence/mappers"
	"tourbook/internal/infrastructure/persistence/models"
	"tourbook/internal/shared/constants"
	"tourbook/internal/shared/db"
)

type GrantRepositoryImpl struct {
	db     *gorm.DB
	tm     *db.TransactionManager
	mapper mappers.PermissionMapper
}

func NewGrantRepository(gdb *gorm.DB) permission.GrantRepository {
	return &GrantRepositoryImpl{
		db:     gdb,
		tm:     db.NewTransactionManager(gdb),
		mapper: mappers.NewPermissionMapper(),
	}
}

// effective joins grants with their role and permission and keeps rows where all three are active.
func (r *GrantRepositoryImpl) effective(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(constants.TableRolePermissions+" AS rp").
		Select("rp.*").
		Joins("JOIN "+constants.TableRoles+" AS r ON r.id = rp.role_id").
		Joins("JOIN "+constants.TablePermissions+" AS p ON p.id = rp.permission_id").
		Scopes(db.ActiveWithAlias("rp"), db.ActiveWithAlias("r"), db.ActiveWithAlias("p"))
}

func (r *GrantRepositoryImpl) ListActive(ctx context.Context) ([]*permission.Grant, error) {
	var rows []models.RolePermissionModel
	if err := r.effective(ctx).Order("rp.role_id ASC, rp.permission_id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active grants: %w", err)
	}
	return r.mapper.GrantsToDomain(rows), nil
}

func (r *GrantRepositoryImpl) ListActiveByRole(ctx context.Context, roleID uint) ([]*permission.Grant, error) {
	var rows []models.RolePermissionModel
	if err := r.effective(ctx).
		Where("rp.role_id = ?", roleID).
		Order("rp.permission_id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list grants for role %d: %w", roleID, err)
	}
	return r.mapper.GrantsToDomain(rows), nil
}

func (r *GrantRepositoryImpl) DeleteByRole(ctx context.Context, roleID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("role_id = ?", roleID).
		Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete grants for role %d: %w", roleID, err)
	}
	return nil
}

func (r *GrantRepositoryImpl) InsertBatch(ctx context.Context, grants []*permission.Grant) error {
	if len(grants) == 0 {
		return nil
	}

	rows := make([]*models.RolePermissionModel, 0, len(grants))
	for _, g := range grants {
		rows = append(rows, r.mapper.GrantToModel(g))
	}

	// single multi-row INSERT
	if err := db.GetTxFromContext(ctx, r.db).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert grants: %w", err)
	}
	return nil
}

func (r *GrantRepositoryImpl) ReplaceForRole(ctx context.Context, roleID uint, grants []*permission.Grant) error {
	for _, g := range grants {
		if g.RoleID() != roleID {
			return fmt.Errorf("grant for role %d passed to replace of role %d", g.RoleID(), roleID)
		}
	}

	return r.tm.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := r.DeleteByRole(txCtx, roleID); err != nil {
			return err
		}
		return r.InsertBatch(txCtx, grants)
	})
}

func (r *GrantRepositoryImpl) Add(ctx context.Context, grant *permission.Grant) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(r.mapper.GrantToModel(grant)).Error; err != nil {
		return fmt.Errorf("failed to add grant: %w", err)
	}
	return nil
}

func (r *GrantRepositoryImpl) Remove(ctx context.Context, roleID, permissionID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to remove grant: %w", err)
	}
	return nil
}

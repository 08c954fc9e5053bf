package models

import (
	"time"

	"tourbook/internal/shared/constants"
)

// RolePermissionModel rows are hard-deleted when a role's grant set is replaced.
type RolePermissionModel struct {
	ID           uint      `gorm:"primarykey"`
	RoleID       uint      `gorm:"not null;uniqueIndex:idx_role_permission"`
	PermissionID uint      `gorm:"not null;uniqueIndex:idx_role_permission;index"`
	IsActive     bool      `gorm:"not null"`
	GrantedBy    string    `gorm:"size:64"`
	GrantedAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

func (RolePermissionModel) TableName() string {
	return constants.TableRolePermissions
}

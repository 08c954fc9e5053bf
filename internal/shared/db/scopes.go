// Package db provides transaction management and query scopes shared by the gorm repositories.
package db

import (
	"gorm.io/gorm"
)

// Active filters rows whose is_active flag is set.
//
//	db.Model(&models.RoleModel{}).Scopes(db.Active()).Order("level ASC").Find(&roles)
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// ActiveWithAlias is Active for joined queries where the column must be qualified.
//
//	db.Table("role_permissions rp").Scopes(db.ActiveWithAlias("rp"), db.ActiveWithAlias("r"))
func ActiveWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias+".is_active = ?", true)
	}
}

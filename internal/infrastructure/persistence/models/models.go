// Package models holds the gorm models of the permission matrix tables.
package models

// All returns every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&RoleModel{},
		&PermissionModel{},
		&RolePermissionModel{},
	}
}

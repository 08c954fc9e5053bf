package http

import (
	"gorm.io/gorm"

	"tourbook/internal/domain/permission"
	"tourbook/internal/infrastructure/repository"
)

type repositories struct {
	roleRepo       permission.RoleRepository
	permissionRepo permission.PermissionRepository
	grantRepo      permission.GrantRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		roleRepo:       repository.NewRoleRepository(db),
		permissionRepo: repository.NewPermissionRepository(db),
		grantRepo:      repository.NewGrantRepository(db),
	}
}

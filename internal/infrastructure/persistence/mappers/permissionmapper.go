package mappers

import (
	"fmt"

	"tourbook/internal/domain/permission"
	"tourbook/internal/infrastructure/persistence/models"
)

// PermissionMapper handles conversion between the permission domain entities and gorm models.
type PermissionMapper interface {
	RoleToModel(role *permission.Role) *models.RoleModel
	RoleToDomain(model *models.RoleModel) (*permission.Role, error)
	RolesToDomain(models []models.RoleModel) ([]*permission.Role, error)

	PermissionToModel(p *permission.Permission) *models.PermissionModel
	PermissionToDomain(model *models.PermissionModel) (*permission.Permission, error)
	PermissionsToDomain(models []models.PermissionModel) ([]*permission.Permission, error)

	GrantToModel(g *permission.Grant) *models.RolePermissionModel
	GrantsToDomain(models []models.RolePermissionModel) []*permission.Grant
}

type PermissionMapperImpl struct{}

func NewPermissionMapper() PermissionMapper {
	return &PermissionMapperImpl{}
}

func (m *PermissionMapperImpl) RoleToModel(role *permission.Role) *models.RoleModel {
	return &models.RoleModel{
		ID:          role.ID(),
		Name:        role.Name(),
		Level:       role.Level(),
		Description: role.Description(),
		IsActive:    role.IsActive(),
		CreatedAt:   role.CreatedAt(),
		UpdatedAt:   role.UpdatedAt(),
	}
}

func (m *PermissionMapperImpl) RoleToDomain(model *models.RoleModel) (*permission.Role, error) {
	if model == nil {
		return nil, nil
	}
	role, err := permission.ReconstructRole(model.ID, model.Name, model.Level, model.Description,
		model.IsActive, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to map role %d: %w", model.ID, err)
	}
	return role, nil
}

func (m *PermissionMapperImpl) RolesToDomain(rows []models.RoleModel) ([]*permission.Role, error) {
	roles := make([]*permission.Role, 0, len(rows))
	for i := range rows {
		role, err := m.RoleToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (m *PermissionMapperImpl) PermissionToModel(p *permission.Permission) *models.PermissionModel {
	return &models.PermissionModel{
		ID:          p.ID(),
		Name:        p.Name().String(),
		Description: p.Description(),
		Module:      p.Module().String(),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func (m *PermissionMapperImpl) PermissionToDomain(model *models.PermissionModel) (*permission.Permission, error) {
	if model == nil {
		return nil, nil
	}
	p, err := permission.ReconstructPermission(model.ID, model.Name, model.Module, model.Description,
		model.IsActive, model.CreatedAt, model.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to map permission %d: %w", model.ID, err)
	}
	return p, nil
}

func (m *PermissionMapperImpl) PermissionsToDomain(rows []models.PermissionModel) ([]*permission.Permission, error) {
	perms := make([]*permission.Permission, 0, len(rows))
	for i := range rows {
		p, err := m.PermissionToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, nil
}

func (m *PermissionMapperImpl) GrantToModel(g *permission.Grant) *models.RolePermissionModel {
	return &models.RolePermissionModel{
		RoleID:       g.RoleID(),
		PermissionID: g.PermissionID(),
		IsActive:     g.IsActive(),
		GrantedBy:    g.GrantedBy(),
		GrantedAt:    g.GrantedAt(),
	}
}

func (m *PermissionMapperImpl) GrantsToDomain(rows []models.RolePermissionModel) []*permission.Grant {
	grants := make([]*permission.Grant, 0, len(rows))
	for _, row := range rows {
		grants = append(grants, permission.ReconstructGrant(row.RoleID, row.PermissionID, row.IsActive, row.GrantedBy, row.GrantedAt))
	}
	return grants
}

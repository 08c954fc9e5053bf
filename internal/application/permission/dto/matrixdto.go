package dto

import (
	"time"

	"tourbook/internal/domain/permission"
)

type RoleDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	Description string    `json:"description,omitempty"`
	Tier        string    `json:"tier"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PermissionDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Module      string `json:"module"`
	Description string `json:"description,omitempty"`
}

// MatrixResponse is the checkbox grid view model.
type MatrixResponse struct {
	Roles               []RoleDTO                  `json:"roles"`
	Permissions         []PermissionDTO            `json:"permissions"`
	PermissionsByModule map[string][]PermissionDTO `json:"permissionsByModule"`
	ModuleOrder         []string                   `json:"moduleOrder"`
	Mapping             map[uint][]uint            `json:"mapping"`
	Matrix              map[uint]map[uint]bool     `json:"matrix"`
}

// MatrixData is the compact matrix echoed back after a bulk update.
type MatrixData struct {
	Roles       []RoleDTO       `json:"roles"`
	Permissions []PermissionDTO `json:"permissions"`
	Mapping     map[uint][]uint `json:"mapping"`
}

func ToRoleDTO(r *permission.Role) RoleDTO {
	return RoleDTO{
		ID:          r.ID(),
		Name:        r.Name(),
		Level:       r.Level(),
		Description: r.Description(),
		Tier:        r.Tier().String(),
		IsActive:    r.IsActive(),
		CreatedAt:   r.CreatedAt(),
	}
}

func ToPermissionDTO(p *permission.Permission) PermissionDTO {
	return PermissionDTO{
		ID:          p.ID(),
		Name:        p.Name().String(),
		Module:      p.Module().String(),
		Description: p.Description(),
	}
}

func toRoleDTOs(roles []*permission.Role) []RoleDTO {
	out := make([]RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, ToRoleDTO(r))
	}
	return out
}

func toPermissionDTOs(perms []*permission.Permission) []PermissionDTO {
	out := make([]PermissionDTO, 0, len(perms))
	for _, p := range perms {
		out = append(out, ToPermissionDTO(p))
	}
	return out
}

func ToMatrixResponse(m *permission.Matrix) *MatrixResponse {
	byModule := make(map[string][]PermissionDTO, len(m.PermissionsByModule))
	order := make([]string, 0, len(m.ModuleOrder))
	for _, module := range m.ModuleOrder {
		order = append(order, module.String())
		byModule[module.String()] = toPermissionDTOs(m.PermissionsByModule[module])
	}

	return &MatrixResponse{
		Roles:               toRoleDTOs(m.Roles),
		Permissions:         toPermissionDTOs(m.Permissions),
		PermissionsByModule: byModule,
		ModuleOrder:         order,
		Mapping:             m.Mapping,
		Matrix:              m.Cells,
	}
}

func ToMatrixData(m *permission.Matrix) *MatrixData {
	return &MatrixData{
		Roles:       toRoleDTOs(m.Roles),
		Permissions: toPermissionDTOs(m.Permissions),
		Mapping:     m.Mapping,
	}
}

package permission

import (
	"fmt"
	"time"

	vo "tourbook/internal/domain/permission/value_objects"
)

type Permission struct {
	id          uint
	name        vo.PermissionName
	description string
	module      vo.Module
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPermission normalizes name and module to upper case. The module must be known.
func NewPermission(name, module, description string) (*Permission, error) {
	n, err := vo.NewPermissionName(name)
	if err != nil {
		return nil, err
	}
	m, err := vo.NewModule(module)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Permission{
		name:        n,
		description: description,
		module:      m,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPermission rebuilds a stored permission. Legacy modules are kept
// as stored; the matrix builder skips modules it does not order.
func ReconstructPermission(id uint, name, module, description string, isActive bool, createdAt, updatedAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}

	return &Permission{
		id:          id,
		name:        vo.PermissionName(name),
		description: description,
		module:      vo.Module(module),
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Permission) ID() uint {
	return p.id
}

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) Name() vo.PermissionName {
	return p.name
}

func (p *Permission) Module() vo.Module {
	return p.module
}

func (p *Permission) Description() string {
	return p.description
}

func (p *Permission) IsActive() bool {
	return p.isActive
}

func (p *Permission) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Permission) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Permission) UpdateDescription(description string) {
	p.description = description
	p.updatedAt = time.Now()
}

// Deactivate hides the permission from the matrix. Permissions are never hard-deleted.
func (p *Permission) Deactivate() {
	if !p.isActive {
		return
	}
	p.isActive = false
	p.updatedAt = time.Now()
}

func (p *Permission) Activate() {
	if p.isActive {
		return
	}
	p.isActive = true
	p.updatedAt = time.Now()
}

package permission

import (
	"fmt"
	"strings"
	"time"

	"tourbook/internal/shared/authorization"
)

const maxRoleNameLength = 50

type Role struct {
	id          uint
	name        string
	level       int
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRole creates an active role. Lower levels are more senior; level 1 is the top.
func NewRole(name string, level int, description string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if len(name) > maxRoleNameLength {
		return nil, fmt.Errorf("role name too long (max %d characters)", maxRoleNameLength)
	}
	if level < 1 {
		return nil, fmt.Errorf("role level must be at least 1")
	}

	now := time.Now()
	return &Role{
		name:        name,
		level:       level,
		description: description,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRole(id uint, name string, level int, description string, isActive bool, createdAt, updatedAt time.Time) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}

	return &Role{
		id:          id,
		name:        name,
		level:       level,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *Role) ID() uint {
	return r.id
}

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Role) Name() string {
	return r.name
}

func (r *Role) Level() int {
	return r.level
}

func (r *Role) Description() string {
	return r.description
}

func (r *Role) IsActive() bool {
	return r.isActive
}

func (r *Role) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Role) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Role) Tier() authorization.RoleTier {
	return authorization.ParseRoleTier(r.name)
}

// IsProtected reports whether the role's grants must never be rewritten.
func (r *Role) IsProtected() bool {
	return r.Tier().IsProtected()
}

func (r *Role) Deactivate() error {
	if r.IsProtected() {
		return fmt.Errorf("cannot deactivate protected role %q", r.name)
	}
	if !r.isActive {
		return nil
	}
	r.isActive = false
	r.updatedAt = time.Now()
	return nil
}

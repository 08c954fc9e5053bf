package permission

import "context"

// Repositories return nil, nil when a single entity lookup finds nothing.

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	// ListActive returns active roles sorted by level ascending.
	ListActive(ctx context.Context) ([]*Role, error)
	// ListAll includes inactive roles, sorted by level ascending.
	ListAll(ctx context.Context) ([]*Role, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	GetByID(ctx context.Context, id uint) (*Permission, error)
	GetByName(ctx context.Context, name string) (*Permission, error)
	ListActive(ctx context.Context) ([]*Permission, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type GrantRepository interface {
	// ListActive returns effective grants: active rows whose role and
	// permission are both active.
	ListActive(ctx context.Context) ([]*Grant, error)
	ListActiveByRole(ctx context.Context, roleID uint) ([]*Grant, error)
	DeleteByRole(ctx context.Context, roleID uint) error
	// InsertBatch inserts all grants or none.
	InsertBatch(ctx context.Context, grants []*Grant) error
	// ReplaceForRole deletes every grant of roleID and inserts grants in one transaction.
	ReplaceForRole(ctx context.Context, roleID uint, grants []*Grant) error
	// Add inserts a single grant. It is a no-op when the pair already exists.
	Add(ctx context.Context, grant *Grant) error
	Remove(ctx context.Context, roleID, permissionID uint) error
}

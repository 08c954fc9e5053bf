package usecases

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/logger"
)

type mockRoleRepository struct {
	CreateFunc     func(ctx context.Context, role *permission.Role) error
	GetByIDFunc    func(ctx context.Context, id uint) (*permission.Role, error)
	GetByNameFunc  func(ctx context.Context, name string) (*permission.Role, error)
	ListActiveFunc func(ctx context.Context) ([]*permission.Role, error)
	ListAllFunc    func(ctx context.Context) ([]*permission.Role, error)
}

func (m *mockRoleRepository) Create(ctx context.Context, role *permission.Role) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, role)
	}
	return nil
}

func (m *mockRoleRepository) GetByID(ctx context.Context, id uint) (*permission.Role, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRoleRepository) GetByName(ctx context.Context, name string) (*permission.Role, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockRoleRepository) ListActive(ctx context.Context) ([]*permission.Role, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockRoleRepository) ListAll(ctx context.Context) ([]*permission.Role, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

type mockPermissionRepository struct {
	CreateFunc     func(ctx context.Context, p *permission.Permission) error
	GetByIDFunc    func(ctx context.Context, id uint) (*permission.Permission, error)
	GetByNameFunc  func(ctx context.Context, name string) (*permission.Permission, error)
	ListActiveFunc func(ctx context.Context) ([]*permission.Permission, error)
	SetActiveFunc  func(ctx context.Context, id uint, active bool) error
}

func (m *mockPermissionRepository) Create(ctx context.Context, p *permission.Permission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPermissionRepository) GetByID(ctx context.Context, id uint) (*permission.Permission, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPermissionRepository) GetByName(ctx context.Context, name string) (*permission.Permission, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockPermissionRepository) ListActive(ctx context.Context) ([]*permission.Permission, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockPermissionRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil
}

type mockGrantRepository struct {
	ListActiveFunc       func(ctx context.Context) ([]*permission.Grant, error)
	ListActiveByRoleFunc func(ctx context.Context, roleID uint) ([]*permission.Grant, error)
	DeleteByRoleFunc     func(ctx context.Context, roleID uint) error
	InsertBatchFunc      func(ctx context.Context, grants []*permission.Grant) error
	ReplaceForRoleFunc   func(ctx context.Context, roleID uint, grants []*permission.Grant) error
	AddFunc              func(ctx context.Context, grant *permission.Grant) error
	RemoveFunc           func(ctx context.Context, roleID, permissionID uint) error
}

func (m *mockGrantRepository) ListActive(ctx context.Context) ([]*permission.Grant, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockGrantRepository) ListActiveByRole(ctx context.Context, roleID uint) ([]*permission.Grant, error) {
	if m.ListActiveByRoleFunc != nil {
		return m.ListActiveByRoleFunc(ctx, roleID)
	}
	return nil, nil
}

func (m *mockGrantRepository) DeleteByRole(ctx context.Context, roleID uint) error {
	if m.DeleteByRoleFunc != nil {
		return m.DeleteByRoleFunc(ctx, roleID)
	}
	return nil
}

func (m *mockGrantRepository) InsertBatch(ctx context.Context, grants []*permission.Grant) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, grants)
	}
	return nil
}

func (m *mockGrantRepository) ReplaceForRole(ctx context.Context, roleID uint, grants []*permission.Grant) error {
	if m.ReplaceForRoleFunc != nil {
		return m.ReplaceForRoleFunc(ctx, roleID, grants)
	}
	return nil
}

func (m *mockGrantRepository) Add(ctx context.Context, grant *permission.Grant) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, grant)
	}
	return nil
}

func (m *mockGrantRepository) Remove(ctx context.Context, roleID, permissionID uint) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, roleID, permissionID)
	}
	return nil
}

type mockPolicySyncer struct {
	calls [][]uint
	err   error
}

func (m *mockPolicySyncer) SyncRoles(ctx context.Context, roleIDs []uint) error {
	m.calls = append(m.calls, slices.Clone(roleIDs))
	return m.err
}

type mockEventPublisher struct {
	events []permission.GrantsChangedEvent
	err    error
}

func (m *mockEventPublisher) PublishGrantsChanged(ctx context.Context, event permission.GrantsChangedEvent) error {
	m.events = append(m.events, event)
	return m.err
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)           {}
func (m *mockLogger) Info(msg string, args ...any)            {}
func (m *mockLogger) Warn(msg string, args ...any)            {}
func (m *mockLogger) Error(msg string, args ...any)           {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}

// grantStore is an in-memory grant table behind a mockGrantRepository.
type grantStore struct {
	rows     map[uint][]uint
	writes   int
	failRole uint
}

func newGrantStore(initial map[uint][]uint) *grantStore {
	rows := make(map[uint][]uint, len(initial))
	for roleID, ids := range initial {
		rows[roleID] = slices.Clone(ids)
	}
	return &grantStore{rows: rows}
}

func (s *grantStore) grants(roleID uint) []*permission.Grant {
	out := make([]*permission.Grant, 0, len(s.rows[roleID]))
	for _, pid := range s.rows[roleID] {
		out = append(out, permission.ReconstructGrant(roleID, pid, true, "seed", time.Time{}))
	}
	return out
}

func (s *grantStore) repo() *mockGrantRepository {
	return &mockGrantRepository{
		ListActiveFunc: func(ctx context.Context) ([]*permission.Grant, error) {
			roleIDs := make([]uint, 0, len(s.rows))
			for id := range s.rows {
				roleIDs = append(roleIDs, id)
			}
			slices.Sort(roleIDs)
			var out []*permission.Grant
			for _, id := range roleIDs {
				out = append(out, s.grants(id)...)
			}
			return out, nil
		},
		ListActiveByRoleFunc: func(ctx context.Context, roleID uint) ([]*permission.Grant, error) {
			return s.grants(roleID), nil
		},
		ReplaceForRoleFunc: func(ctx context.Context, roleID uint, grants []*permission.Grant) error {
			if roleID == s.failRole {
				return fmt.Errorf("failed to insert grants: UNIQUE constraint failed")
			}
			s.writes++
			ids := make([]uint, 0, len(grants))
			for _, g := range grants {
				ids = append(ids, g.PermissionID())
			}
			s.rows[roleID] = ids
			return nil
		},
		AddFunc: func(ctx context.Context, grant *permission.Grant) error {
			s.writes++
			if !slices.Contains(s.rows[grant.RoleID()], grant.PermissionID()) {
				s.rows[grant.RoleID()] = append(s.rows[grant.RoleID()], grant.PermissionID())
			}
			return nil
		},
		RemoveFunc: func(ctx context.Context, roleID, permissionID uint) error {
			s.writes++
			s.rows[roleID] = slices.DeleteFunc(s.rows[roleID], func(id uint) bool { return id == permissionID })
			return nil
		},
	}
}

func newTestRole(t *testing.T, id uint, name string, level int, active bool) *permission.Role {
	t.Helper()
	r, err := permission.ReconstructRole(id, name, level, "", active, time.Time{}, time.Time{})
	require.NoError(t, err)
	return r
}

func newTestPermission(t *testing.T, id uint, name, module string) *permission.Permission {
	t.Helper()
	p, err := permission.ReconstructPermission(id, name, module, "", true, time.Time{}, time.Time{})
	require.NoError(t, err)
	return p
}

func rolesByID(roles []*permission.Role) func(ctx context.Context, id uint) (*permission.Role, error) {
	return func(ctx context.Context, id uint) (*permission.Role, error) {
		for _, r := range roles {
			if r.ID() == id {
				return r, nil
			}
		}
		return nil, nil
	}
}

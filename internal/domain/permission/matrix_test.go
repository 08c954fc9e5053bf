package permission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "tourbook/internal/domain/permission/value_objects"
)

func testRole(t *testing.T, id uint, name string, level int, active bool) *Role {
	t.Helper()
	r, err := ReconstructRole(id, name, level, "", active, time.Time{}, time.Time{})
	require.NoError(t, err)
	return r
}

func testPermission(t *testing.T, id uint, name, module string) *Permission {
	t.Helper()
	p, err := ReconstructPermission(id, name, module, "", true, time.Time{}, time.Time{})
	require.NoError(t, err)
	return p
}

func grant(roleID, permissionID uint) *Grant {
	return ReconstructGrant(roleID, permissionID, true, "seed", time.Time{})
}

func permissionNames(perms []*Permission) []string {
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name().String())
	}
	return names
}

func TestBuildMatrix_ModuleAndActionOrder(t *testing.T) {
	perms := []*Permission{
		testPermission(t, 1, "CREATE_TOUR", "TOUR"),
		testPermission(t, 2, "DELETE_TOUR", "TOUR"),
		testPermission(t, 3, "READ_TOUR", "TOUR"),
		testPermission(t, 4, "UPDATE_TOUR", "TOUR"),
		testPermission(t, 5, "CREATE_CATEGORY", "CATEGORY"),
	}

	m := BuildMatrix(nil, perms, nil, DefaultOrdering())

	assert.Equal(t,
		[]string{"CREATE_TOUR", "READ_TOUR", "UPDATE_TOUR", "DELETE_TOUR", "CREATE_CATEGORY"},
		permissionNames(m.Permissions))
	assert.Equal(t, []vo.Module{vo.ModuleTour, vo.ModuleCategory}, m.ModuleOrder)
	assert.Len(t, m.PermissionsByModule[vo.ModuleTour], 4)
}

func TestBuildMatrix_UnrankedActionsKeepRelativeOrder(t *testing.T) {
	perms := []*Permission{
		testPermission(t, 1, "EXPORT_ORDER", "ORDER"),
		testPermission(t, 2, "READ_ORDER", "ORDER"),
		testPermission(t, 3, "APPROVE_ORDER", "ORDER"),
		testPermission(t, 4, "CREATE_ORDER", "ORDER"),
	}

	m := BuildMatrix(nil, perms, nil, DefaultOrdering())

	assert.Equal(t, []string{"CREATE_ORDER", "READ_ORDER", "EXPORT_ORDER", "APPROVE_ORDER"}, permissionNames(m.Permissions))
}

func TestBuildMatrix_SkipsUnknownModulesAndInactiveEntries(t *testing.T) {
	inactivePerm, err := ReconstructPermission(3, "READ_REVIEW", "REVIEW", "", false, time.Time{}, time.Time{})
	require.NoError(t, err)

	roles := []*Role{
		testRole(t, 1, "Admin", 2, true),
		testRole(t, 2, "Retired", 9, false),
	}
	perms := []*Permission{
		testPermission(t, 1, "READ_TOUR", "TOUR"),
		testPermission(t, 2, "READ_INVOICE", "INVOICE"),
		inactivePerm,
	}

	m := BuildMatrix(roles, perms, []*Grant{grant(1, 1), grant(1, 2), grant(2, 1)}, DefaultOrdering())

	require.Len(t, m.Roles, 1)
	assert.Equal(t, []string{"READ_TOUR"}, permissionNames(m.Permissions))
	assert.Equal(t, map[uint][]uint{1: {1}}, m.Mapping)
	assert.NotContains(t, m.Cells, uint(2))
}

func TestBuildMatrix_DanglingGrantsIgnored(t *testing.T) {
	roles := []*Role{testRole(t, 1, "Manager", 3, true)}
	perms := []*Permission{testPermission(t, 10, "READ_TOUR", "TOUR")}

	m := BuildMatrix(roles, perms, []*Grant{grant(1, 10), grant(1, 99), grant(42, 10)}, DefaultOrdering())

	assert.True(t, m.Granted(1, 10))
	assert.False(t, m.Granted(1, 99))
	assert.False(t, m.Granted(42, 10))
	assert.Equal(t, []uint{10}, m.Mapping[1])
}

func TestBuildMatrix_DenseCellsAndMappingConsistency(t *testing.T) {
	roles := []*Role{
		testRole(t, 3, "Viewer", 4, true),
		testRole(t, 1, "Super Admin", 1, true),
		testRole(t, 2, "Manager", 3, true),
	}
	perms := []*Permission{
		testPermission(t, 11, "UPDATE_TOUR", "TOUR"),
		testPermission(t, 12, "READ_TOUR", "TOUR"),
		testPermission(t, 13, "READ_ORDER", "ORDER"),
	}
	grants := []*Grant{grant(1, 11), grant(1, 12), grant(1, 13), grant(2, 13), grant(2, 12), grant(3, 12)}

	m := BuildMatrix(roles, perms, grants, DefaultOrdering())

	assert.Equal(t, []uint{1, 2, 3}, []uint{m.Roles[0].ID(), m.Roles[1].ID(), m.Roles[2].ID()})
	for _, r := range m.Roles {
		require.Len(t, m.Cells[r.ID()], len(m.Permissions))

		var fromCells []uint
		for _, p := range m.Permissions {
			if m.Cells[r.ID()][p.ID()] {
				fromCells = append(fromCells, p.ID())
			}
		}
		assert.Equal(t, fromCells, m.Mapping[r.ID()], "role %d", r.ID())
	}
	assert.Equal(t, []uint{12, 13}, m.Mapping[2])
	assert.Equal(t, []uint{12}, m.Mapping[3])
	assert.Equal(t, []uint{12, 11, 13}, m.Mapping[1])
}

func TestBuildMatrix_CustomOrdering(t *testing.T) {
	ordering := MatrixOrdering{
		Modules: []vo.Module{vo.ModuleOrder, vo.ModuleTour},
		Actions: []string{"DELETE", "READ"},
	}
	perms := []*Permission{
		testPermission(t, 1, "READ_TOUR", "TOUR"),
		testPermission(t, 2, "READ_ORDER", "ORDER"),
		testPermission(t, 3, "DELETE_ORDER", "ORDER"),
		testPermission(t, 4, "CREATE_CATEGORY", "CATEGORY"),
	}

	m := BuildMatrix(nil, perms, nil, ordering)

	assert.Equal(t, []string{"DELETE_ORDER", "READ_ORDER", "READ_TOUR"}, permissionNames(m.Permissions))
	assert.Equal(t, []vo.Module{vo.ModuleOrder, vo.ModuleTour}, m.ModuleOrder)
}

func TestBuildMatrix_EmptyState(t *testing.T) {
	m := BuildMatrix(nil, nil, nil, DefaultOrdering())

	assert.Empty(t, m.Roles)
	assert.Empty(t, m.Permissions)
	assert.Empty(t, m.ModuleOrder)
	assert.Empty(t, m.Mapping)
}

func TestMatrixOrdering_ActionPriority(t *testing.T) {
	o := DefaultOrdering()
	assert.Equal(t, 0, o.ActionPriority("CREATE_TOUR"))
	assert.Equal(t, 3, o.ActionPriority("DELETE_USERS"))
	assert.Equal(t, UnrankedPriority, o.ActionPriority("EXPORT_ORDER"))
}

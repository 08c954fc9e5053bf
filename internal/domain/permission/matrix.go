package permission

import (
	"slices"
	"sort"

	vo "tourbook/internal/domain/permission/value_objects"
)

// Matrix is the dense role by permission grid plus its compact form.
type Matrix struct {
	// Roles is sorted by level ascending.
	Roles []*Role
	// Permissions is grouped by module in ordering order, then by action priority.
	Permissions         []*Permission
	PermissionsByModule map[vo.Module][]*Permission
	// ModuleOrder lists only modules that have at least one permission.
	ModuleOrder []vo.Module
	Cells       map[uint]map[uint]bool
	// Mapping holds the granted permission IDs per role in Permissions order.
	Mapping map[uint][]uint
}

// BuildMatrix lays out the active roles and permissions and marks every
// grant whose role and permission are both present. Grants referencing
// anything else are ignored. Permissions in modules the ordering does not
// know are left out.
func BuildMatrix(roles []*Role, permissions []*Permission, grants []*Grant, ordering MatrixOrdering) *Matrix {
	sortedRoles := slices.DeleteFunc(slices.Clone(roles), func(r *Role) bool {
		return !r.IsActive()
	})
	sort.SliceStable(sortedRoles, func(i, j int) bool {
		return sortedRoles[i].Level() < sortedRoles[j].Level()
	})

	buckets := make(map[vo.Module][]*Permission, len(ordering.Modules))
	for _, p := range permissions {
		if !p.IsActive() || !ordering.HasModule(p.Module()) {
			continue
		}
		buckets[p.Module()] = append(buckets[p.Module()], p)
	}

	m := &Matrix{
		Roles:               sortedRoles,
		Permissions:         make([]*Permission, 0, len(permissions)),
		PermissionsByModule: make(map[vo.Module][]*Permission, len(buckets)),
		ModuleOrder:         make([]vo.Module, 0, len(buckets)),
		Cells:               make(map[uint]map[uint]bool, len(sortedRoles)),
		Mapping:             make(map[uint][]uint, len(sortedRoles)),
	}

	for _, module := range ordering.Modules {
		bucket := buckets[module]
		if len(bucket) == 0 {
			continue
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return ordering.ActionPriority(bucket[i].Name()) < ordering.ActionPriority(bucket[j].Name())
		})
		m.ModuleOrder = append(m.ModuleOrder, module)
		m.PermissionsByModule[module] = bucket
		m.Permissions = append(m.Permissions, bucket...)
	}

	for _, r := range sortedRoles {
		row := make(map[uint]bool, len(m.Permissions))
		for _, p := range m.Permissions {
			row[p.ID()] = false
		}
		m.Cells[r.ID()] = row
	}

	for _, g := range grants {
		row, ok := m.Cells[g.RoleID()]
		if !ok {
			continue
		}
		if _, ok := row[g.PermissionID()]; !ok {
			continue
		}
		row[g.PermissionID()] = true
	}

	for _, r := range sortedRoles {
		granted := make([]uint, 0)
		for _, p := range m.Permissions {
			if m.Cells[r.ID()][p.ID()] {
				granted = append(granted, p.ID())
			}
		}
		m.Mapping[r.ID()] = granted
	}

	return m
}

// Granted reports whether the cell for roleID and permissionID is set.
func (m *Matrix) Granted(roleID, permissionID uint) bool {
	return m.Cells[roleID][permissionID]
}

package permission

import (
	vo "tourbook/internal/domain/permission/value_objects"
)

// UnrankedPriority is the action priority of names matching none of the ordered actions.
const UnrankedPriority = 999

// MatrixOrdering controls how the matrix lays out permissions: modules in
// Modules order, and inside a module by the first matching action prefix.
type MatrixOrdering struct {
	Modules []vo.Module
	Actions []string
}

// DefaultOrdering is the back-office display order.
func DefaultOrdering() MatrixOrdering {
	modules := make([]vo.Module, len(vo.KnownModules))
	copy(modules, vo.KnownModules)
	return MatrixOrdering{
		Modules: modules,
		Actions: []string{"CREATE", "READ", "UPDATE", "DELETE"},
	}
}

// ActionPriority returns the index of the first action prefixing name, or UnrankedPriority.
func (o MatrixOrdering) ActionPriority(name vo.PermissionName) int {
	for i, action := range o.Actions {
		if name.HasAction(action) {
			return i
		}
	}
	return UnrankedPriority
}

func (o MatrixOrdering) HasModule(m vo.Module) bool {
	for _, known := range o.Modules {
		if known == m {
			return true
		}
	}
	return false
}

package value_objects

import "fmt"

type Module string

const (
	ModuleTour           Module = "TOUR"
	ModuleCategory       Module = "CATEGORY"
	ModuleHomeSection    Module = "HOME_SECTION"
	ModuleDeparture      Module = "DEPARTURE"
	ModuleDestination    Module = "DESTINATION"
	ModuleTransportation Module = "TRANSPORTATION"
	ModuleOrder          Module = "ORDER"
	ModuleReview         Module = "REVIEW"
	ModuleRoles          Module = "ROLES"
	ModulePermissions    Module = "PERMISSIONS"
	ModuleUsers          Module = "USERS"
)

// KnownModules lists every module in display order.
var KnownModules = []Module{
	ModuleTour,
	ModuleCategory,
	ModuleHomeSection,
	ModuleDeparture,
	ModuleDestination,
	ModuleTransportation,
	ModuleOrder,
	ModuleReview,
	ModuleRoles,
	ModulePermissions,
	ModuleUsers,
}

// NewModule normalizes s and requires it to be a known module.
func NewModule(s string) (Module, error) {
	code := NormalizeCode(s)
	if err := validateCode("module", code); err != nil {
		return "", err
	}
	m := Module(code)
	for _, known := range KnownModules {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module: %s", code)
}

func (m Module) String() string {
	return string(m)
}

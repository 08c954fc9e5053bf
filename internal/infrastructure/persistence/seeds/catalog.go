package seeds

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	vo "tourbook/internal/domain/permission/value_objects"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const allModules = "*"

type Catalog struct {
	Actions []string      `yaml:"actions"`
	Modules []ModuleEntry `yaml:"modules"`
	Roles   []RoleEntry   `yaml:"roles"`
}

type ModuleEntry struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// RoleEntry grants every catalog permission whose module is in Modules and
// whose action is in Actions (all actions when empty), minus Exclude.
type RoleEntry struct {
	Name        string   `yaml:"name"`
	Level       int      `yaml:"level"`
	Description string   `yaml:"description"`
	Modules     []string `yaml:"modules"`
	Actions     []string `yaml:"actions"`
	Exclude     []string `yaml:"exclude"`
}

// PermissionSeed is one expanded catalog permission.
type PermissionSeed struct {
	Name        string
	Module      string
	Description string
}

// DefaultCatalog parses the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse permission catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Actions) == 0 {
		return fmt.Errorf("permission catalog has no actions")
	}
	for _, m := range c.Modules {
		if _, err := vo.NewModule(m.Code); err != nil {
			return fmt.Errorf("permission catalog: %w", err)
		}
	}

	seen := make(map[string]bool, len(c.Roles))
	for _, r := range c.Roles {
		if r.Name == "" {
			return fmt.Errorf("permission catalog: role without name")
		}
		if seen[r.Name] {
			return fmt.Errorf("permission catalog: duplicate role %q", r.Name)
		}
		seen[r.Name] = true
		if r.Level < 1 {
			return fmt.Errorf("permission catalog: role %q has invalid level %d", r.Name, r.Level)
		}
	}
	return nil
}

// Permissions expands every module with every action, in catalog order.
func (c *Catalog) Permissions() []PermissionSeed {
	out := make([]PermissionSeed, 0, len(c.Modules)*len(c.Actions))
	for _, m := range c.Modules {
		module := vo.NormalizeCode(m.Code)
		for _, action := range c.Actions {
			action = vo.NormalizeCode(action)
			out = append(out, PermissionSeed{
				Name:        action + "_" + module,
				Module:      module,
				Description: fmt.Sprintf("%s %s", actionVerb(action), m.Label),
			})
		}
	}
	return out
}

// GrantsFor returns the permission names the role receives by default.
func (c *Catalog) GrantsFor(role RoleEntry) []string {
	modules := toSet(role.Modules)
	actions := toSet(role.Actions)
	excluded := toSet(role.Exclude)

	var names []string
	for _, p := range c.Permissions() {
		if !modules[allModules] && !modules[p.Module] {
			continue
		}
		if len(actions) > 0 && !actions[actionOf(p)] {
			continue
		}
		if excluded[p.Name] {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

func actionOf(p PermissionSeed) string {
	return p.Name[:len(p.Name)-len(p.Module)-1]
}

func actionVerb(action string) string {
	switch action {
	case "CREATE":
		return "Create"
	case "READ":
		return "View"
	case "UPDATE":
		return "Update"
	case "DELETE":
		return "Delete"
	default:
		return action
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v == allModules {
			set[v] = true
			continue
		}
		set[vo.NormalizeCode(v)] = true
	}
	return set
}

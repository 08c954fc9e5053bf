package permission

import (
	"fmt"
	"slices"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/logger"
)

var _ permission.PolicyEnforcer = (*Enforcer)(nil)

// policyModel grants a role a permission by exact name: p, <role name>, <permission name>.
const policyModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer stores policies in the casbin_rule table of db. The adapter
// saves every policy change as it happens.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(roleName, permissionName string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(roleName, permissionName)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", roleName, "permission", permissionName)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

func (e *Enforcer) ReplaceRolePolicies(roleName string, permissionNames []string) error {
	names := slices.Clone(permissionNames)
	slices.Sort(names)
	names = slices.Compact(names)

	rules := make([][]string, 0, len(names))
	for _, name := range names {
		rules = append(rules, []string{roleName, name})
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemoveFilteredPolicy(0, roleName); err != nil {
		e.logger.Errorw("failed to remove role policies", "error", err, "role", roleName)
		return fmt.Errorf("failed to remove policies of %s: %w", roleName, err)
	}

	if len(rules) == 0 {
		return nil
	}

	if _, err := e.enforcer.AddPolicies(rules); err != nil {
		e.logger.Errorw("failed to add role policies", "error", err, "role", roleName)
		return fmt.Errorf("failed to add policies of %s: %w", roleName, err)
	}

	return nil
}

// Policies returns the permission names currently held by roleName.
func (e *Enforcer) Policies(roleName string) ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rules, err := e.enforcer.GetFilteredPolicy(0, roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to read policies of %s: %w", roleName, err)
	}

	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		names = append(names, rule[1])
	}
	slices.Sort(names)
	return names, nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded")
	return nil
}

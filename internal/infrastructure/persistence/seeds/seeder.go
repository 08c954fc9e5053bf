package seeds

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"tourbook/internal/infrastructure/persistence/models"
)

const seedActor = "seed"

// Result counts the rows created by a seeding run.
type Result struct {
	Permissions int
	Roles       int
	Grants      int
}

// SeedPermissionCatalog inserts the catalog's permissions, roles and default
// grants that do not exist yet. Existing rows are never modified, so
// re-running it keeps any grants changed through the matrix.
func SeedPermissionCatalog(db *gorm.DB, catalog *Catalog) (*Result, error) {
	result := &Result{}
	now := time.Now().UTC()

	err := db.Transaction(func(tx *gorm.DB) error {
		permIDs := make(map[string]uint)
		for _, p := range catalog.Permissions() {
			m := models.PermissionModel{}
			res := tx.Where(models.PermissionModel{Name: p.Name}).
				Attrs(models.PermissionModel{Module: p.Module, Description: p.Description, IsActive: true}).
				FirstOrCreate(&m)
			if res.Error != nil {
				return fmt.Errorf("failed to seed permission %s: %w", p.Name, res.Error)
			}
			result.Permissions += int(res.RowsAffected)
			permIDs[p.Name] = m.ID
		}

		for _, r := range catalog.Roles {
			role := models.RoleModel{}
			res := tx.Where(models.RoleModel{Name: r.Name}).
				Attrs(models.RoleModel{Level: r.Level, Description: r.Description, IsActive: true}).
				FirstOrCreate(&role)
			if res.Error != nil {
				return fmt.Errorf("failed to seed role %s: %w", r.Name, res.Error)
			}
			result.Roles += int(res.RowsAffected)

			// grants are only seeded for roles created in this run
			if res.RowsAffected == 0 {
				continue
			}

			for _, name := range catalog.GrantsFor(r) {
				grant := models.RolePermissionModel{}
				res := tx.Where(models.RolePermissionModel{RoleID: role.ID, PermissionID: permIDs[name]}).
					Attrs(models.RolePermissionModel{IsActive: true, GrantedBy: seedActor, GrantedAt: now}).
					FirstOrCreate(&grant)
				if res.Error != nil {
					return fmt.Errorf("failed to seed grant %s for %s: %w", name, r.Name, res.Error)
				}
				result.Grants += int(res.RowsAffected)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tourbook/internal/domain/permission"
	"tourbook/internal/infrastructure/persistence/models"
	"tourbook/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection would otherwise get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type fixture struct {
	roles map[string]uint
	perms map[string]uint
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	roles := []models.RoleModel{
		{Name: "Super Admin", Level: 1, IsActive: true},
		{Name: "Manager", Level: 3, IsActive: true},
		{Name: "Admin", Level: 2, IsActive: true},
		{Name: "Retired", Level: 9, IsActive: false},
	}
	require.NoError(t, db.Create(&roles).Error)

	perms := []models.PermissionModel{
		{Name: "READ_TOUR", Module: "TOUR", IsActive: true},
		{Name: "UPDATE_TOUR", Module: "TOUR", IsActive: true},
		{Name: "CREATE_TOUR", Module: "TOUR", IsActive: true},
		{Name: "READ_LEGACY", Module: "TOUR", IsActive: false},
	}
	require.NoError(t, db.Create(&perms).Error)

	f := fixture{roles: map[string]uint{}, perms: map[string]uint{}}
	for _, r := range roles {
		f.roles[r.Name] = r.ID
	}
	for _, p := range perms {
		f.perms[p.Name] = p.ID
	}
	return f
}

func grantsOf(t *testing.T, roleID uint, permIDs ...uint) []*permission.Grant {
	grants, err := permission.NewGrants(roleID, permIDs, "user-1", time.Now())
	require.NoError(t, err)
	return grants
}

func permissionIDs(grants []*permission.Grant) []uint {
	ids := make([]uint, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.PermissionID())
	}
	return ids
}

func TestRoleRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	f := seedFixture(t, db)
	repo := NewRoleRepository(db)

	t.Run("ListActive sorted by level", func(t *testing.T) {
		roles, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 3)
		assert.Equal(t, "Super Admin", roles[0].Name())
		assert.Equal(t, "Admin", roles[1].Name())
		assert.Equal(t, "Manager", roles[2].Name())
	})

	t.Run("ListAll includes inactive", func(t *testing.T) {
		roles, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, roles, 4)
		assert.Equal(t, "Retired", roles[3].Name())
		assert.False(t, roles[3].IsActive())
	})

	t.Run("GetByID and GetByName", func(t *testing.T) {
		role, err := repo.GetByID(ctx, f.roles["Manager"])
		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, 3, role.Level())

		role, err = repo.GetByName(ctx, "Admin")
		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, f.roles["Admin"], role.ID())

		missing, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Create rejects duplicate name", func(t *testing.T) {
		role, err := permission.NewRole("Tour Guide", 5, "guides")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, role))
		assert.NotZero(t, role.ID())

		dup, err := permission.NewRole("Tour Guide", 6, "")
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestPermissionRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	f := seedFixture(t, db)
	repo := NewPermissionRepository(db)

	t.Run("ListActive skips inactive", func(t *testing.T) {
		perms, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, perms, 3)
	})

	t.Run("Create normalizes and rejects duplicates", func(t *testing.T) {
		p, err := permission.NewPermission("delete tour", "tour", "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, p))

		stored, err := repo.GetByName(ctx, "DELETE_TOUR")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, p.ID(), stored.ID())

		dup, err := permission.NewPermission("DELETE_TOUR", "TOUR", "")
		require.NoError(t, err)
		assert.True(t, errors.IsConflictError(repo.Create(ctx, dup)))
	})

	t.Run("SetActive", func(t *testing.T) {
		require.NoError(t, repo.SetActive(ctx, f.perms["READ_TOUR"], false))
		p, err := repo.GetByID(ctx, f.perms["READ_TOUR"])
		require.NoError(t, err)
		assert.False(t, p.IsActive())

		require.NoError(t, repo.SetActive(ctx, f.perms["READ_TOUR"], true))
		require.NoError(t, repo.SetActive(ctx, f.perms["READ_TOUR"], true))

		assert.True(t, errors.IsNotFoundError(repo.SetActive(ctx, 999, true)))
	})
}

func TestGrantRepository_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("ListActive returns only effective grants", func(t *testing.T) {
		db := setupTestDB(t)
		f := seedFixture(t, db)
		repo := NewGrantRepository(db)

		manager := f.roles["Manager"]
		require.NoError(t, repo.InsertBatch(ctx, grantsOf(t, manager, f.perms["READ_TOUR"], f.perms["READ_LEGACY"])))
		require.NoError(t, repo.InsertBatch(ctx, grantsOf(t, f.roles["Retired"], f.perms["READ_TOUR"])))
		require.NoError(t, db.Create(&models.RolePermissionModel{
			RoleID: manager, PermissionID: f.perms["UPDATE_TOUR"], IsActive: false, GrantedAt: time.Now(),
		}).Error)

		grants, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, grants, 1)
		assert.Equal(t, manager, grants[0].RoleID())
		assert.Equal(t, f.perms["READ_TOUR"], grants[0].PermissionID())
		assert.Equal(t, "user-1", grants[0].GrantedBy())
	})

	t.Run("ReplaceForRole swaps the whole set", func(t *testing.T) {
		db := setupTestDB(t)
		f := seedFixture(t, db)
		repo := NewGrantRepository(db)
		manager, admin := f.roles["Manager"], f.roles["Admin"]

		require.NoError(t, repo.InsertBatch(ctx, grantsOf(t, manager, f.perms["READ_TOUR"], f.perms["UPDATE_TOUR"])))
		require.NoError(t, repo.InsertBatch(ctx, grantsOf(t, admin, f.perms["READ_TOUR"])))

		require.NoError(t, repo.ReplaceForRole(ctx, manager, grantsOf(t, manager, f.perms["CREATE_TOUR"], f.perms["READ_TOUR"])))

		grants, err := repo.ListActiveByRole(ctx, manager)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{f.perms["READ_TOUR"], f.perms["CREATE_TOUR"]}, permissionIDs(grants))

		adminGrants, err := repo.ListActiveByRole(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, []uint{f.perms["READ_TOUR"]}, permissionIDs(adminGrants))
	})

	t.Run("ReplaceForRole with empty set clears the role", func(t *testing.T) {
		db := setupTestDB(t)
		f := seedFixture(t, db)
		repo := NewGrantRepository(db)
		manager := f.roles["Manager"]

		require.NoError(t, repo.InsertBatch(ctx, grantsOf(t, manager, f.perms["READ_TOUR"])))
		require.NoError(t, repo.ReplaceForRole(ctx, manager, nil))

		var count int64
		db.Model(&models.RolePermissionModel{}).Where("role_id = ?", manager).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("ReplaceForRole rolls back on duplicate insert", func(t *testing.T) {
		db := setupTestDB(t)
		f := seedFixture(t, db)
		repo := NewGrantRepository(db)
		manager := f.roles["Manager"]

		require.NoError(t, repo.InsertBatch(ctx, grantsOf(t, manager, f.perms["READ_TOUR"])))

		err := repo.ReplaceForRole(ctx, manager, grantsOf(t, manager, f.perms["UPDATE_TOUR"], f.perms["UPDATE_TOUR"]))
		require.Error(t, err)
		assert.True(t, errors.IsDuplicateError(err))

		grants, err := repo.ListActiveByRole(ctx, manager)
		require.NoError(t, err)
		assert.Equal(t, []uint{f.perms["READ_TOUR"]}, permissionIDs(grants))
	})

	t.Run("ReplaceForRole rejects grants of another role", func(t *testing.T) {
		db := setupTestDB(t)
		f := seedFixture(t, db)
		repo := NewGrantRepository(db)

		err := repo.ReplaceForRole(ctx, f.roles["Manager"], grantsOf(t, f.roles["Admin"], f.perms["READ_TOUR"]))
		assert.Error(t, err)
	})

	t.Run("unique pair enforced", func(t *testing.T) {
		db := setupTestDB(t)
		f := seedFixture(t, db)
		repo := NewGrantRepository(db)
		manager := f.roles["Manager"]

		require.NoError(t, repo.InsertBatch(ctx, grantsOf(t, manager, f.perms["READ_TOUR"])))
		err := repo.InsertBatch(ctx, grantsOf(t, manager, f.perms["READ_TOUR"]))
		assert.True(t, errors.IsDuplicateError(err))
	})

	t.Run("Add is idempotent and Remove deletes", func(t *testing.T) {
		db := setupTestDB(t)
		f := seedFixture(t, db)
		repo := NewGrantRepository(db)
		manager := f.roles["Manager"]

		g := grantsOf(t, manager, f.perms["CREATE_TOUR"])[0]
		require.NoError(t, repo.Add(ctx, g))
		require.NoError(t, repo.Add(ctx, g))

		grants, err := repo.ListActiveByRole(ctx, manager)
		require.NoError(t, err)
		assert.Len(t, grants, 1)

		require.NoError(t, repo.Remove(ctx, manager, f.perms["CREATE_TOUR"]))
		grants, err = repo.ListActiveByRole(ctx, manager)
		require.NoError(t, err)
		assert.Empty(t, grants)
	})
}

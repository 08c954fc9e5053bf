package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domain/permission"
	vo "tourbook/internal/domain/permission/value_objects"
	"tourbook/internal/shared/errors"
)

func TestGetPermissionMatrixUseCase_Execute(t *testing.T) {
	roles := fixtureRoles(t)
	perms := append(fixturePermissions(t), newTestPermission(t, 40, "CREATE_CATEGORY", "CATEGORY"))
	store := newGrantStore(map[uint][]uint{
		managerID: {updateTour, readTour},
		legacyID:  {createTour},
		viewerID:  {readTour, 404},
	})

	uc := NewGetPermissionMatrixUseCase(
		&mockRoleRepository{ListActiveFunc: func(ctx context.Context) ([]*permission.Role, error) { return roles[:4], nil }},
		&mockPermissionRepository{ListActiveFunc: func(ctx context.Context) ([]*permission.Permission, error) { return perms, nil }},
		store.repo(),
		permission.DefaultOrdering(),
		&mockLogger{},
	)

	resp, err := uc.Execute(context.Background(), GetPermissionMatrixQuery{})
	require.NoError(t, err)

	names := make([]string, 0, len(resp.Permissions))
	for _, p := range resp.Permissions {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"CREATE_TOUR", "READ_TOUR", "UPDATE_TOUR", "DELETE_TOUR", "CREATE_CATEGORY", "READ_PERMISSIONS"}, names)
	assert.Equal(t, []string{"TOUR", "CATEGORY", "PERMISSIONS"}, resp.ModuleOrder)
	assert.Len(t, resp.PermissionsByModule["TOUR"], 4)

	assert.Len(t, resp.Roles, 4)
	assert.Equal(t, []uint{readTour, updateTour}, resp.Mapping[managerID])
	assert.Equal(t, []uint{readTour}, resp.Mapping[viewerID])
	assert.Empty(t, resp.Mapping[adminID])
	assert.NotContains(t, resp.Mapping, legacyID)

	for roleID, granted := range resp.Mapping {
		for permID, set := range resp.Matrix[roleID] {
			assert.Equal(t, set, contains(granted, permID), "role %d permission %d", roleID, permID)
		}
	}
}

func TestGetPermissionMatrixUseCase_CustomOrdering(t *testing.T) {
	perms := fixturePermissions(t)
	ordering := permission.MatrixOrdering{
		Modules: []vo.Module{vo.ModulePermissions, vo.ModuleTour},
		Actions: []string{"DELETE", "CREATE"},
	}
	uc := NewGetPermissionMatrixUseCase(
		&mockRoleRepository{},
		&mockPermissionRepository{ListActiveFunc: func(ctx context.Context) ([]*permission.Permission, error) { return perms, nil }},
		&mockGrantRepository{},
		ordering,
		&mockLogger{},
	)

	resp, err := uc.Execute(context.Background(), GetPermissionMatrixQuery{})
	require.NoError(t, err)

	names := make([]string, 0, len(resp.Permissions))
	for _, p := range resp.Permissions {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"READ_PERMISSIONS", "DELETE_TOUR", "CREATE_TOUR", "UPDATE_TOUR", "READ_TOUR"}, names)
}

func TestGetPermissionMatrixUseCase_LoadFailure(t *testing.T) {
	uc := NewGetPermissionMatrixUseCase(
		&mockRoleRepository{},
		&mockPermissionRepository{ListActiveFunc: func(ctx context.Context) ([]*permission.Permission, error) {
			return nil, fmt.Errorf("database is locked")
		}},
		&mockGrantRepository{},
		permission.DefaultOrdering(),
		&mockLogger{},
	)

	resp, err := uc.Execute(context.Background(), GetPermissionMatrixQuery{})
	assert.Nil(t, resp)
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
	assert.Equal(t, "could not load permission matrix", appErr.Message)
}

func contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

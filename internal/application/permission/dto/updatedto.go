package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IDList decodes a JSON array whose items are positive integers given either
// as numbers or as numeric strings.
type IDList []uint

func (l *IDList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("permission list must be an array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("permission list must be an array")
	}

	ids := make(IDList, 0, len(raw))
	for _, item := range raw {
		id, err := parseID(item)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

func parseID(item json.RawMessage) (uint, error) {
	s := strings.TrimSpace(string(item))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid permission ID: %s", string(item))
	}
	return uint(id), nil
}

// ParseRoleKey parses a role identifier used as a JSON object key.
func ParseRoleKey(key string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid role ID: %q", key)
	}
	return uint(id), nil
}

// UpdatePermissionsRequest maps role IDs to the complete permission set each
// listed role should hold. Roles left out are not touched.
type UpdatePermissionsRequest struct {
	Permissions map[string]IDList `json:"permissions" binding:"required"`
}

type RoleOutcome struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	PermissionCount *int   `json:"permissionCount,omitempty"`
	OldCount        *int   `json:"oldCount,omitempty"`
	Error           string `json:"error,omitempty"`
}

// UpdatePermissionsResponse reports a bulk update. ChangedRoles is keyed by
// role name and holds only the roles that were rewritten or failed.
type UpdatePermissionsResponse struct {
	Success      bool                   `json:"success"`
	Message      string                 `json:"message"`
	Summary      string                 `json:"summary"`
	ChangedRoles map[string]RoleOutcome `json:"changedRoles"`
	TotalChanged int                    `json:"totalChanged"`
	Data         *MatrixData            `json:"data,omitempty"`
}

type CopyPermissionsRequest struct {
	FromRoleID uint `json:"fromRoleId" binding:"required,gt=0"`
	ToRoleID   uint `json:"toRoleId" binding:"required,gt=0,nefield=FromRoleID"`
}

type CopyPermissionsResponse struct {
	FromRole        string `json:"fromRole"`
	ToRole          string `json:"toRole"`
	PermissionCount int    `json:"permissionCount"`
	OldCount        int    `json:"oldCount"`
}

type TogglePermissionRequest struct {
	Granted *bool `json:"granted" binding:"required"`
}

type TogglePermissionResponse struct {
	RoleID       uint `json:"roleId"`
	PermissionID uint `json:"permissionId"`
	Granted      bool `json:"granted"`
	Changed      bool `json:"changed"`
}

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Level       int    `json:"level" binding:"required,gte=1"`
	Description string `json:"description" binding:"max=500"`
}

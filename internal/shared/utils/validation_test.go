package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/shared/errors"
)

type copyRequest struct {
	FromRoleID uint   `json:"from_role_id" validate:"required"`
	ToRoleID   uint   `json:"to_role_id" validate:"required,nefield=FromRoleID"`
	Note       string `json:"note" validate:"max=5"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(copyRequest{FromRoleID: 2, ToRoleID: 3}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := ValidateStruct(copyRequest{ToRoleID: 3, Note: "too long"})
		require.Error(t, err)

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
		assert.Contains(t, appErr.Details, "from_role_id is required")
		assert.Contains(t, appErr.Details, "note must be at most 5 characters long")
	})

	t.Run("same role", func(t *testing.T) {
		err := ValidateStruct(copyRequest{FromRoleID: 3, ToRoleID: 3})
		require.Error(t, err)
		assert.Contains(t, errors.GetAppError(err).Details, "to_role_id must differ from FromRoleID")
	})
}

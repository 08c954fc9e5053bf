package value_objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermissionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PermissionName
		wantErr bool
	}{
		{"already canonical", "CREATE_TOUR", "CREATE_TOUR", false},
		{"lower case with spaces", " create tour ", "CREATE_TOUR", false},
		{"dashes", "read-home-section", "READ_HOME_SECTION", false},
		{"empty", "  ", "", true},
		{"leading digit", "1_TOUR", "", true},
		{"punctuation", "READ:TOUR", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPermissionName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPermissionName_HasAction(t *testing.T) {
	assert.True(t, PermissionName("CREATE_TOUR").HasAction("CREATE"))
	assert.False(t, PermissionName("EXPORT_ORDER").HasAction("READ"))
}

func TestNewModule(t *testing.T) {
	m, err := NewModule("home section")
	require.NoError(t, err)
	assert.Equal(t, ModuleHomeSection, m)

	_, err = NewModule("INVOICES")
	assert.Error(t, err)

	assert.Len(t, KnownModules, 11)
	assert.Equal(t, ModuleTour, KnownModules[0])
	assert.Equal(t, ModuleUsers, KnownModules[len(KnownModules)-1])
}

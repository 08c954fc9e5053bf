package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tourbook/internal/infrastructure/auth"
	"tourbook/internal/infrastructure/config"
	"tourbook/internal/infrastructure/persistence/models"
	"tourbook/internal/infrastructure/persistence/seeds"
	sharedConfig "tourbook/internal/shared/config"
	"tourbook/internal/shared/logger"
)

const testSecret = "container-test-secret-0123456789"

type testServer struct {
	container *Container
	tokens    *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	catalog, err := seeds.DefaultCatalog()
	require.NoError(t, err)
	_, err = seeds.SeedPermissionCatalog(db, catalog)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: "test"},
		Auth: sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{
			Secret: testSecret, Issuer: "tourbook", AccessTTLMinutes: 5,
		}},
		Permission: sharedConfig.PermissionConfig{
			CasbinEnabled: true,
			GrantsChannel: "tourbook:test:grants",
			WriteLimit:    sharedConfig.RateLimitConfig{RequestsPerMinute: 100, RequestsPerHour: 1000},
		},
	}

	c, err := NewContainer(db, client, cfg, logger.NewLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		c.Shutdown()
	})
	require.NoError(t, c.Start(ctx))

	return &testServer{
		container: c,
		tokens:    auth.NewJWTService(testSecret, "tourbook", 5*time.Minute),
	}
}

func (s *testServer) do(t *testing.T, method, path, role string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := s.tokens.Generate("user-"+role, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.container.Engine().ServeHTTP(w, req)
	return w
}

func TestContainer_Health(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestContainer_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/admin/permissions/matrix", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContainer_MatrixReadAndWrite(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/admin/permissions/matrix", "Viewer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var read struct {
		Success bool `json:"success"`
		Data    struct {
			Roles       []map[string]interface{} `json:"roles"`
			ModuleOrder []string                 `json:"moduleOrder"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &read))
	assert.True(t, read.Success)
	require.Len(t, read.Data.Roles, 4)
	assert.Equal(t, "Super Admin", read.Data.Roles[0]["name"])
	assert.Equal(t, "TOUR", read.Data.ModuleOrder[0])

	w = s.do(t, http.MethodPut, "/admin/permissions/matrix", "Viewer", map[string]interface{}{
		"permissions": map[string][]string{"4": {}},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// READ_TOUR only: the viewer loses READ_PERMISSIONS
	w = s.do(t, http.MethodPut, "/admin/permissions/matrix", "Admin", map[string]interface{}{
		"permissions": map[string][]string{"4": {"2"}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var update struct {
		Success      bool `json:"success"`
		TotalChanged int  `json:"totalChanged"`
		ChangedRoles map[string]struct {
			Success bool `json:"success"`
		} `json:"changedRoles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
	assert.True(t, update.Success)
	assert.Equal(t, 1, update.TotalChanged)
	assert.True(t, update.ChangedRoles["Viewer"].Success)

	w = s.do(t, http.MethodGet, "/admin/permissions/matrix", "Viewer", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestContainer_CopyRejectsSuperAdmin(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/admin/permissions/copy", "Super Admin", map[string]uint{
		"fromRoleId": 4,
		"toRoleId":   1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestContainer_SwaggerDoc(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/admin/permissions/matrix")
}

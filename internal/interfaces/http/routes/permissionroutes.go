package routes

import (
	"github.com/gin-gonic/gin"

	"tourbook/internal/interfaces/http/handlers"
	"tourbook/internal/interfaces/http/middleware"
	"tourbook/internal/shared/authorization"
)

// Permission names guarding the admin surface.
const (
	PermissionReadPermissions   = "READ_PERMISSIONS"
	PermissionUpdatePermissions = "UPDATE_PERMISSIONS"
)

// PermissionRouteConfig holds dependencies for the RBAC admin routes.
type PermissionRouteConfig struct {
	PermissionHandler    *handlers.PermissionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	WriteRateLimit       *middleware.WriteRateLimit // may be nil
}

// SetupPermissionRoutes configures the role and permission management routes.
func SetupPermissionRoutes(engine *gin.Engine, cfg *PermissionRouteConfig) {
	canRead := cfg.PermissionMiddleware.RequirePermission(PermissionReadPermissions, authorization.CapabilityViewPermissions)
	canWrite := cfg.PermissionMiddleware.RequirePermission(PermissionUpdatePermissions, authorization.CapabilityManagePermissions)

	writes := []gin.HandlerFunc{canWrite}
	if cfg.WriteRateLimit != nil {
		writes = append(writes, cfg.WriteRateLimit.Limit())
	}
	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), h)
	}

	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())

	permissions := admin.Group("/permissions")
	{
		permissions.GET("/matrix", canRead, cfg.PermissionHandler.GetMatrix)
		permissions.PUT("/matrix", write(cfg.PermissionHandler.UpdateMatrix)...)
		permissions.POST("/copy", write(cfg.PermissionHandler.CopyPermissions)...)
	}

	roles := admin.Group("/roles")
	{
		roles.POST("", write(cfg.PermissionHandler.CreateRole)...)
		roles.PATCH("/:id/permissions/:permissionId", write(cfg.PermissionHandler.TogglePermission)...)
	}
}

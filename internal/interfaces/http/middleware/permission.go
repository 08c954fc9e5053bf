package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/domain/permission"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/errors"
	"tourbook/internal/shared/logger"
	"tourbook/internal/shared/utils"
)

type PermissionMiddleware struct {
	enforcer permission.PolicyEnforcer
	logger   logger.Interface
}

// NewPermissionMiddleware guards routes with enforcer policies. A nil
// enforcer falls back to tier capabilities.
func NewPermissionMiddleware(enforcer permission.PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission allows the request when the caller's role holds
// permissionName. The protected tier always passes so it cannot be locked out.
func (m *PermissionMiddleware) RequirePermission(permissionName string, fallback authorization.Capability) gin.HandlerFunc {
	if m.enforcer == nil {
		return authorization.RequireCapability(fallback)
	}

	return func(c *gin.Context) {
		caller, ok := authorization.GetCaller(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("user not authenticated"))
			c.Abort()
			return
		}

		if caller.Tier().IsProtected() {
			c.Next()
			return
		}

		allowed, err := m.enforcer.Enforce(caller.RoleName, permissionName)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", caller.UserID, "role", caller.RoleName, "permission", permissionName)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", caller.UserID, "role", caller.RoleName, "permission", permissionName)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient permissions",
			})
			return
		}

		c.Next()
	}
}

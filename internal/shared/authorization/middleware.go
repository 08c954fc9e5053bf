package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/shared/constants"
)

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID   string
	RoleName string
}

func (c Caller) Tier() RoleTier {
	return ParseRoleTier(c.RoleName)
}

func SetCaller(c *gin.Context, caller Caller) {
	c.Set(constants.ContextKeyCaller, caller)
	c.Set(constants.ContextKeyUserID, caller.UserID)
	c.Set(constants.ContextKeyRoleName, caller.RoleName)
}

func GetCaller(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(constants.ContextKeyCaller)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

// RequireCapability aborts with 403 unless the caller's tier carries cap.
func RequireCapability(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok || !caller.Tier().Has(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

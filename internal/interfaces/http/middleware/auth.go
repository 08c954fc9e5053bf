package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tourbook/internal/infrastructure/auth"
	"tourbook/internal/shared/authorization"
	"tourbook/internal/shared/constants"
	"tourbook/internal/shared/errors"
	"tourbook/internal/shared/logger"
	"tourbook/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier tokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier tokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth resolves the bearer token into the request's Caller.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			if !errors.IsAppError(err) {
				err = errors.NewTokenInvalidError("invalid or expired token")
			}
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		authorization.SetCaller(c, claims.Caller())
		c.Next()
	}
}

package auth

import (
	"crypto/subtle"
	"strings"

	"statsync-server/internal/apierrors"
	"statsync-server/internal/observability"

	"github.com/gin-gonic/gin"
)

// RequireSharedSecret guards internal API routes with a static shared
// secret. The caller presents it either as a bearer token or in the
// X-Api-Secret header; comparison is constant-time.
func RequireSharedSecret(secret string, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("X-Api-Secret")
		if presented == "" {
			authHeader := c.GetHeader("Authorization")
			presented = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if presented == "" {
			logger.Warn(c.Request.Context(), "missing API credential")
			apierrors.Unauthorized(c, "missing credentials")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			logger.Warn(c.Request.Context(), "invalid API credential")
			apierrors.Unauthorized(c, "invalid credentials")
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"bizhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// OwnerIDKey is the gin context key holding the authenticated business owner.
	OwnerIDKey = "ownerID"
	// OwnerEmailKey holds the owner's email from the token.
	OwnerEmailKey = "ownerEmail"
)

// JWTAuthOwnerMiddleware requires a business owner bearer token.
func JWTAuthOwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseOwnerToken(strings.TrimSpace(raw))
		if err != nil {
			if l, exists := c.Get(LoggerKey); exists {
				if logger, ok := l.(*zap.Logger); ok {
					logger.Debug("owner token rejected", zap.Error(err))
				}
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(OwnerIDKey, claims.Subject)
		c.Set(OwnerEmailKey, claims.Email)
		c.Next()
	}
}

package handlers

import (
	"bizhub/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request-scoped logger, or the global one outside the
// request logging middleware.
func getLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(middleware.LoggerKey); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}

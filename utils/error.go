package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// requestLogger mirrors middleware.LoggerKey; utils cannot import middleware.
func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}

// ErrorHandler recovers panics into a 500 with the usual {error, details} body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				requestLogger(c).Error("unhandled panic",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"))
				JSONError(c, http.StatusInternalServerError, "internal server error", "an unexpected error occurred, please try again later")
			}
		}()
		c.Next()
	}
}

// JSONError aborts the request with {error, details}. Server errors are
// logged at error level, client errors at debug.
func JSONError(c *gin.Context, status int, message, details string) {
	log := requestLogger(c)
	if status >= http.StatusInternalServerError {
		log.Error(message, zap.String("details", details), zap.String("path", c.Request.URL.Path))
	} else {
		log.Debug(message, zap.String("details", details), zap.String("path", c.Request.URL.Path))
	}
	body := gin.H{"error": message}
	if details != "" {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}

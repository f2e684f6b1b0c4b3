package handlers

import (
	"net/http"

	"bizhub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last result of the background dependency checks.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

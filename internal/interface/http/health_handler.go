package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-management-api/config"
	"github.com/oksasatya/user-management-api/pkg/response"
)

var startedAt = time.Now()

// Health GET /health
func Health(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Server is running", gin.H{
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(startedAt).Seconds(),
			"environment": cfg.Env,
		})
	}
}

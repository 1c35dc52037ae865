package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/vreblog/public_api/internal/cache"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	db    *sqlx.DB
	redis *cache.RedisClient
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// GetHealth handles GET /v1/health.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	components := gin.H{"database": "up", "redis": "up"}

	if err := h.db.PingContext(ctx); err != nil {
		components["database"] = "down"
		status = http.StatusServiceUnavailable
	}
	if err := h.redis.Ping(ctx); err != nil {
		components["redis"] = "down"
		status = http.StatusServiceUnavailable
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{
		"status":     overall,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"components": components,
	})
}

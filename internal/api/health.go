package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mealforge/backend/internal/database"
)

// HealthHandler reports liveness of the service and its backing stores.
type HealthHandler struct {
	db    *database.DB
	redis *redis.Client
}

// NewHealthHandler creates a HealthHandler. Either dependency may be nil.
func NewHealthHandler(db *database.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	result := gin.H{"status": "ok"}

	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			status = http.StatusServiceUnavailable
			result["status"] = "degraded"
			result["database"] = err.Error()
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status = http.StatusServiceUnavailable
			result["status"] = "degraded"
			result["redis"] = err.Error()
		}
	}

	c.JSON(status, result)
}

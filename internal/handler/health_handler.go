package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lead-service",
	})
}

// Ready pings the database and, when configured, redis.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	connections := map[string]string{}
	ready := true

	switch {
	case h.db == nil:
		connections["database"] = "not connected"
		ready = false
	default:
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			connections["database"] = "error: " + err.Error()
			ready = false
		} else {
			connections["database"] = "connected"
		}
	}

	if h.redis == nil {
		connections["redis"] = "not configured"
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		connections["redis"] = "error: " + err.Error()
		ready = false
	} else {
		connections["redis"] = "connected"
	}

	status, text := http.StatusOK, "ready"
	if !ready {
		status, text = http.StatusServiceUnavailable, "not ready"
	}
	c.JSON(status, gin.H{"status": text, "service": "lead-service", "connections": connections})
}

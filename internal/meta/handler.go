package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/betrhq/betr/go-data-server/internal/shared/database"
	"github.com/betrhq/betr/go-data-server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Handler handles meta endpoints (health check)
type Handler struct {
	cfg *config.Config
	db  *database.DB
	log *slog.Logger
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db *database.DB, log *slog.Logger) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
		log: log,
	}
}

// Health checks service and database health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	service := gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
	}

	start := time.Now()
	if err := h.db.HealthCheck(ctx); err != nil {
		logger.FromContext(ctx, h.log).Error("Health check 실패", "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": service,
			"checks": gin.H{
				"database": gin.H{
					"status":  "down",
					"dialect": h.db.Dialector.Name(),
					"error":   err.Error(),
				},
			},
		})
		return
	}

	service["port"] = h.cfg.App.Port
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": service,
		"checks": gin.H{
			"database": gin.H{
				"status":     "up",
				"dialect":    h.db.Dialector.Name(),
				"latency_ms": time.Since(start).Milliseconds(),
			},
		},
	})
}

package bootstrap

import (
	"io"
	"log/slog"

	"github.com/betrhq/betr/go-data-server/internal/config"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/logger"
	"github.com/betrhq/betr/go-data-server/internal/shared/middleware"
	"github.com/gin-gonic/gin"
)

// Bootstrap handles common server setup
type Bootstrap struct {
	cfg *config.Config
	log *slog.Logger
}

// NewBootstrap creates a new bootstrap instance
func NewBootstrap(cfg *config.Config, log *slog.Logger) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
		log: log,
	}
}

// SetupEngine creates and configures a gin engine with common middleware
func (b *Bootstrap) SetupEngine() *gin.Engine {
	// Set Gin mode based on environment
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	engine := gin.New()

	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID(b.log))
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.Timeout(middleware.DefaultTimeout))
	engine.Use(middleware.LoggerMiddleware(b.log))

	return engine
}

// recoveryHandler handles panics
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context(), b.log).Error("Panic Recovered",
		"error", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	resp := sharedError.InternalServerError
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(resp.Status, resp)
}

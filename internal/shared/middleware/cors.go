package middleware

import (
	"time"

	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS applies the configured cross-origin policy. ExposedHeaders must list
// Content-Disposition for browsers to read the file name of a table dump.
func CORS(cfg *config.Config) gin.HandlerFunc {
	policy := cfg.CORS

	corsConfig := cors.Config{
		AllowMethods:     policy.AllowedMethods,
		AllowHeaders:     policy.AllowedHeaders,
		ExposeHeaders:    policy.ExposedHeaders,
		AllowCredentials: policy.AllowCredentials,
		MaxAge:           time.Duration(policy.MaxAge) * time.Second,
	}

	if isWildcard(policy.AllowedOrigins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = policy.AllowedOrigins
	}

	return cors.New(corsConfig)
}

func isWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/betrhq/betr/go-data-server/internal/config"
)

// NewTestConfig creates a test configuration rooted in a temporary directory.
// This removes the need for environment variables during testing
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	paths, err := config.ResolvePaths(root)
	if err != nil {
		t.Fatalf("Failed to resolve test paths: %v", err)
	}

	return &config.Config{
		App: config.AppConfig{
			Name: "betr-data-server-test",
			Env:  "test",
			Port: 8080,
		},
		Database: config.DatabaseConfig{
			URL:                  "sqlite://" + filepath.Join(root, "test.db"),
			MaxIdleConns:         2,
			MaxOpenConns:         4,
			ConnMaxLifetime:      time.Hour,
			ConnMaxIdleTime:      10 * time.Minute,
			PoolTimeout:          5 * time.Second,
			CreateDatabasePolicy: config.CreateDatabaseError,
			IsAutoMigrate:        true,
		},
		Log: config.LogConfig{
			Level:          "debug",
			StdoutFilename: "stdout.log",
			StderrFilename: "stderr.log",
			MaxSizeMB:      1,
			MaxBackups:     1,
		},
		Paths: paths,
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
		},
	}
}

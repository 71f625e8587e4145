package router

import (
	"fmt"
	"log/slog"

	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/betrhq/betr/go-data-server/internal/meta"
	"github.com/betrhq/betr/go-data-server/internal/model"
	"github.com/betrhq/betr/go-data-server/internal/repository"
	"github.com/betrhq/betr/go-data-server/internal/shared/database"
	"github.com/betrhq/betr/go-data-server/internal/table"
	"github.com/betrhq/betr/go-data-server/internal/team"
	"github.com/gin-gonic/gin"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, registry *model.Registry, log *slog.Logger) error {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db, log)
	router.GET("/health", metaHandler.Health)

	// repository
	teamRepository, err := repository.New[model.Team](log)
	if err != nil {
		return fmt.Errorf("team repository 생성 실패: %w", err)
	}

	// shared services
	gateway := db.Gateway(cfg.Database.CreateDatabasePolicy)

	// service
	tableService := table.NewTableService(gateway, registry)
	teamService := team.NewTeamService(db.DB, teamRepository)

	// handler
	tableHandler := table.NewTableHandler(tableService)
	teamHandler := team.NewTeamHandler(teamService)

	// API v1 routes
	tablesV1 := router.Group("/api/v1/tables")
	{
		tablesV1.GET("", tableHandler.List)
		tablesV1.GET("/:name", tableHandler.Describe)
		tablesV1.GET("/:name/rows", tableHandler.Rows)
	}

	teamsV1 := router.Group("/api/v1/teams")
	{
		teamsV1.POST("", teamHandler.Register)
		teamsV1.GET("", teamHandler.Find)
	}

	return nil
}

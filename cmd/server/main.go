package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/betrhq/betr/go-data-server/internal/bootstrap"
	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/betrhq/betr/go-data-server/internal/model"
	"github.com/betrhq/betr/go-data-server/internal/router"
	"github.com/betrhq/betr/go-data-server/internal/shared/database"
	"github.com/betrhq/betr/go-data-server/internal/shared/logger"
	"github.com/betrhq/betr/go-data-server/internal/shared/validator"
)

type flags struct {
	env            string
	createDatabase string
}

func main() {
	f := parseFlags()

	if err := run(f); err != nil {
		// the file logger may not exist yet
		slog.Error("서버 초기화 실패", "env", f.env, "error", err)
		os.Exit(1)
	}
}

// parseFlags parses command line arguments
func parseFlags() flags {
	var f flags
	flag.StringVar(&f.env, "env", "local", "Environment (local|dev|prod)")
	flag.StringVar(&f.createDatabase, "create-database", "", "Create this database before serving (postgres only)")
	flag.Parse()
	return f
}

// run contains the main application logic
func run(f flags) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(f.env)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	if err := cfg.Paths.EnsureDirs(); err != nil {
		return fmt.Errorf("디렉터리 생성 실패: %w", err)
	}

	log, closer, err := logger.Setup(cfg)
	if err != nil {
		return fmt.Errorf("로거 초기화 실패: %w", err)
	}
	defer closeQuietly(closer)
	slog.SetDefault(log)

	log.Info("서버 초기화 시작", "env", cfg.App.Env, "root", cfg.Paths.Root)

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("데이터베이스 종료 실패", "error", err)
		}
	}()

	if f.createDatabase != "" {
		if err := db.Gateway(cfg.Database.CreateDatabasePolicy).CreateDatabase(ctx, f.createDatabase); err != nil {
			return fmt.Errorf("데이터베이스 생성 실패: %w", err)
		}
	}

	registry, err := model.NewAppRegistry()
	if err != nil {
		return fmt.Errorf("엔티티 등록 실패: %w", err)
	}
	if err := database.Migrate(db.DB, cfg, log, registry.Models()...); err != nil {
		return fmt.Errorf("마이그레이션 실패: %w", err)
	}

	srv, err := setupServer(cfg, db, registry, log)
	if err != nil {
		return err
	}

	err = startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout, log)
	log.Info("서버 종료 완료", "env", cfg.App.Env)
	return err
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, db *database.DB, registry *model.Registry, log *slog.Logger) (*bootstrap.Server, error) {
	boot := bootstrap.NewBootstrap(cfg, log)
	ginEngine := boot.SetupEngine()

	// Register common validators
	if err := validator.RegisterAll(log); err != nil {
		return nil, fmt.Errorf("공통 Validator 등록 실패: %w", err)
	}

	if err := router.Setup(ginEngine, cfg, db, registry, log); err != nil {
		return nil, fmt.Errorf("라우터 설정 실패: %w", err)
	}

	log.Info("서버 설정 완료", "env", cfg.App.Env, "tables", registry.Tables())

	return bootstrap.New(cfg, log, ginEngine), nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration, log *slog.Logger) error {
	serverErrors := make(chan error, 1)

	go func() {
		serverErrors <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("서버 오류: %w", err)
		}
		return nil

	case sig := <-quit:
		log.Info("종료 신호 수신됨", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		log.Info("서버 종료 중...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("서버 강제 종료: %w", err)
		}
		return nil
	}
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "로그 파일 종료 실패: %v\n", err)
	}
}

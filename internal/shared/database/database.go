package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/betrhq/betr/go-data-server/internal/config"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/logger"

	oracle "github.com/godoes/gorm-oracle"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB wraps the GORM database instance
type DB struct {
	*gorm.DB
	log *slog.Logger
}

// New creates a new database connection from the configured URL
func New(cfg *config.Config, log *slog.Logger) (*DB, error) {
	dialector, err := dialectorFor(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return Open(dialector, cfg, log)
}

// Open connects through the given dialector and applies the configured pool settings.
// Every failure is reported as ErrConnection.
func Open(dialector gorm.Dialector, cfg *config.Config, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}

	gormConfig := &gorm.Config{
		Logger:                 newLogger(cfg, log),
		SkipDefaultTransaction: true, // writes go through WithTransaction explicitly
		NowFunc: func() time.Time {
			return time.Now().UTC() // created_at, updated_at 등에 UTC 사용
		},
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w: %w", sharedError.ErrConnection, err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w: %w", sharedError.ErrConnection, err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Pre-flight ping
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.PoolTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("데이터베이스 핑 실패: %w: %w", sharedError.ErrConnection, err)
	}

	log.Info("데이터베이스 연결 성공",
		"dialect", db.Dialector.Name(),
		"url", logger.MaskURL(cfg.Database.URL),
		"max_idle_conns", cfg.Database.MaxIdleConns,
		"max_open_conns", cfg.Database.MaxOpenConns,
		"conn_max_lifetime", cfg.Database.ConnMaxLifetime.String(),
		"conn_max_idle_time", cfg.Database.ConnMaxIdleTime.String(),
	)

	return &DB{DB: db, log: log}, nil
}

// dialectorFor picks the GORM driver from the URL scheme
func dialectorFor(rawURL string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		return postgres.Open(rawURL), nil
	case strings.HasPrefix(rawURL, "oracle://"):
		return oracle.Open(rawURL), nil
	case strings.HasPrefix(rawURL, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(rawURL, "sqlite://")), nil
	case strings.HasPrefix(rawURL, "file:"):
		return sqlite.Open(rawURL), nil
	default:
		return nil, fmt.Errorf("지원하지 않는 데이터베이스 URL: %q: %w", logger.MaskURL(rawURL), sharedError.ErrConnection)
	}
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("데이터베이스 종료 실패: %w", err)
	}

	db.log.Info("데이터베이스 연결이 종료되었습니다")
	return nil
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("데이터베이스 상태 확인 실패: %w: %w", sharedError.ErrConnection, err)
	}

	return nil
}

// WithContext returns a session handle bound to ctx
func (db *DB) WithContext(ctx context.Context) *gorm.DB {
	return db.DB.WithContext(ctx)
}

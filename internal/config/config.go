package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// CreateDatabasePolicy decides what CREATE DATABASE does when the database already exists.
type CreateDatabasePolicy string

const (
	CreateDatabaseError  CreateDatabasePolicy = "error"
	CreateDatabaseIgnore CreateDatabasePolicy = "ignore"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Log      LogConfig
	Paths    Paths
	CORS     CORSConfig
	Server   ServerConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port int
}

type DatabaseConfig struct {
	URL                  string
	MaxIdleConns         int
	MaxOpenConns         int
	ConnMaxLifetime      time.Duration // pool recycle interval
	ConnMaxIdleTime      time.Duration
	PoolTimeout          time.Duration // bounds the pre-flight ping
	CreateDatabasePolicy CreateDatabasePolicy
	EchoSQL              bool
	IsAutoMigrate        bool // true: 등록된 엔티티 테이블 생성
	IsResetSchema        bool // true: 등록된 테이블 삭제 후 재생성 (prod 금지)
}

type LogConfig struct {
	Level          string
	StdoutFilename string
	StderrFilename string
	MaxSizeMB      int
	MaxBackups     int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("환경 변수 로드 실패: %w", err)
	}

	paths, err := ResolvePaths(getEnv("APP_ROOT", ""))
	if err != nil {
		return nil, fmt.Errorf("경로 설정 실패: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "betr-data-server"),
			Env:  env,
			Port: getEnvAsInt("APP_PORT", 8080),
		},
		Database: DatabaseConfig{
			URL:                  getEnv("DB_URL", ""),
			MaxIdleConns:         getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:         getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			ConnMaxLifetime:      getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			ConnMaxIdleTime:      getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", "10m"),
			PoolTimeout:          getEnvAsDuration("DB_POOL_TIMEOUT", "30s"),
			CreateDatabasePolicy: CreateDatabasePolicy(getEnv("DB_CREATE_DATABASE_POLICY", string(CreateDatabaseError))),
			EchoSQL:              getEnvAsBool("DB_ECHO", false),
			IsAutoMigrate:        getEnvAsBool("DB_AUTO_MIGRATE", false), // 기본값: false (안전)
			IsResetSchema:        getEnvAsBool("DB_RESET_SCHEMA", false),
		},
		Log: LogConfig{
			Level:          getEnv("LOG_LEVEL", ""),
			StdoutFilename: getEnv("LOG_STDOUT_FILENAME", "stdout.log"),
			StderrFilename: getEnv("LOG_STDERR_FILENAME", "stderr.log"),
			MaxSizeMB:      getEnvAsInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups:     getEnvAsInt("LOG_MAX_BACKUPS", 3),
		},
		Paths: paths,
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"*"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Disposition", "X-Request-ID"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("환경 변수 검증 실패 : %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("환경 변수 파일을 찾을 수 없습니다. 시스템 환경 변수를 사용합니다.",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("환경 변수 파일 로드 오류: %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("환경 변수 파일 로드", "file", absPath)
	return nil
}

func (c *Config) Validate() error {
	var result *multierror.Error

	// App validation
	if c.App.Port < 1 || c.App.Port > 65535 {
		result = multierror.Append(result, errors.New("유효하지 않은 포트 번호"))
	}

	// Database validation
	if c.Database.URL == "" {
		result = multierror.Append(result, errors.New("데이터베이스 URL이 필요합니다"))
	}
	if c.Database.MaxOpenConns < 1 {
		result = multierror.Append(result, errors.New("DB_MAX_OPEN_CONNS는 1 이상이어야 합니다"))
	}
	if c.Database.PoolTimeout <= 0 {
		result = multierror.Append(result, errors.New("DB_POOL_TIMEOUT은 0보다 커야 합니다"))
	}
	switch c.Database.CreateDatabasePolicy {
	case CreateDatabaseError, CreateDatabaseIgnore:
	default:
		result = multierror.Append(result, fmt.Errorf("알 수 없는 DB_CREATE_DATABASE_POLICY: %q", c.Database.CreateDatabasePolicy))
	}

	// Log validation
	if c.Log.StdoutFilename == "" || c.Log.StderrFilename == "" {
		result = multierror.Append(result, errors.New("로그 파일 이름이 필요합니다"))
	}

	return result.ErrorOrNil()
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}

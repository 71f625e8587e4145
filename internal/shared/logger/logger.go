package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelCritical sits above slog.LevelError and is rendered as CRITICAL.
const LevelCritical = slog.Level(12)

// Setup builds the application logger. Records fan out to the console, to the stdout
// log file (all levels) and to the stderr log file (error and above). The returned
// closer releases the log files.
func Setup(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	level := consoleLevel(cfg)
	if cfg.Log.Level != "" {
		level = ParseLevel(cfg.Log.Level)
	}

	consoleOpts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}
	var console slog.Handler
	if cfg.IsProduction() {
		console = slog.NewJSONHandler(os.Stdout, consoleOpts)
	} else {
		console = slog.NewTextHandler(os.Stdout, consoleOpts)
	}

	if err := os.MkdirAll(cfg.Paths.Logs, 0o755); err != nil {
		return nil, nil, fmt.Errorf("로그 디렉터리 생성 실패: %w", err)
	}

	stdoutFile := newRotatingFile(cfg, cfg.Log.StdoutFilename)
	stderrFile := newRotatingFile(cfg, cfg.Log.StderrFilename)

	handler := NewFanoutHandler(
		console,
		slog.NewTextHandler(stdoutFile, &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: replaceLevel}),
		slog.NewTextHandler(stderrFile, &slog.HandlerOptions{Level: slog.LevelError, ReplaceAttr: replaceLevel}),
	)

	logger := slog.New(handler)
	logger.Info("Logger 초기화",
		"env", cfg.App.Env,
		"level", levelName(level),
		"stdout_file", stdoutFile.Filename,
		"stderr_file", stderrFile.Filename,
	)

	return logger, closers{stdoutFile, stderrFile}, nil
}

// ParseLevel maps debug, info, warning, error and critical to slog levels.
// Unknown names fall back to debug.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return slog.LevelInfo
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical":
		return LevelCritical
	default:
		return slog.LevelDebug
	}
}

func consoleLevel(cfg *config.Config) slog.Level {
	if cfg.IsDevelopment() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func newRotatingFile(cfg *config.Config, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.Paths.LogFile(name),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   true,
	}
}

func levelName(level slog.Level) string {
	if level >= LevelCritical {
		return "CRITICAL"
	}
	return level.String()
}

func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok {
		a.Value = slog.StringValue(levelName(level))
	}
	return a
}

type closers []io.Closer

func (c closers) Close() error {
	var result *multierror.Error
	for _, closer := range c {
		if err := closer.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

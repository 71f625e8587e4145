package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		"info":     slog.LevelInfo,
		"warning":  slog.LevelWarn,
		"WARN":     slog.LevelWarn,
		"error":    slog.LevelError,
		"critical": LevelCritical,
		"verbose":  slog.LevelDebug,
	}

	for name, want := range testCases {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestSetup_WritesLevelFilteredFiles(t *testing.T) {
	paths, err := config.ResolvePaths(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		App:   config.AppConfig{Name: "test", Env: "test"},
		Log:   config.LogConfig{StdoutFilename: "stdout.log", StderrFilename: "stderr.log", MaxSizeMB: 1, MaxBackups: 1},
		Paths: paths,
	}

	log, closer, err := Setup(cfg)
	require.NoError(t, err)

	log.Debug("debug message")
	log.Log(context.Background(), LevelCritical, "critical message")
	require.NoError(t, closer.Close())

	stdout, err := os.ReadFile(paths.LogFile("stdout.log"))
	require.NoError(t, err)
	stderr, err := os.ReadFile(paths.LogFile("stderr.log"))
	require.NoError(t, err)

	assert.Contains(t, string(stdout), "debug message")
	assert.Contains(t, string(stdout), "level=CRITICAL")
	assert.NotContains(t, string(stderr), "debug message")
	assert.Contains(t, string(stderr), "critical message")
}

func TestFanoutHandler_RespectsEachLevel(t *testing.T) {
	var all, errs bytes.Buffer
	log := slog.New(NewFanoutHandler(
		slog.NewTextHandler(&all, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)).With("component", "test")

	log.Info("hello")
	log.Error("broken")

	assert.Contains(t, all.String(), "hello")
	assert.Contains(t, all.String(), "component=test")
	assert.NotContains(t, errs.String(), "hello")
	assert.Contains(t, errs.String(), "broken")
}

type panicHandler struct{}

func (panicHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (panicHandler) Handle(context.Context, slog.Record) error { panic("handler exploded") }
func (h panicHandler) WithAttrs([]slog.Attr) slog.Handler     { return h }
func (h panicHandler) WithGroup(string) slog.Handler          { return h }

func TestSink_NeverPanics(t *testing.T) {
	sink := NewSink(slog.New(panicHandler{}))

	assert.NotPanics(t, func() {
		sink.Log("error", "message")
		sink.Traceback("critical", "message", errors.New("cause"))
		sink.Warning("message")
	})
}

func TestSink_Log(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: replaceLevel})))

	sink.Log("warning", "disk almost full")
	sink.Critical("disk full")

	assert.Contains(t, buf.String(), "level=WARN msg=\"disk almost full\"")
	assert.Contains(t, buf.String(), "level=CRITICAL msg=\"disk full\"")
}

func TestMaskURL(t *testing.T) {
	assert.Equal(t, "postgres://betr:***@db:5432/betr", MaskURL("postgres://betr:secret@db:5432/betr"))
	assert.Equal(t, "sqlite:///tmp/betr.db", MaskURL("sqlite:///tmp/betr.db"))
}

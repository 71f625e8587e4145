package logger

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// Sink accepts (level, message) pairs. It never panics and never reports failures
// to the caller.
type Sink struct {
	logger *slog.Logger
}

func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger}
}

// Log writes message at the named level (debug, info, warning, error, critical).
func (s *Sink) Log(level, message string) {
	defer func() { _ = recover() }()
	s.logger.Log(context.Background(), ParseLevel(level), message)
}

// Traceback logs message together with err and the current goroutine stack.
func (s *Sink) Traceback(level, message string, err error) {
	defer func() { _ = recover() }()
	s.logger.Log(context.Background(), ParseLevel(level), message,
		"error", err,
		"stack", string(debug.Stack()),
	)
}

func (s *Sink) Debug(message string)    { s.Log("debug", message) }
func (s *Sink) Info(message string)     { s.Log("info", message) }
func (s *Sink) Warning(message string)  { s.Log("warning", message) }
func (s *Sink) Error(message string)    { s.Log("error", message) }
func (s *Sink) Critical(message string) { s.Log("critical", message) }

// Logger returns the structured logger behind the sink.
func (s *Sink) Logger() *slog.Logger {
	return s.logger
}

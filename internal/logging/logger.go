package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance
	Logger *SafeLogger
)

// SafeLogger wraps a zap logger and tolerates use before initialization,
// which happens in unit tests that exercise services directly.
type SafeLogger struct {
	logger *zap.Logger
}

// NewSafeLogger wraps an existing zap logger
func NewSafeLogger(logger *zap.Logger) *SafeLogger {
	return &SafeLogger{logger: logger}
}

func (s *SafeLogger) get() *zap.Logger {
	if s == nil || s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

// Debug logs a message at debug level
func (s *SafeLogger) Debug(msg string, fields ...zap.Field) {
	s.get().Debug(msg, fields...)
}

// Info logs a message at info level
func (s *SafeLogger) Info(msg string, fields ...zap.Field) {
	s.get().Info(msg, fields...)
}

// Warn logs a message at warn level
func (s *SafeLogger) Warn(msg string, fields ...zap.Field) {
	s.get().Warn(msg, fields...)
}

// Error logs a message at error level
func (s *SafeLogger) Error(msg string, fields ...zap.Field) {
	s.get().Error(msg, fields...)
}

// Fatal logs a message at fatal level and exits
func (s *SafeLogger) Fatal(msg string, fields ...zap.Field) {
	s.get().Fatal(msg, fields...)
}

// With returns a logger with the given fields attached
func (s *SafeLogger) With(fields ...zap.Field) *SafeLogger {
	return &SafeLogger{logger: s.get().With(fields...)}
}

// InitLogger initializes the global logger
func InitLogger() error {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Set log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(logLevel)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := config.Build(
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("service", "app-sinistro"),
			zap.String("version", "v1"),
		),
	)
	if err != nil {
		return err
	}

	Logger = NewSafeLogger(logger)
	return nil
}

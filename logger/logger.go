package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// New builds a zap logger for the given level ("debug", "info", "warn",
// "error") and format ("json" for production, anything else for console).
func New(levelStr, format string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// Init replaces the package logger.
func Init(levelStr, format string) error {
	l, err := New(levelStr, format)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// Set replaces the package logger with l. Tests use it with zaptest or observer loggers.
func Set(l *zap.Logger) {
	log = l
}

// L returns the package logger. It is a no-op logger until Init is called.
func L() *zap.Logger {
	return log
}

// Named returns a child of the package logger tagged with a component name.
func Named(name string) *zap.Logger {
	return log.Named(name)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}

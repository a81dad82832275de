// Package logger is the process-wide zap logger for fkgraph. It carries
// diagnostics (skipped files, non-converging levels); command results are
// printed with fatih/color instead.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	level  = zap.NewAtomicLevel()
	once   sync.Once
)

// Init builds the logger from the log.level and log.format config keys.
// Only the first call takes effect.
func Init(lvl, format string) error {
	var err error
	once.Do(func() {
		err = build(lvl, format)
	})
	return err
}

func build(lvl, format string) error {
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", lvl, err)
	}

	cfg := zap.NewDevelopmentConfig()
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}
	cfg.Level = level

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	global = l
	return nil
}

// SetLevel is used by --verbose after Init.
func SetLevel(lvl string) error {
	return level.UnmarshalText([]byte(lvl))
}

// L falls back to a no-op logger so packages can log before the CLI has
// loaded its config, and in tests.
func L() *zap.Logger {
	if global == nil {
		return zap.NewNop()
	}
	return global
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { L().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { L().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

func Sync() error {
	if global == nil {
		return nil
	}
	return global.Sync()
}

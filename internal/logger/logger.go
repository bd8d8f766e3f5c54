// Package logger provides structured logging using Zap.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// FileOptions configures an optional rotating log file that receives a copy
// of every entry. An empty Path disables the file sink.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder. For all other environments,
// it uses a human-readable console encoder.
func Init(env string) {
	InitWithFile(env, FileOptions{})
}

// InitWithFile is Init with an additional rotating file sink.
func InitWithFile(env string, file FileOptions) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			// Fallback to nop logger if initialization fails.
			base = zap.NewNop()
		}

		if file.Path != "" {
			base = base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
				return zapcore.NewTee(core, fileCore(env, file))
			}))
		}

		sugar = base.Sugar()
	})
}

func fileCore(env string, file FileOptions) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    file.MaxSizeMB,
		MaxAge:     file.MaxAgeDays,
		MaxBackups: file.MaxBackups,
		Compress:   true,
		LocalTime:  true,
	}

	level := zapcore.DebugLevel
	if env == "production" {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), level)
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init(os.Getenv("ENV"))
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init initializes the logger
func Init(env string) {
	once.Do(func() {
		config := zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		var err error
		log, err = config.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	})
}

// GetLogger returns the underlying zap logger
func GetLogger() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Sync flushes buffered log entries
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

// Info logs a message at InfoLevel
func Info(_ context.Context, msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Error logs a message at ErrorLevel
func Error(_ context.Context, msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Debug logs a message at DebugLevel
func Debug(_ context.Context, msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a message at WarnLevel
func Warn(_ context.Context, msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

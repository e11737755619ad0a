package logger

import (
	"context"
	"testing"
)

func TestLoggerBeforeInitDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	Debug(ctx, "debug")
	Info(ctx, "info")
	Warn(ctx, "warn")
	Error(ctx, "error")
}

func TestInitIsIdempotent(t *testing.T) {
	Init("development")
	first := GetLogger()
	Init("production")
	if GetLogger() != first {
		t.Fatal("Init must only build the logger once")
	}
}

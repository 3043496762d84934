package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var global *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("init zap: %v", err))
	}
	global = l.Sugar()
}

// Init replaces the global logger, typically from main after config is read.
func Init(level string) error {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build zap: %w", err)
	}
	global = l.Sugar()
	return nil
}

type ctxKey struct{}

// WithFields returns a ctx whose log calls carry the given key-value pairs.
func WithFields(ctx context.Context, kv ...interface{}) context.Context {
	merged := append([]interface{}{}, fields(ctx)...)
	merged = append(merged, kv...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func fields(ctx context.Context) []interface{} {
	kv, _ := ctx.Value(ctxKey{}).([]interface{})
	return kv
}

func from(ctx context.Context) *zap.SugaredLogger {
	if kv := fields(ctx); len(kv) > 0 {
		return global.With(kv...)
	}
	return global
}

func Info(ctx context.Context, msg string) {
	from(ctx).Info(msg)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, msg string) {
	from(ctx).Error(msg)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	from(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, err error) {
	from(ctx).Fatal(err)
}

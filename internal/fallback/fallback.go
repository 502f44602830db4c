// Package fallback implements the degrade-and-continue policy shared by
// every soft-failure site: log the failed step, substitute a typed default,
// keep going. Hard failures never pass through here.
package fallback

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Value returns v when err is nil, otherwise logs the degraded step at Warn
// and returns def.
func Value[T any](logger *zap.Logger, op string, v T, err error, def T, fields ...zapcore.Field) T {
	if err == nil {
		return v
	}
	logger.Warn("Soft failure, continuing with fallback",
		append([]zapcore.Field{zap.String("op", op), zap.Error(err)}, fields...)...,
	)
	return def
}

// Package logging provides the engine's structured logger constructor and
// a handful of typed field helpers, so callers never import zap directly.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON-encoded zap.Logger at the given level
// ("debug", "info", "warn", "error"; unrecognized values fall back to
// info).
func NewLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "json"
	return cfg.Build()
}

// String, Int and Err are thin re-exports so callers depend on
// logging, not go.uber.org/zap, at their import sites.
func String(k, v string) zap.Field { return zap.String(k, v) }
func Int(k string, v int) zap.Field { return zap.Int(k, v) }
func Err(err error) zap.Field       { return zap.Error(err) }

// Package telemetry holds the ambient logging and metrics used by the
// cmd/obbench harness. Nothing under package book imports this: spec.md
// §5 forbids any call — including a log line — on the hot path once a Book
// is constructed.
//
// Logging is grounded on
// Aidin1998-finalex/services/marketfeeds/market-maker-bot/logging/logger.go:
// a package-level *zap.Logger behind thin Info/Warn/Error wrappers.
package telemetry

import "go.uber.org/zap"

// Logger is the process-wide structured logger. It is nil until InitLogger
// has run; callers that need logging before that point should call
// InitLogger first, matching the teacher repo's own initialization order.
var Logger *zap.Logger

// InitLogger installs a production zap logger.
func InitLogger() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

func Info(msg string, fields ...zap.Field) {
	if Logger == nil {
		return
	}
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	if Logger == nil {
		return
	}
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	if Logger == nil {
		return
	}
	Logger.Error(msg, fields...)
}

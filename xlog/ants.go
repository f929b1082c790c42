package xlog

import (
	"go.uber.org/zap/zapcore"
)

// AntsXLogger is the ants.Logger of the worker pools. Ants only logs the
// recovered task panics, so everything goes out at error level.
type AntsXLogger struct {
	logger XLogger
}

func (l *AntsXLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Logf(zapcore.ErrorLevel, format, args...)
}

func NewAntsXLogger(logger XLogger) *AntsXLogger {
	return &AntsXLogger{
		logger: newComponentLogger(logger, "Ants"),
	}
}

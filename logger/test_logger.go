package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Nop returns a module logger that discards all output (for tests)
func Nop(module string) *ModuleLogger {
	return &ModuleLogger{base: zap.NewNop(), module: module}
}

// NewObserved returns a module logger backed by an in-memory sink plus the
// sink itself, so tests can assert on emitted records.
func NewObserved(module string, level zapcore.Level) (*ModuleLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	l := &ModuleLogger{
		base:   zap.New(core).With(zap.String("module", module)),
		module: module,
	}
	return l, logs
}

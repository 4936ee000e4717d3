// Package logger adapts zap to the ports.Logger abstraction.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger backs the application Logger port with a zap.SugaredLogger.
type ZapLogger struct {
	l *zap.SugaredLogger
}

// New creates a production logger; verbose lowers the level to debug.
func New(verbose bool) *ZapLogger {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return &ZapLogger{l: zap.NewNop().Sugar()}
	}
	return &ZapLogger{l: l.Sugar()}
}

// NewNop returns a logger that discards everything; used in tests.
func NewNop() *ZapLogger {
	return &ZapLogger{l: zap.NewNop().Sugar()}
}

func (z *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	z.l.Debugw(msg, flatten(fields)...)
}

func (z *ZapLogger) Info(msg string, fields map[string]interface{}) {
	z.l.Infow(msg, flatten(fields)...)
}

func (z *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	z.l.Warnw(msg, flatten(fields)...)
}

func (z *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := flatten(fields)
	if err != nil {
		kv = append(kv, "error", err)
	}
	z.l.Errorw(msg, kv...)
}

// Sync flushes buffered log entries.
func (z *ZapLogger) Sync() {
	_ = z.l.Sync()
}

func flatten(fields map[string]interface{}) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}

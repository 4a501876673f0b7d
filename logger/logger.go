// Package logger provides module-scoped zap loggers with TraceID extraction
// from context. One Manager per process; module loggers are created on demand
// and carry a fixed "module" field.
package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// TraceIDContextKey key under which middleware stores the trace id in context
type traceIDContextKey struct{}

// TraceIDKey exported context key instance
var TraceIDKey = traceIDContextKey{}

// Config Manager configuration
type Config struct {
	// Level minimum level: debug, info, warn, error
	Level string `mapstructure:"level"`

	// Encoding output format: json or console
	Encoding string `mapstructure:"encoding"`

	// EnableConsole write to stdout
	EnableConsole bool `mapstructure:"enable_console"`

	// EnableFile write rotated files under LogDir
	EnableFile bool `mapstructure:"enable_file"`

	// LogDir directory for log files (one file per module)
	LogDir string `mapstructure:"log_dir"`

	// MaxSizeMB single file size limit before rotation
	MaxSizeMB int `mapstructure:"max_size_mb"`

	// MaxBackups rotated files to retain
	MaxBackups int `mapstructure:"max_backups"`

	// MaxAgeDays retention in days
	MaxAgeDays int `mapstructure:"max_age_days"`
}

// ApplyDefaults fills zero-value fields
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Encoding == "" {
		c.Encoding = "json"
	}
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	if c.MaxSizeMB <= 0 {
		c.MaxSizeMB = 100
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 5
	}
	if c.MaxAgeDays <= 0 {
		c.MaxAgeDays = 30
	}
	if !c.EnableConsole && !c.EnableFile {
		c.EnableConsole = true
	}
}

// Manager creates and caches module loggers
type Manager struct {
	cfg     Config
	loggers map[string]*ModuleLogger
	writers []*lumberjack.Logger
	mu      sync.RWMutex
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// NewManager creates an independent Manager instance
func NewManager(cfg Config) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		cfg:     cfg,
		loggers: make(map[string]*ModuleLogger),
	}
}

// Init initializes the global manager (first call wins)
func Init(cfg Config) {
	managerOnce.Do(func() {
		globalManager = NewManager(cfg)
	})
}

// Get returns the global manager's logger for a module.
// Usable before Init: falls back to a default-config manager.
func Get(module string) *ModuleLogger {
	if globalManager == nil {
		Init(Config{})
	}
	return globalManager.Get(module)
}

// Get returns the module logger, creating it on first use (thread safe)
func (m *Manager) Get(module string) *ModuleLogger {
	m.mu.RLock()
	if l, ok := m.loggers[module]; ok {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[module]; ok {
		return l
	}

	base := m.createLogger(module)
	l := &ModuleLogger{
		base:   base.With(zap.String("module", module)),
		module: module,
	}
	m.loggers[module] = l
	return l
}

// Close flushes and closes all writers
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.loggers {
		_ = l.base.Sync()
	}
	for _, w := range m.writers {
		_ = w.Close()
	}
}

func (m *Manager) createLogger(module string) *zap.Logger {
	level := zapcore.InfoLevel
	_ = level.Set(m.cfg.Level)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if m.cfg.Encoding == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	var cores []zapcore.Core
	if m.cfg.EnableConsole {
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), level))
	}
	if m.cfg.EnableFile {
		w := &lumberjack.Logger{
			Filename:   filepath.Join(m.cfg.LogDir, module+".log"),
			MaxSize:    m.cfg.MaxSizeMB,
			MaxBackups: m.cfg.MaxBackups,
			MaxAge:     m.cfg.MaxAgeDays,
			Compress:   true,
		}
		m.writers = append(m.writers, w)
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

// ModuleLogger context-aware logger bound to one module
type ModuleLogger struct {
	base   *zap.Logger
	module string
}

// Module returns the bound module name
func (l *ModuleLogger) Module() string {
	return l.module
}

// enrich appends trace_id extracted from context, if present
func (l *ModuleLogger) enrich(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		return append(fields, zap.String("trace_id", traceID))
	}
	return fields
}

// DebugCtx logs at Debug level with trace id from context
func (l *ModuleLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Debug(msg, l.enrich(ctx, fields)...)
}

// InfoCtx logs at Info level with trace id from context
func (l *ModuleLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Info(msg, l.enrich(ctx, fields)...)
}

// WarnCtx logs at Warn level with trace id from context
func (l *ModuleLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Warn(msg, l.enrich(ctx, fields)...)
}

// ErrorCtx logs at Error level with trace id from context
func (l *ModuleLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	l.base.Error(msg, l.enrich(ctx, fields)...)
}

// Debug convenience method without context
func (l *ModuleLogger) Debug(msg string, fields ...zap.Field) {
	l.base.Debug(msg, fields...)
}

// Info convenience method without context
func (l *ModuleLogger) Info(msg string, fields ...zap.Field) {
	l.base.Info(msg, fields...)
}

// Warn convenience method without context
func (l *ModuleLogger) Warn(msg string, fields ...zap.Field) {
	l.base.Warn(msg, fields...)
}

// Error convenience method without context
func (l *ModuleLogger) Error(msg string, fields ...zap.Field) {
	l.base.Error(msg, fields...)
}

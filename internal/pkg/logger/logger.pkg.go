package logger

import (
	"fmt"
	"log"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Info, Warning, Error, Debug and HTTP write through one zap logger, each at
// its own level. They are built once; Setup and Replace swap the core
// underneath them.
var (
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
	Debug   *log.Logger
	HTTP    *log.Logger

	core swapCore
	base *zap.Logger
)

func init() {
	l, err := build(zapcore.InfoLevel, "console")
	if err != nil {
		panic(err)
	}
	core.store(l.Core())

	base = zap.New(&core, zap.AddCaller())
	Info = stdLog(base, zapcore.InfoLevel)
	Warning = stdLog(base, zapcore.WarnLevel)
	Error = stdLog(base, zapcore.ErrorLevel)
	Debug = stdLog(base, zapcore.DebugLevel)
	HTTP = stdLog(base.Named("http"), zapcore.InfoLevel)
}

// Setup rebuilds the loggers for the configured level (debug, info, warn or
// error) and encoding (console or json).
func Setup(level, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l, err := build(lvl, format)
	if err != nil {
		return err
	}
	_ = core.Sync()
	core.store(l.Core())
	return nil
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	_ = core.Sync()
}

// Replace routes every logger through l until the returned restore is
// called.
func Replace(l *zap.Logger) (restore func()) {
	previous := core.load()
	core.store(l.Core())
	return func() { core.store(previous) }
}

func build(level zapcore.Level, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case "", "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

func stdLog(l *zap.Logger, level zapcore.Level) *log.Logger {
	std, err := zap.NewStdLogAt(l, level)
	if err != nil {
		// only reachable with a level above FatalLevel
		panic(err)
	}
	return std
}

// swapCore forwards to whichever core was stored last.
type swapCore struct {
	cur atomic.Pointer[zapcore.Core]
}

func (s *swapCore) store(c zapcore.Core) {
	s.cur.Store(&c)
}

func (s *swapCore) load() zapcore.Core {
	return *s.cur.Load()
}

func (s *swapCore) Enabled(level zapcore.Level) bool {
	return s.load().Enabled(level)
}

func (s *swapCore) With(fields []zapcore.Field) zapcore.Core {
	return s.load().With(fields)
}

func (s *swapCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return s.load().Check(entry, checked)
}

func (s *swapCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return s.load().Write(entry, fields)
}

func (s *swapCore) Sync() error {
	return s.load().Sync()
}

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Logger is the global logger instance
	Logger *log.Logger
)

const (
	prefix = "phoenix"

	DefaultFile       = "phoenix.log"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Config holds logger configuration. Empty or zero fields use the defaults
// above; Debug overrides Level.
type Config struct {
	Debug      bool
	Level      string
	ConfigDir  string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func (c Config) level() (log.Level, error) {
	switch {
	case c.Debug:
		return log.DebugLevel, nil
	case c.Level == "":
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

// rotator is the size-rotated file under <ConfigDir>/logs.
func (c Config) rotator(dir string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, orDefault(c.File, DefaultFile)),
		MaxSize:    orDefault(c.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: orDefault(c.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(c.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   c.Compress,
	}
}

func orDefault[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

// Init initializes the global logger with the given configuration. In
// debug mode output is also copied to stderr; otherwise the CLI stays quiet
// and only the file is written.
func Init(cfg Config) error {
	lvl, err := cfg.level()
	if err != nil {
		return err
	}
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var w io.Writer = cfg.rotator(logDir)
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, w)
	}
	Logger = newLogger(w, lvl, cfg.Debug)
	return nil
}

// InitWriter points the global logger at w. Used by tests and by commands
// that run before the config directory exists.
func InitWriter(w io.Writer, level log.Level) {
	Logger = newLogger(w, level, false)
}

func newLogger(w io.Writer, level log.Level, caller bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportCaller:    caller,
		CallerOffset:    2, // logAt and the exported helper
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	})
}

func logAt(level log.Level, msg string, keyvals []interface{}) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) { logAt(log.DebugLevel, msg, keyvals) }

// Info logs an info message
func Info(msg string, keyvals ...interface{}) { logAt(log.InfoLevel, msg, keyvals) }

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) { logAt(log.WarnLevel, msg, keyvals) }

// Error logs an error message
func Error(msg string, keyvals ...interface{}) { logAt(log.ErrorLevel, msg, keyvals) }

// Fatal logs a fatal error and exits
func Fatal(msg string, keyvals ...interface{}) {
	logAt(log.FatalLevel, msg, keyvals)
	os.Exit(1)
}

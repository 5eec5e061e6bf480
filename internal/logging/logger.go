// Package logging holds the process-wide structured logger. Decoding
// packages never log; the inspection layer and the CLI do.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logger   *slog.Logger
	loggerMu sync.RWMutex
	logFile  *os.File
	isInited bool
)

// LogLevel represents logging verbosity
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (LogLevel, error) {
	switch l := LogLevel(strings.ToUpper(s)); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string    // file path; empty means Output
	Output     io.Writer // defaults to stderr so stdout stays free for reports
	Format     string    // "json" or "text"
}

// Init replaces the process logger. A previously opened log file is closed.
func Init(config Config) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	writer := config.Output
	if writer == nil {
		writer = os.Stderr
	}
	var file *os.File
	if config.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0o750); err != nil {
			return err
		}
		f, err := os.OpenFile(config.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		writer, file = f, f
	}

	opts := &slog.HandlerOptions{Level: config.Level.slogLevel()}
	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	logger = slog.New(handler)
	isInited = true
	return nil
}

// InitDefault installs a WARN level text logger on stderr unless a logger
// is already set.
func InitDefault() {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if isInited {
		return
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	isInited = true
}

// Close closes the log file, if any, and resets the logger.
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	var err error
	if logFile != nil {
		err = logFile.Close()
		logFile = nil
	}
	logger = nil
	isInited = false
	return err
}

// GetLogger returns the current logger, installing the default one first
// if needed.
func GetLogger() *slog.Logger {
	loggerMu.RLock()
	l, ok := logger, isInited
	loggerMu.RUnlock()
	if ok {
		return l
	}
	InitDefault()
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Debug logs a debug message in a thread-safe manner
func Debug(msg string, args ...any) { GetLogger().Debug(msg, args...) }

// Info logs an info message in a thread-safe manner
func Info(msg string, args ...any) { GetLogger().Info(msg, args...) }

// Warn logs a warning message in a thread-safe manner
func Warn(msg string, args ...any) { GetLogger().Warn(msg, args...) }

// Error logs an error message in a thread-safe manner
func Error(msg string, args ...any) { GetLogger().Error(msg, args...) }

package logging

import (
	"log/slog"
)

// WithPage creates a logger with page context.
//
//	log := logging.WithPage(pageNo)
//	log.Warn("checksum mismatch", "stored", stored)
func WithPage(pageNo uint32) *slog.Logger {
	return GetLogger().With("page", pageNo)
}

// WithTable creates a logger with table context.
func WithTable(tableName string) *slog.Logger {
	return GetLogger().With("table", tableName)
}

// WithComponent creates a logger with component/subsystem context.
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithFile creates a logger with tablespace file context.
func WithFile(path string) *slog.Logger {
	return GetLogger().With("file", path)
}

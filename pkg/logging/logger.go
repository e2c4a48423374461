// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for AllFamilyAI components.
//
// It is a small wrapper around the standard library's slog package: a
// Logger carries a minimum level and a service name, and With() derives
// a child logger carrying additional attributes. Callers that need raw
// slog features (LogAttrs, custom handlers) reach them through Slog().
//
//	logger := logging.Default().With("service", "allfamilyai-server")
//	slog.SetDefault(logger.Slog())
package logging

import (
	"log/slog"
	"os"
)

// Level represents log severity levels, ordered by severity:
// Debug < Info < Warn < Error.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the human-readable name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures a Logger. A zero-value Config creates a logger that
// writes Debug+ messages to stderr in text format.
type Config struct {
	// Level sets the minimum log level. The zero value is LevelDebug.
	Level Level

	// Service identifies the component generating logs; included as the
	// "service" attribute on every entry.
	Service string

	// JSON enables JSON output instead of human-readable text.
	JSON bool
}

// Logger wraps slog.Logger with a minimum level and a service name.
//
// Logger is safe for concurrent use: it holds no mutable state beyond
// the immutable slog.Logger it wraps.
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a Logger writing to stderr per config.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", config.Service)})
	}

	return &Logger{slog: slog.New(handler), config: config}
}

// Default returns a logger at Info level, text format, service
// "allfamilyai".
func Default() *Logger {
	return New(Config{Level: LevelInfo, Service: "allfamilyai"})
}

// Debug logs a message at Debug level.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs a message at Info level.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs a message at Warn level.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs a message at Error level.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// With returns a new Logger carrying args in addition to the parent's
// attributes. The parent is not modified.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), config: l.config}
}

// Slog returns the underlying slog.Logger, for direct access to slog
// features this wrapper does not expose.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

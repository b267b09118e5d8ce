// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// EnvDebug enables debug logging when set to "true".
const EnvDebug = "PROCINSPECT_DEBUG"

var (
	mu           sync.RWMutex
	globalLogger *slog.Logger
	debugEnabled bool
)

func init() {
	SetupLoggerWithWriter(os.Stderr, false, false)
}

// SetupLoggerWithWriter configures the global logger to write to w.
// debug enables debug-level logging, as does PROCINSPECT_DEBUG=true;
// structured selects JSON over text.
// This function is safe for concurrent use.
func SetupLoggerWithWriter(w io.Writer, debug, structured bool) {
	mu.Lock()
	defer mu.Unlock()

	debugEnabled = debug || os.Getenv(EnvDebug) == "true"

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debugEnabled {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// IsDebugEnabled reports whether the last SetupLoggerWithWriter call enabled
// debug logging.
// This function is safe for concurrent use.
func IsDebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugEnabled
}

// Debug logs a debug message with optional key-value pairs.
// Debug messages are only logged when debug mode is enabled.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// ParseFormat reports whether a --log-format value selects structured output.
// Valid values are "text" (or empty) and "json".
func ParseFormat(s string) (structured bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("invalid log format: %s (valid options: text, json)", s)
	}
}

// Logger returns the underlying slog.Logger for advanced usage.
// This function is safe for concurrent use.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

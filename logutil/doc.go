// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides structured diagnostic logging built on log/slog.
//
// Diagnostics always go to stderr so they never interleave with the
// inspection output written to stdout.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLoggerWithWriter(os.Stderr, debug, structured)
//
//	// Package-level helper
//	logutil.Debug("reading file", "path", path)
//
//	// Component-scoped loggers
//	log := logutil.NewLogger("inspector").WithOperation("info").WithPID("1")
//	log.Debug("read complete", "bytes", n)
//	log.Error("read failed", "error", err)
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLoggerWithWriter (the --debug flag)
//   - Set PROCINSPECT_DEBUG=true before SetupLoggerWithWriter runs
//
// # Structured Logging
//
// With structured=true (--log-format json) records are JSON:
//
//	{"time":"2024-01-15T10:30:00Z","level":"DEBUG","msg":"read complete","component":"inspector","bytes":1432}
//
// Otherwise they use slog's text format:
//
//	time=2024-01-15T10:30:00Z level=DEBUG msg="read complete" component=inspector bytes=1432
package logutil

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides structured logging setup shared by all sysq
// commands.
//
// All logs go to stderr as JSON so that stdout stays clean for the data
// output and can be piped into scripts. Each log line carries the module
// name, version, and a per-invocation run id.
//
// The LOG_LEVEL environment variable sets the default verbosity; the -D
// debug flag overrides it to DEBUG for the current invocation.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

const envLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name (case-insensitive) into a slog.Level.
// Unknown or empty names default to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger creates a JSON logger writing to stderr with module,
// version, and run id attributes attached to every record. Debug level
// enables source location tracking.
func NewStructuredLogger(module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(h).With(
		"module", module,
		"version", version,
		"run", uuid.NewString(),
	)
}

// SetDefaultStructuredLogger installs the default logger using the level
// from the LOG_LEVEL environment variable.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(envLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs the default logger with an
// explicit level name, overriding the environment.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, ParseLevel(level)))
}

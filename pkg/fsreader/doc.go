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

// Package fsreader provides bounded, fail-soft access to sysfs and procfs
// style pseudo-filesystem trees.
//
// # Philosophy
//
// In /sys and /proc, files come and go, permissions vary per device, and
// attributes that exist on one machine are missing on the next. Every
// accessor here therefore reports absence through a boolean instead of an
// error: missing data is the expected steady state, not a failure. A full
// enumeration pass never aborts because one attribute could not be read.
//
// # Bounds
//
// All reads are size-limited. ReadFile truncates deterministically at the
// caller's limit and reports truncation through a separate boolean; it never
// retries or silently expands the limit. Directory listings are returned in
// lexical order so output is reproducible across runs.
//
// # Path validation
//
// Join validates child path segments before any filesystem access: absolute
// segments, parent-directory references, and embedded separators are
// rejected outright. A rejected join never touches disk.
//
// # Diagnostics
//
// A Reader carries an injected *slog.Logger; when debug logging is enabled,
// every attempted read and listing emits one diagnostic line (path plus
// outcome) on the log stream, never on stdout. The logger is configuration,
// not ambient global state, so tests can exercise both modes.
package fsreader

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

package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// openOutput returns the destination writer for the primary data output.
// An empty path means stdout; a path that cannot be created logs the
// failure and falls back to stdout so the pass still produces its data.
// The returned func closes the file when one was opened.
func openOutput(path string) (io.Writer, func()) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return os.Stdout, func() {}
	}

	f, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file, falling back to stdout",
			"path", trimmed, "error", err)
		return os.Stdout, func() {}
	}
	return f, func() { _ = f.Close() }
}

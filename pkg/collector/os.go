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

package collector

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// OSCollector summarizes OS identity from os-release plus the running
// kernel from /proc/sys/kernel. Per the freedesktop.org convention,
// /etc/os-release is tried first with /usr/lib/os-release as fallback.
type OSCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *OSCollector) Domain() string { return "os" }

// Collect produces a single OS identity record.
func (c *OSCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())

	release := c.readRelease(r)
	rec := record.New().Match("name", "id", "pretty_name", "kernel_release")
	for _, f := range []struct{ field, key string }{
		{"name", "NAME"},
		{"id", "ID"},
		{"version_id", "VERSION_ID"},
		{"pretty_name", "PRETTY_NAME"},
	} {
		v := release[f.key]
		rec.SetPresent(f.field, record.String(v), v != "")
	}

	kernel, ok := r.ReadAttr(filepath.Join(c.root, "proc/sys/kernel/osrelease"))
	rec.SetPresent("kernel_release", record.String(kernel), ok)

	if opts.Verbose {
		version, ok := r.ReadAttr(filepath.Join(c.root, "proc/sys/kernel/version"))
		rec.SetPresent("kernel_version", record.String(version), ok)
		hostname, ok := r.ReadAttr(filepath.Join(c.root, "proc/sys/kernel/hostname"))
		rec.SetPresent("hostname", record.String(hostname), ok)
	}

	set.Add(rec)
	return set, nil
}

// readRelease parses os-release KEY=VALUE lines, stripping surrounding
// quotes and skipping comments and malformed lines.
func (c *OSCollector) readRelease(r *fsreader.Reader) map[string]string {
	out := make(map[string]string)

	data, _, ok := r.ReadFile(filepath.Join(c.root, "etc/os-release"), fsreader.MaxAttrSize)
	if !ok {
		data, _, ok = r.ReadFile(filepath.Join(c.root, "usr/lib/os-release"), fsreader.MaxAttrSize)
	}
	if !ok {
		return out
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)
		if value != "" {
			out[key] = value
		}
	}
	return out
}

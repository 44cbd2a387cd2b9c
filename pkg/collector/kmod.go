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

// KModCollector lists loaded kernel modules from /proc/modules. Line
// format: name size refcount deps state address.
type KModCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *KModCollector) Domain() string { return "kmod" }

// Collect parses /proc/modules, one record per module, in file order.
func (c *KModCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	data, _, ok := r.ReadFile(filepath.Join(c.root, "proc/modules"), fsreader.MaxAttrSize)
	if !ok {
		return set, nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		rec := record.New().
			Set("name", record.String(fields[0])).
			Match("name", "deps")

		if size, ok := fsreader.ParseUint(fields[1], 10); ok {
			rec.Set("size", record.Uint(size))
		}
		if refs, ok := fsreader.ParseUint(fields[2], 10); ok {
			rec.Set("refcount", record.Uint(refs))
		}

		if opts.Verbose {
			// deps field is "-" when empty, otherwise comma separated
			// with a trailing comma
			if len(fields) > 3 && fields[3] != "-" {
				rec.Set("deps", record.String(strings.TrimSuffix(fields[3], ",")))
			}
			if len(fields) > 4 {
				rec.Set("state", record.String(fields[4]))
			}
		}
		set.Add(rec)
	}
	return set, nil
}

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

// CPUCollector summarizes /proc/cpuinfo into a single record. The file's
// format varies by architecture: x86 has "model name"/"vendor_id"/"flags",
// ARM has "CPU implementer"/"CPU part"/"Hardware", RISC-V has "isa"/"mmu".
// Fields missing on an architecture stay absent.
type CPUCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *CPUCollector) Domain() string { return "cpu" }

// Collect parses /proc/cpuinfo. The result is one summary record; an
// unreadable file yields an empty set.
func (c *CPUCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	data, _, ok := r.ReadFile(filepath.Join(c.root, "proc/cpuinfo"), fsreader.MaxAttrSize)
	if !ok {
		return set, nil
	}
	set.Add(parseCPUInfo(string(data), opts))
	return set, nil
}

func parseCPUInfo(content string, opts Options) *record.Record {
	var (
		logical      uint64
		firstBlock   = make(map[string]string)
		inFirstBlock = true
	)

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(firstBlock) > 0 {
				inFirstBlock = false
			}
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "processor" {
			logical++
		}
		// Hardware appears outside CPU blocks on ARM
		if inFirstBlock || key == "Hardware" {
			if _, seen := firstBlock[key]; !seen {
				firstBlock[key] = value
			}
		}
	}

	rec := record.New().
		Set("logical_cpus", record.Uint(logical)).
		Match("model_name", "vendor_id")

	modelName := firstBlock["model name"]
	if modelName == "" {
		modelName = firstBlock["Hardware"]
	}
	if modelName == "" && firstBlock["CPU part"] != "" {
		modelName = "ARM Part " + firstBlock["CPU part"]
	}
	rec.SetPresent("model_name", record.String(modelName), modelName != "")

	vendor := firstBlock["vendor_id"]
	if vendor == "" && firstBlock["CPU implementer"] != "" {
		vendor = "ARM (" + firstBlock["CPU implementer"] + ")"
	}
	rec.SetPresent("vendor_id", record.String(vendor), vendor != "")

	if opts.Verbose {
		for _, f := range []struct{ field, key string }{
			{"cpu_family", "cpu family"},
			{"model", "model"},
			{"stepping", "stepping"},
			{"cache_size", "cache size"},
			{"flags", "flags"},
			{"isa", "isa"},
			{"mmu", "mmu"},
		} {
			v := firstBlock[f.key]
			rec.SetPresent(f.field, record.String(v), v != "")
		}
	}

	return rec
}

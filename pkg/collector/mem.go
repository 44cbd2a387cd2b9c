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

	"github.com/NVIDIA/sysq/pkg/encode"
	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// memBaseline and memVerbose map /proc/meminfo keys to field names. Human
// mode drops the _kb suffix since the value is no longer a kB count.
var memBaseline = []struct{ key, field string }{
	{"MemTotal", "mem_total"},
	{"MemFree", "mem_free"},
	{"MemAvailable", "mem_available"},
	{"SwapTotal", "swap_total"},
	{"SwapFree", "swap_free"},
}

var memVerbose = []struct{ key, field string }{
	{"Buffers", "buffers"},
	{"Cached", "cached"},
	{"SwapCached", "swap_cached"},
	{"Shmem", "shmem"},
	{"SReclaimable", "sreclaimable"},
	{"SUnreclaim", "sunreclaim"},
	{"Dirty", "dirty"},
	{"Writeback", "writeback"},
}

// MemCollector summarizes /proc/meminfo into a single record.
type MemCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *MemCollector) Domain() string { return "mem" }

// Collect parses /proc/meminfo. An unreadable file yields an empty set.
func (c *MemCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	data, _, ok := r.ReadFile(filepath.Join(c.root, "proc/meminfo"), fsreader.MaxAttrSize)
	if !ok {
		return set, nil
	}

	values := parseMemInfo(string(data))
	rec := record.New()
	addMemFields(rec, values, memBaseline, opts.Human)
	if opts.Verbose {
		addMemFields(rec, values, memVerbose, opts.Human)
	}
	set.Add(rec)
	return set, nil
}

// parseMemInfo reads "MemTotal:    16384 kB" lines into a key -> kB map.
func parseMemInfo(content string) map[string]uint64 {
	out := make(map[string]uint64)
	for _, line := range strings.Split(content, "\n") {
		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		if v, ok := fsreader.ParseUint(fields[0], 10); ok {
			out[strings.TrimSpace(key)] = v
		}
	}
	return out
}

func addMemFields(rec *record.Record, values map[string]uint64, fields []struct{ key, field string }, human bool) {
	for _, f := range fields {
		v, ok := values[f.key]
		if !ok {
			continue
		}
		if human {
			rec.Set(f.field, record.String(encode.HumanSizeKB(v)))
		} else {
			rec.Set(f.field+"_kb", record.Uint(v))
		}
	}
}

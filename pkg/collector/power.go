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

	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// PowerCollector enumerates /sys/class/power_supply: batteries (status,
// capacity), mains adapters (online), and USB PD supplies.
type PowerCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *PowerCollector) Domain() string { return "power" }

// Collect reads every power supply directory.
func (c *PowerCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	base := filepath.Join(c.root, "sys/class/power_supply")

	names, ok := r.ListDir(base)
	if !ok {
		return set, nil
	}

	for _, name := range names {
		dir, ok := fsreader.Join(base, name)
		if !ok {
			continue
		}
		set.Add(c.readSupply(r, dir, name, opts))
	}
	return set, nil
}

func (c *PowerCollector) readSupply(r *fsreader.Reader, dir, name string, opts Options) *record.Record {
	rec := record.New().
		Set("name", record.String(name)).
		Match("name", "type", "status")

	typ, ok := r.ReadAttr(filepath.Join(dir, "type"))
	rec.SetPresent("type", record.String(typ), ok)
	status, ok := r.ReadAttr(filepath.Join(dir, "status"))
	rec.SetPresent("status", record.String(status), ok)
	online, ok := r.ReadBool(filepath.Join(dir, "online"))
	rec.SetPresent("online", record.Bool(online), ok)
	capacity, ok := r.ReadUint(filepath.Join(dir, "capacity"))
	rec.SetPresent("capacity_percent", record.Uint(capacity), ok)

	if opts.Verbose {
		voltage, ok := r.ReadInt(filepath.Join(dir, "voltage_now"))
		rec.SetPresent("voltage_uv", record.Int(voltage), ok)
		current, ok := r.ReadInt(filepath.Join(dir, "current_now"))
		rec.SetPresent("current_ua", record.Int(current), ok)
		tech, ok := r.ReadAttr(filepath.Join(dir, "technology"))
		rec.SetPresent("technology", record.String(tech), ok)
		model, ok := r.ReadAttr(filepath.Join(dir, "model_name"))
		rec.SetPresent("model", record.String(model), ok)
		mfr, ok := r.ReadAttr(filepath.Join(dir, "manufacturer"))
		rec.SetPresent("manufacturer", record.String(mfr), ok)
		cycles, ok := r.ReadInt(filepath.Join(dir, "cycle_count"))
		rec.SetPresent("cycle_count", record.Int(cycles), ok && cycles >= 0)
	}

	return rec
}

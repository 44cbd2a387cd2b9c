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
	"strconv"
	"strings"

	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// ThermalCollector reads temperature sensors. Thermal zones under
// /sys/class/thermal come first; when none exist it falls back to raw
// hwmon sensors under /sys/class/hwmon, which carry per-sensor labels like
// "Core 0" instead of zone types.
type ThermalCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *ThermalCollector) Domain() string { return "thermal" }

// Collect reads thermal zones, then hwmon sensors when no zone produced a
// reading.
func (c *ThermalCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	c.collectZones(r, set, opts)
	if set.Len() == 0 {
		c.collectHwmon(r, set, opts)
	}
	return set, nil
}

func (c *ThermalCollector) collectZones(r *fsreader.Reader, set *record.Set, opts Options) {
	base := filepath.Join(c.root, "sys/class/thermal")
	names, ok := r.ListDir(base)
	if !ok {
		return
	}

	for _, name := range names {
		if !strings.HasPrefix(name, "thermal_zone") {
			continue
		}
		dir, ok := fsreader.Join(base, name)
		if !ok {
			continue
		}

		sensor, ok := r.ReadAttr(filepath.Join(dir, "type"))
		if !ok {
			sensor = name
		}
		rec := record.New().
			Set("sensor", record.String(sensor)).
			Match("sensor", "label")

		temp, ok := r.ReadInt(filepath.Join(dir, "temp"))
		rec.SetPresent("temp_millicelsius", record.Int(temp), ok)

		if opts.Verbose {
			crit, ok := c.criticalTrip(r, dir)
			rec.SetPresent("temp_crit_millicelsius", record.Int(crit), ok)
			policy, ok := r.ReadAttr(filepath.Join(dir, "policy"))
			rec.SetPresent("policy", record.String(policy), ok)
			rec.Set("source", record.String("thermal_zone"))
		}
		set.Add(rec)
	}
}

// criticalTrip scans trip points for the one typed "critical".
func (c *ThermalCollector) criticalTrip(r *fsreader.Reader, dir string) (int64, bool) {
	for i := 0; i < 16; i++ {
		typePath := filepath.Join(dir, "trip_point_"+strconv.Itoa(i)+"_type")
		t, ok := r.ReadAttr(typePath)
		if !ok {
			break
		}
		if t == "critical" {
			return r.ReadInt(filepath.Join(dir, "trip_point_"+strconv.Itoa(i)+"_temp"))
		}
	}
	return 0, false
}

func (c *ThermalCollector) collectHwmon(r *fsreader.Reader, set *record.Set, opts Options) {
	base := filepath.Join(c.root, "sys/class/hwmon")
	names, ok := r.ListDir(base)
	if !ok {
		return
	}

	for _, name := range names {
		dir, ok := fsreader.Join(base, name)
		if !ok {
			continue
		}
		chip, ok := r.ReadAttr(filepath.Join(dir, "name"))
		if !ok {
			chip = name
		}

		// temp1_input, temp2_input, ... per chip
		for i := 1; i <= 16; i++ {
			temp, ok := r.ReadInt(filepath.Join(dir, "temp"+strconv.Itoa(i)+"_input"))
			if !ok {
				continue
			}
			rec := record.New().
				Set("sensor", record.String(chip)).
				Match("sensor", "label")

			label, hasLabel := r.ReadAttr(filepath.Join(dir, "temp"+strconv.Itoa(i)+"_label"))
			rec.SetPresent("label", record.String(label), hasLabel)
			rec.Set("temp_millicelsius", record.Int(temp))

			if opts.Verbose {
				crit, ok := r.ReadInt(filepath.Join(dir, "temp"+strconv.Itoa(i)+"_crit"))
				rec.SetPresent("temp_crit_millicelsius", record.Int(crit), ok)
				rec.Set("source", record.String("hwmon"))
			}
			set.Add(rec)
		}
	}
}

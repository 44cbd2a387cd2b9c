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
	"fmt"
	"path/filepath"

	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// PCICollector enumerates /sys/bus/pci/devices. No vendor/device ID
// database lookups: hex IDs are what scripts want anyway.
type PCICollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *PCICollector) Domain() string { return "pci" }

// Collect reads every PCI device directory. Devices without readable
// vendor and device IDs are skipped; everything else is best effort.
func (c *PCICollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	base := filepath.Join(c.root, "sys/bus/pci/devices")

	names, ok := r.ListDir(base)
	if !ok {
		return set, nil
	}

	for _, bdf := range names {
		dir, ok := fsreader.Join(base, bdf)
		if !ok {
			continue
		}
		if rec := c.readDevice(r, dir, bdf, opts); rec != nil {
			set.Add(rec)
		}
	}
	return set, nil
}

func (c *PCICollector) readDevice(r *fsreader.Reader, dir, bdf string, opts Options) *record.Record {
	// vendor and device are mandatory; a directory without them is not a
	// device entry
	vendor, ok := r.ReadHex(filepath.Join(dir, "vendor"))
	if !ok {
		return nil
	}
	device, ok := r.ReadHex(filepath.Join(dir, "device"))
	if !ok {
		return nil
	}
	class, _ := r.ReadHex(filepath.Join(dir, "class"))

	rec := record.New().
		Set("bdf", record.String(bdf)).
		Set("vendor_id", record.String(hexU16(vendor))).
		Set("device_id", record.String(hexU16(device))).
		Set("class", record.String(fmt.Sprintf("0x%06x", class))).
		Match("bdf", "driver", "vendor_id", "device_id")

	driver, hasDriver := r.ReadLinkName(filepath.Join(dir, "driver"))
	rec.SetPresent("driver", record.String(driver), hasDriver)

	if opts.Verbose {
		sv, ok := r.ReadHex(filepath.Join(dir, "subsystem_vendor"))
		rec.SetPresent("subsys_vendor", record.String(hexU16(sv)), ok)
		sd, ok := r.ReadHex(filepath.Join(dir, "subsystem_device"))
		rec.SetPresent("subsys_device", record.String(hexU16(sd)), ok)
		rev, ok := r.ReadHex(filepath.Join(dir, "revision"))
		rec.SetPresent("revision", record.String(fmt.Sprintf("0x%02x", rev)), ok)

		// numa_node is -1 on non-NUMA systems; still worth showing
		numa, ok := r.ReadInt(filepath.Join(dir, "numa_node"))
		rec.SetPresent("numa_node", record.Int(numa), ok)

		// iommu_group is a symlink to .../iommu_groups/<n>
		if name, ok := r.ReadLinkName(filepath.Join(dir, "iommu_group")); ok {
			if group, ok := fsreader.ParseUint(name, 10); ok {
				rec.Set("iommu_group", record.Uint(group))
			}
		}

		enabled, ok := r.ReadBool(filepath.Join(dir, "enable"))
		rec.SetPresent("enabled", record.Bool(enabled), ok)
		state, ok := r.ReadAttr(filepath.Join(dir, "power_state"))
		rec.SetPresent("power_state", record.String(state), ok)

		// class code 0x06xxxx is a bridge
		rec.Set("is_bridge", record.Bool(class>>16 == 0x06))
	}

	return rec
}

func hexU16(v uint64) string {
	return fmt.Sprintf("0x%04x", v)
}

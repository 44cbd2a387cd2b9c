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
	"strings"

	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// USBCollector enumerates /sys/bus/usb/devices. Root hub entries ("usb1",
// "usb2", ...) and interface directories (names containing ':') are
// skipped; they are topology, not devices.
type USBCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *USBCollector) Domain() string { return "usb" }

// Collect reads every USB device directory. Manufacturer/product/serial
// strings can require elevated permissions; missing ones stay absent.
func (c *USBCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	base := filepath.Join(c.root, "sys/bus/usb/devices")

	names, ok := r.ListDir(base)
	if !ok {
		return set, nil
	}

	for _, name := range names {
		if strings.HasPrefix(name, "usb") || strings.Contains(name, ":") {
			continue
		}
		dir, ok := fsreader.Join(base, name)
		if !ok {
			continue
		}
		if rec := c.readDevice(r, dir, name, opts); rec != nil {
			set.Add(rec)
		}
	}
	return set, nil
}

func (c *USBCollector) readDevice(r *fsreader.Reader, dir, name string, opts Options) *record.Record {
	vendor, ok := r.ReadHex(filepath.Join(dir, "idVendor"))
	if !ok {
		return nil
	}
	product, ok := r.ReadHex(filepath.Join(dir, "idProduct"))
	if !ok {
		return nil
	}

	rec := record.New().
		Set("name", record.String(name)).
		Set("vendor_id", record.String(hexU16(vendor))).
		Set("product_id", record.String(hexU16(product))).
		Match("name", "manufacturer", "product", "vendor_id", "product_id")

	mfr, ok := r.ReadAttr(filepath.Join(dir, "manufacturer"))
	rec.SetPresent("manufacturer", record.String(mfr), ok)
	prod, ok := r.ReadAttr(filepath.Join(dir, "product"))
	rec.SetPresent("product", record.String(prod), ok)
	speed, ok := r.ReadUint(filepath.Join(dir, "speed"))
	rec.SetPresent("speed_mbps", record.Uint(speed), ok)

	if opts.Verbose {
		class, _ := r.ReadHex(filepath.Join(dir, "bDeviceClass"))
		rec.Set("device_class", record.String(fmt.Sprintf("0x%02x", class)))
		busnum, _ := r.ReadUint(filepath.Join(dir, "busnum"))
		rec.Set("busnum", record.Uint(busnum))
		devnum, _ := r.ReadUint(filepath.Join(dir, "devnum"))
		rec.Set("devnum", record.Uint(devnum))

		serial, ok := r.ReadAttr(filepath.Join(dir, "serial"))
		rec.SetPresent("serial", record.String(serial), ok)
		version, ok := r.ReadAttr(filepath.Join(dir, "version"))
		rec.SetPresent("usb_version", record.String(version), ok)

		// bMaxPower reads like "500mA"
		if s, ok := r.ReadAttr(filepath.Join(dir, "bMaxPower")); ok {
			if ma, ok := fsreader.ParseUint(strings.TrimSuffix(s, "mA"), 10); ok {
				rec.Set("max_power_ma", record.Uint(ma))
			}
		}

		driver, ok := r.ReadLinkName(filepath.Join(dir, "driver"))
		rec.SetPresent("driver", record.String(driver), ok)
	}

	return rec
}

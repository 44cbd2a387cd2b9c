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

// NetCollector enumerates /sys/class/net interfaces with their state and,
// in verbose mode, traffic counters from the statistics subdirectory.
type NetCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *NetCollector) Domain() string { return "net" }

// Collect reads every network interface directory.
func (c *NetCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	base := filepath.Join(c.root, "sys/class/net")

	names, ok := r.ListDir(base)
	if !ok {
		return set, nil
	}

	for _, name := range names {
		dir, ok := fsreader.Join(base, name)
		if !ok {
			continue
		}
		set.Add(c.readInterface(r, dir, name, opts))
	}
	return set, nil
}

func (c *NetCollector) readInterface(r *fsreader.Reader, dir, name string, opts Options) *record.Record {
	rec := record.New().
		Set("name", record.String(name)).
		Match("name", "mac", "state")

	mac, ok := r.ReadAttr(filepath.Join(dir, "address"))
	rec.SetPresent("mac", record.String(mac), ok)
	state, ok := r.ReadAttr(filepath.Join(dir, "operstate"))
	rec.SetPresent("state", record.String(state), ok)
	mtu, ok := r.ReadUint(filepath.Join(dir, "mtu"))
	rec.SetPresent("mtu", record.Uint(mtu), ok)

	if opts.Verbose {
		// speed reads -1 on interfaces without link negotiation
		speed, ok := r.ReadInt(filepath.Join(dir, "speed"))
		rec.SetPresent("speed_mbps", record.Int(speed), ok && speed >= 0)
		duplex, ok := r.ReadAttr(filepath.Join(dir, "duplex"))
		rec.SetPresent("duplex", record.String(duplex), ok)
		carrier, ok := r.ReadBool(filepath.Join(dir, "carrier"))
		rec.SetPresent("carrier", record.Bool(carrier), ok)

		stats := filepath.Join(dir, "statistics")
		for _, counter := range []string{
			"rx_bytes", "tx_bytes",
			"rx_packets", "tx_packets",
			"rx_errors", "tx_errors",
		} {
			v, ok := r.ReadUint(filepath.Join(stats, counter))
			rec.SetPresent(counter, record.Uint(v), ok)
		}
	}

	return rec
}

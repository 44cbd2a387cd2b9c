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

	"github.com/NVIDIA/sysq/pkg/encode"
	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// BlockCollector provides an lsblk-like view from /sys/block, with mount
// points cross-referenced from /proc/self/mounts. Partitions appear as
// subdirectories of their disk and inherit the disk's physical attributes,
// so those are not re-read per partition.
type BlockCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *BlockCollector) Domain() string { return "block" }

// Collect walks /sys/block, emitting each disk followed by its partitions.
func (c *BlockCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	base := filepath.Join(c.root, "sys/block")

	disks, ok := r.ListDir(base)
	if !ok {
		return set, nil
	}

	mounts := c.mountpoints(r)

	for _, disk := range disks {
		dir, ok := fsreader.Join(base, disk)
		if !ok {
			continue
		}
		if rec := c.readDevice(r, dir, disk, "", mounts, opts); rec != nil {
			set.Add(rec)
		}

		// partition directories start with the disk name
		entries, ok := r.ListDir(dir)
		if !ok {
			continue
		}
		for _, entry := range entries {
			if !strings.HasPrefix(entry, disk) {
				continue
			}
			partDir, ok := fsreader.Join(dir, entry)
			if !ok {
				continue
			}
			if rec := c.readDevice(r, partDir, entry, disk, mounts, opts); rec != nil {
				set.Add(rec)
			}
		}
	}
	return set, nil
}

func (c *BlockCollector) readDevice(r *fsreader.Reader, dir, name, parent string, mounts map[string]string, opts Options) *record.Record {
	// size and dev are mandatory; partitions without them are stale entries
	if !r.Exists(filepath.Join(dir, "size")) {
		return nil
	}
	sectors, _ := r.ReadUint(filepath.Join(dir, "size"))
	dev, ok := r.ReadAttr(filepath.Join(dir, "dev"))
	if !ok {
		return nil
	}
	major, minor, ok := parseDevNumbers(dev)
	if !ok {
		return nil
	}

	devType := "disk"
	switch {
	case parent != "":
		devType = "part"
	case strings.HasPrefix(name, "loop"):
		devType = "loop"
	case strings.HasPrefix(name, "ram"):
		devType = "ram"
	}

	rec := record.New().
		Set("name", record.String(name)).
		Set("type", record.String(devType)).
		Set("majmin", record.String(fmt.Sprintf("%d:%d", major, minor))).
		Match("name", "model", "mountpoint", "type")

	sectorSize := uint64(512)
	if parent == "" {
		if v, ok := r.ReadUint(filepath.Join(dir, "queue/hw_sector_size")); ok {
			sectorSize = v
		} else if v, ok := r.ReadUint(filepath.Join(dir, "queue/logical_block_size")); ok {
			sectorSize = v
		}
	}

	if opts.Human {
		rec.Set("size", record.String(encode.HumanSize(sectors*sectorSize)))
	} else {
		rec.Set("size_sectors", record.Uint(sectors))
	}

	rec.SetPresent("parent", record.String(parent), parent != "")
	mp, mounted := mounts["/dev/"+name]
	rec.SetPresent("mountpoint", record.String(mp), mounted)

	if opts.Verbose {
		if !opts.Human {
			rec.Set("sector_size", record.Uint(sectorSize))
		}
		ro, _ := r.ReadBool(filepath.Join(dir, "ro"))
		rec.Set("ro", record.Bool(ro))

		// disk-level attributes don't exist on partitions
		if parent == "" {
			removable, _ := r.ReadBool(filepath.Join(dir, "removable"))
			rec.Set("removable", record.Bool(removable))

			// model via device/model (SCSI/NVMe) or device/name (MMC/SD)
			model, ok := r.ReadAttr(filepath.Join(dir, "device/model"))
			if !ok {
				model, ok = r.ReadAttr(filepath.Join(dir, "device/name"))
			}
			rec.SetPresent("model", record.String(model), ok)

			rot, ok := r.ReadBool(filepath.Join(dir, "queue/rotational"))
			rec.SetPresent("rotational", record.Bool(rot), ok)

			if s, ok := r.ReadAttr(filepath.Join(dir, "queue/scheduler")); ok {
				if sched, ok := activeScheduler(s); ok {
					rec.Set("scheduler", record.String(sched))
				}
			}
		}
	}

	return rec
}

// mountpoints maps /dev/* device paths to their first mount point.
func (c *BlockCollector) mountpoints(r *fsreader.Reader) map[string]string {
	out := make(map[string]string)
	data, _, ok := r.ReadFile(filepath.Join(c.root, "proc/self/mounts"), fsreader.MaxAttrSize)
	if !ok {
		return out
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.HasPrefix(fields[0], "/dev/") {
			continue
		}
		if _, seen := out[fields[0]]; !seen {
			out[fields[0]] = unescapeMountPath(fields[1])
		}
	}
	return out
}

func parseDevNumbers(s string) (major, minor uint64, ok bool) {
	maj, min, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	major, ok = fsreader.ParseUint(maj, 10)
	if !ok {
		return 0, 0, false
	}
	minor, ok = fsreader.ParseUint(min, 10)
	return major, minor, ok
}

// activeScheduler extracts the bracketed entry from a scheduler attribute,
// e.g. "mq-deadline kyber [none]" yields "none".
func activeScheduler(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	end := strings.IndexByte(s, ']')
	if start < 0 || end < 0 || start >= end {
		return "", false
	}
	return s[start+1 : end], true
}

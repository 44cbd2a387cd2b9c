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

// MountsCollector lists mounted filesystems from /proc/self/mounts.
type MountsCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *MountsCollector) Domain() string { return "mounts" }

// Collect parses /proc/self/mounts, one record per mount entry, in file
// order.
func (c *MountsCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	data, _, ok := r.ReadFile(filepath.Join(c.root, "proc/self/mounts"), fsreader.MaxAttrSize)
	if !ok {
		return set, nil
	}

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}

		rec := record.New().
			Set("source", record.String(unescapeMountPath(fields[0]))).
			Set("target", record.String(unescapeMountPath(fields[1]))).
			Set("fstype", record.String(fields[2])).
			Match("source", "target", "fstype")

		if opts.Verbose {
			if len(fields) > 3 {
				rec.Set("options", record.String(fields[3]))
			}
			if len(fields) > 4 {
				if v, ok := fsreader.ParseUint(fields[4], 10); ok {
					rec.Set("dump_freq", record.Uint(v))
				}
			}
			if len(fields) > 5 {
				if v, ok := fsreader.ParseUint(fields[5], 10); ok {
					rec.Set("pass_num", record.Uint(v))
				}
			}
		}
		set.Add(rec)
	}
	return set, nil
}

// unescapeMountPath decodes the kernel's octal escapes in mount paths:
// \040 space, \011 tab, \012 newline, \134 backslash.
func unescapeMountPath(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) &&
			isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			b.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isOctal(b byte) bool {
	return b >= '0' && b <= '7'
}

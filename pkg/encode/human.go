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

package encode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ki = uint64(1) << 10
	mi = uint64(1) << 20
	gi = uint64(1) << 30
	ti = uint64(1) << 40
	pi = uint64(1) << 50
)

// HumanSize formats a byte count with binary (1024-based) divisors,
// selecting the largest unit whose magnitude is at least 1:
// 999 -> "999", 1024 -> "1K", 1536 -> "1.5K", 1073741824 -> "1G".
func HumanSize(bytes uint64) string {
	switch {
	case bytes >= pi:
		return humanValue(float64(bytes)/float64(pi), "P")
	case bytes >= ti:
		return humanValue(float64(bytes)/float64(ti), "T")
	case bytes >= gi:
		return humanValue(float64(bytes)/float64(gi), "G")
	case bytes >= mi:
		return humanValue(float64(bytes)/float64(mi), "M")
	case bytes >= ki:
		return humanValue(float64(bytes)/float64(ki), "K")
	default:
		return strconv.FormatUint(bytes, 10)
	}
}

// HumanSizeKB formats a kilobyte count (the /proc/meminfo unit) with binary
// divisors: 1 -> "1K", 1024 -> "1M", 16777216 -> "16G".
func HumanSizeKB(kb uint64) string {
	switch {
	case kb >= gi:
		return humanValue(float64(kb)/float64(gi), "T")
	case kb >= mi:
		return humanValue(float64(kb)/float64(mi), "G")
	case kb >= ki:
		return humanValue(float64(kb)/float64(ki), "M")
	default:
		return strconv.FormatUint(kb, 10) + "K"
	}
}

// HumanSizeSectors formats a sector count given the device's sector size.
func HumanSizeSectors(sectors uint64, sectorSize uint32) string {
	return HumanSize(sectors * uint64(sectorSize))
}

// humanValue formats with at most one decimal place: values >= 10 in their
// unit drop the decimal, and a trailing ".0" is trimmed.
func humanValue(v float64, suffix string) string {
	if v >= 10 {
		return fmt.Sprintf("%.0f%s", v, suffix)
	}
	s := fmt.Sprintf("%.1f", v)
	s = strings.TrimSuffix(s, ".0")
	return s + suffix
}

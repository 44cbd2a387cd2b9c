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

package fsreader

import (
	"strconv"
	"strings"
)

// ParseUint parses text as an unsigned integer in the given base. Malformed
// text and overflow both yield ok=false; nothing here ever aborts the pass.
func ParseUint(s string, base int) (uint64, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseInt is the signed counterpart of ParseUint.
func ParseInt(s string, base int) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseHex parses a hex value with or without a "0x"/"0X" prefix.
func ParseHex(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "0X"); ok {
		s = rest
	}
	if s == "" {
		return 0, false
	}
	return ParseUint(s, 16)
}

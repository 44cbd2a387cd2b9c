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

package fdt

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// PropKind identifies the interpreted shape of a property payload.
type PropKind int

const (
	// PropEmpty is a zero-length payload (a boolean marker in the format).
	PropEmpty PropKind = iota
	// PropString is one or more printable NUL-terminated strings.
	PropString
	// PropCells is one or more big-endian 32-bit cells.
	PropCells
	// PropBytes is anything else, kept raw.
	PropBytes
)

// Property is a decoded name/payload pair. Interpretation happens once at
// parse time: the string form is checked first, then the cell form, then
// raw bytes, so the same payload always renders the same way.
type Property struct {
	Name    string
	Raw     []byte
	Kind    PropKind
	Strings []string
	Cells   []uint32
}

func interpret(name string, raw []byte) Property {
	p := Property{Name: name, Raw: raw}
	if len(raw) == 0 {
		p.Kind = PropEmpty
		return p
	}
	if ss, ok := stringList(raw); ok {
		p.Kind = PropString
		p.Strings = ss
		return p
	}
	if len(raw)%4 == 0 {
		p.Kind = PropCells
		p.Cells = make([]uint32, 0, len(raw)/4)
		for i := 0; i < len(raw); i += 4 {
			p.Cells = append(p.Cells, binary.BigEndian.Uint32(raw[i:]))
		}
		return p
	}
	p.Kind = PropBytes
	return p
}

// stringList accepts a payload that is entirely printable ASCII split into
// non-empty NUL-terminated segments.
func stringList(raw []byte) ([]string, bool) {
	if raw[len(raw)-1] != 0 || raw[0] == 0 {
		return nil, false
	}
	for _, b := range raw {
		if b != 0 && (b < 0x20 || b > 0x7e) {
			return nil, false
		}
	}
	var out []string
	start := 0
	for i, b := range raw {
		if b != 0 {
			continue
		}
		if i == start {
			// empty segment means this is not a string list
			return nil, false
		}
		out = append(out, string(raw[start:i]))
		start = i + 1
	}
	return out, true
}

// Text renders the interpreted value for display and filtering: strings
// joined with ", ", cells as 0x%08x words, raw bytes as hex capped at 32
// bytes with a trailing ellipsis.
func (p Property) Text() string {
	switch p.Kind {
	case PropEmpty:
		return ""
	case PropString:
		return strings.Join(p.Strings, ", ")
	case PropCells:
		parts := make([]string, 0, len(p.Cells))
		for _, c := range p.Cells {
			parts = append(parts, fmt.Sprintf("0x%08x", c))
		}
		return strings.Join(parts, " ")
	default:
		show := p.Raw
		suffix := ""
		if len(show) > 32 {
			show = show[:32]
			suffix = "..."
		}
		parts := make([]string, 0, len(show))
		for _, b := range show {
			parts = append(parts, fmt.Sprintf("%02x", b))
		}
		return strings.Join(parts, " ") + suffix
	}
}

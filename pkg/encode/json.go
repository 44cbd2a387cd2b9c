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
	"io"
	"strings"

	"github.com/NVIDIA/sysq/pkg/record"
)

// JSONWriter emits records as JSON objects with keys in field order.
// encoding/json cannot serve here: map-backed objects lose field order,
// which is part of the output contract.
type JSONWriter struct {
	b      strings.Builder
	pretty bool
	depth  int
}

// NewJSONWriter creates a writer. Pretty mode indents two spaces per level.
func NewJSONWriter(pretty bool) *JSONWriter {
	return &JSONWriter{pretty: pretty}
}

// JSONSet writes a single domain envelope:
// {"sysq_version": "...", "domain": "...", "data": [...]}.
func JSONSet(w io.Writer, set *record.Set, version string, pretty bool) error {
	j := NewJSONWriter(pretty)
	j.beginObject()
	j.key("sysq_version")
	j.str(version)
	j.comma()
	j.key("domain")
	j.str(set.Domain)
	j.comma()
	j.key("data")
	j.setArray(set)
	j.endObject()
	j.b.WriteByte('\n')
	if _, err := io.WriteString(w, j.b.String()); err != nil {
		return fmt.Errorf("failed to write json output: %w", err)
	}
	return nil
}

// JSONSnapshot writes the aggregate envelope: one object keyed by domain,
// in the order the sets are given, prefixed with the tool version.
func JSONSnapshot(w io.Writer, sets []*record.Set, version string, pretty bool) error {
	j := NewJSONWriter(pretty)
	j.beginObject()
	j.key("sysq_version")
	j.str(version)
	for _, set := range sets {
		j.comma()
		j.key(set.Domain)
		j.setArray(set)
	}
	j.endObject()
	j.b.WriteByte('\n')
	if _, err := io.WriteString(w, j.b.String()); err != nil {
		return fmt.Errorf("failed to write json output: %w", err)
	}
	return nil
}

func (j *JSONWriter) setArray(set *record.Set) {
	if set.Len() == 0 {
		j.b.WriteString("[]")
		return
	}
	j.b.WriteByte('[')
	j.depth++
	for i, rec := range set.Records {
		if i > 0 {
			j.b.WriteByte(',')
		}
		j.newline()
		j.object(rec)
	}
	j.depth--
	j.newline()
	j.b.WriteByte(']')
}

// object writes one record as a JSON object, fields in insertion order,
// absent fields omitted.
func (j *JSONWriter) object(r *record.Record) {
	j.b.WriteByte('{')
	j.depth++
	first := true
	for _, f := range r.Fields() {
		if f.Value.IsAbsent() {
			continue
		}
		if !first {
			j.b.WriteByte(',')
		}
		first = false
		j.newline()
		j.key(f.Name)
		j.value(f.Value)
	}
	j.depth--
	if !first {
		j.newline()
	}
	j.b.WriteByte('}')
}

func (j *JSONWriter) value(v record.Value) {
	switch v.Kind() {
	case record.KindString:
		s, _ := v.Str()
		j.str(s)
	case record.KindBool:
		j.b.WriteString(v.Text())
	case record.KindFloat:
		f := v.Text()
		// bare NaN/Inf are not valid JSON tokens
		if strings.ContainsAny(f, "NI") {
			j.str(f)
			return
		}
		j.b.WriteString(f)
	default:
		j.b.WriteString(v.Text())
	}
}

func (j *JSONWriter) beginObject() {
	j.b.WriteByte('{')
	j.depth++
	j.newline()
}

func (j *JSONWriter) endObject() {
	j.depth--
	j.newline()
	j.b.WriteByte('}')
}

func (j *JSONWriter) comma() {
	j.b.WriteByte(',')
	j.newline()
}

func (j *JSONWriter) key(name string) {
	j.str(name)
	j.b.WriteByte(':')
	if j.pretty {
		j.b.WriteByte(' ')
	}
}

func (j *JSONWriter) newline() {
	if !j.pretty {
		return
	}
	j.b.WriteByte('\n')
	for i := 0; i < j.depth; i++ {
		j.b.WriteString("  ")
	}
}

// str writes a JSON string literal with RFC 8259 escaping.
func (j *JSONWriter) str(s string) {
	j.b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			j.b.WriteString(`\"`)
		case '\\':
			j.b.WriteString(`\\`)
		case '\b':
			j.b.WriteString(`\b`)
		case '\t':
			j.b.WriteString(`\t`)
		case '\n':
			j.b.WriteString(`\n`)
		case '\f':
			j.b.WriteString(`\f`)
		case '\r':
			j.b.WriteString(`\r`)
		default:
			if c < 0x20 {
				j.b.WriteString(`\u00`)
				const hex = "0123456789abcdef"
				j.b.WriteByte(hex[c>>4])
				j.b.WriteByte(hex[c&0xf])
				continue
			}
			j.b.WriteByte(c)
		}
	}
	j.b.WriteByte('"')
}

// String returns everything written so far. Used by tests.
func (j *JSONWriter) String() string {
	return j.b.String()
}

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

package record

import "strconv"

// Kind identifies which member of the Value union is set.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

// Value is a tagged union over the scalar types a collector can report.
// The zero Value is Absent.
type Value struct {
	kind     Kind
	str      string
	num      uint64
	negative bool
	flt      float64
	boolean  bool
}

// Absent returns the explicit "field intentionally omitted" value.
func Absent() Value {
	return Value{}
}

// String wraps a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int wraps a signed integer value.
func Int(i int64) Value {
	if i < 0 {
		return Value{kind: KindInt, num: uint64(-i), negative: true}
	}
	return Value{kind: KindInt, num: uint64(i)}
}

// Uint wraps an unsigned integer value.
func Uint(u uint64) Value {
	return Value{kind: KindInt, num: u}
}

// Float wraps a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, flt: f}
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Kind returns the union member tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is the explicit absence marker.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Str returns the string member.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Uint64 returns the integer member as unsigned. Negative values report
// ok=false.
func (v Value) Uint64() (uint64, bool) {
	if v.kind != KindInt || v.negative {
		return 0, false
	}
	return v.num, true
}

// Int64 returns the integer member as signed. Values beyond int64 range
// report ok=false.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	if v.negative {
		return -int64(v.num), true
	}
	if v.num > 1<<63-1 {
		return 0, false
	}
	return int64(v.num), true
}

// Text renders the value in its canonical textual form: the form used both
// for text-mode output and for filter matching. Absent renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		if v.negative {
			return "-" + strconv.FormatUint(v.num, 10)
		}
		return strconv.FormatUint(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

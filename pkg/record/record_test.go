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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(r *Record) []string {
	names := make([]string, 0, r.Len())
	for _, f := range r.Fields() {
		names = append(names, f.Name)
	}
	return names
}

func TestRecordPreservesInsertionOrder(t *testing.T) {
	r := New().
		Set("name", String("sda")).
		Set("type", String("disk")).
		Set("size_sectors", Uint(1000))

	assert.Equal(t, []string{"name", "type", "size_sectors"}, fieldNames(r))
}

func TestRecordOverwriteKeepsPosition(t *testing.T) {
	r := New().
		Set("a", Uint(1)).
		Set("b", Uint(2)).
		Set("c", Uint(3)).
		Set("b", Uint(20))

	assert.Equal(t, []string{"a", "b", "c"}, fieldNames(r))
	v, ok := r.Get("b")
	require.True(t, ok)
	assert.Equal(t, "20", v.Text())
	assert.Equal(t, 3, r.Len())
}

func TestSetPresent(t *testing.T) {
	r := New().
		SetPresent("present", String("yes"), true).
		SetPresent("missing", String("no"), false)

	assert.Equal(t, 1, r.Len())
	_, ok := r.Get("missing")
	assert.False(t, ok)
}

func TestMatchFieldsDesignation(t *testing.T) {
	r := New().
		Set("name", String("eth0")).
		Set("mtu", Uint(1500)).
		Match("name")

	assert.True(t, r.Matches("ETH"))
	assert.False(t, r.Matches("1500"), "mtu is not a designated match field")
	assert.True(t, r.Matches(""), "empty pattern matches everything")
}

func TestMatchDefaultsToAllFields(t *testing.T) {
	r := New().
		Set("source", String("/dev/sda1")).
		Set("target", String("/boot"))

	assert.True(t, r.Matches("boot"))
	assert.True(t, r.Matches("SDA1"))
	assert.False(t, r.Matches("nvme"))
}

func TestSetFilterPreservesOrder(t *testing.T) {
	s := NewSet("block")
	for _, name := range []string{"sda", "sdb", "nvme0n1", "sdc"} {
		s.Add(New().Set("name", String(name)).Match("name"))
	}

	filtered := s.Filter("sd")
	require.Equal(t, 3, filtered.Len())
	assert.Equal(t, "block", filtered.Domain)

	var names []string
	for _, r := range filtered.Records {
		v, _ := r.Get("name")
		names = append(names, v.Text())
	}
	assert.Equal(t, []string{"sda", "sdb", "sdc"}, names)
}

func TestSetFilterEmptyPatternReturnsSame(t *testing.T) {
	s := NewSet("net")
	s.Add(New().Set("name", String("eth0")))

	assert.Same(t, s, s.Filter(""))
}

func TestValueText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("hello"), "hello"},
		{"uint", Uint(42), "42"},
		{"negative int", Int(-1), "-1"},
		{"large uint", Uint(1<<64 - 1), "18446744073709551615"},
		{"float", Float(1.5), "1.5"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"absent", Absent(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Text())
		})
	}
}

func TestValueKindAccessors(t *testing.T) {
	assert.True(t, Absent().IsAbsent())
	assert.True(t, Value{}.IsAbsent(), "zero value is absent")

	s, ok := String("x").Str()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	u, ok := Uint(7).Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), u)

	_, ok = Int(-7).Uint64()
	assert.False(t, ok, "negative value has no unsigned reading")

	i, ok := Int(-7).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(-7), i)

	_, ok = Uint(1 << 63).Int64()
	assert.False(t, ok, "out of int64 range")
}

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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUint(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		base   int
		want   uint64
		wantOK bool
	}{
		{"decimal", "42", 10, 42, true},
		{"whitespace", " 42\n", 10, 42, true},
		{"hex", "10de", 16, 0x10de, true},
		{"max u64", "18446744073709551615", 10, 1<<64 - 1, true},
		{"overflow", "18446744073709551616", 10, 0, false},
		{"negative", "-1", 10, 0, false},
		{"garbage", "forty-two", 10, 0, false},
		{"empty", "", 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ParseUint(tt.input, tt.base)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParseInt(t *testing.T) {
	v, ok := ParseInt("-1", 10)
	assert.True(t, ok)
	assert.Equal(t, int64(-1), v)

	_, ok = ParseInt("9223372036854775808", 10)
	assert.False(t, ok, "int64 overflow must fail soft")
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   uint64
		wantOK bool
	}{
		{"bare", "10de", 0x10de, true},
		{"0x prefix", "0x10de", 0x10de, true},
		{"0X prefix", "0X10DE", 0x10de, true},
		{"whitespace", "0x0604\n", 0x0604, true},
		{"prefix only", "0x", 0, false},
		{"garbage", "zz", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ParseHex(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

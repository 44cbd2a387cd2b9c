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

// Text writes one line per record: field_name=value pairs in field order,
// separated by single spaces. Values containing whitespace or '=' are
// double-quoted; absent fields are omitted entirely.
func Text(w io.Writer, set *record.Set) error {
	var b strings.Builder
	for _, rec := range set.Records {
		b.Reset()
		first := true
		for _, f := range rec.Fields() {
			if f.Value.IsAbsent() {
				continue
			}
			if !first {
				b.WriteByte(' ')
			}
			first = false
			b.WriteString(f.Name)
			b.WriteByte('=')
			writeTextValue(&b, f.Value.Text())
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
	}
	return nil
}

func writeTextValue(b *strings.Builder, v string) {
	if strings.ContainsAny(v, " \t=") {
		b.WriteByte('"')
		b.WriteString(v)
		b.WriteByte('"')
		return
	}
	b.WriteString(v)
}

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

import "github.com/NVIDIA/sysq/pkg/filter"

// Field is one named value inside a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is an insertion-ordered field list. Overwriting an existing field
// keeps its original position.
type Record struct {
	fields []Field
	index  map[string]int
	match  []string
}

// New creates an empty record.
func New() *Record {
	return &Record{index: make(map[string]int)}
}

// Set stores a field, preserving the position of an existing field with the
// same name. Returns the record for chaining.
func (r *Record) Set(name string, v Value) *Record {
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = v
		return r
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: v})
	return r
}

// SetPresent stores the value only when ok is true. The field slot is not
// created for absent readings, keeping the fail-soft call sites compact.
func (r *Record) SetPresent(name string, v Value, ok bool) *Record {
	if ok {
		r.Set(name, v)
	}
	return r
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Absent(), false
	}
	return r.fields[i].Value, true
}

// Fields returns the fields in insertion order. The slice is shared; callers
// must not mutate it.
func (r *Record) Fields() []Field {
	return r.fields
}

// Len returns the number of fields, including absent ones.
func (r *Record) Len() int {
	return len(r.fields)
}

// Match designates the fields whose values participate in filter matching.
func (r *Record) Match(names ...string) *Record {
	r.match = append(r.match, names...)
	return r
}

// MatchText returns the textual values of the designated match fields.
// Records with no designation match on every field.
func (r *Record) MatchText() []string {
	names := r.match
	if len(names) == 0 {
		out := make([]string, 0, len(r.fields))
		for _, f := range r.fields {
			out = append(out, f.Value.Text())
		}
		return out
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if v, ok := r.Get(n); ok {
			out = append(out, v.Text())
		}
	}
	return out
}

// Matches applies the substring filter to the record's match fields.
func (r *Record) Matches(pattern string) bool {
	return filter.MatchesAny(pattern, r.MatchText()...)
}

// Set is one domain's ordered sequence of records.
type Set struct {
	Domain  string
	Records []*Record
}

// NewSet creates an empty record set for a domain.
func NewSet(domain string) *Set {
	return &Set{Domain: domain}
}

// Add appends a record, preserving collection order.
func (s *Set) Add(r *Record) {
	s.Records = append(s.Records, r)
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.Records)
}

// Filter returns a new set containing the records that match the pattern,
// in their original order. An empty pattern returns the set unchanged.
func (s *Set) Filter(pattern string) *Set {
	if filter.Clamp(pattern) == "" {
		return s
	}
	out := NewSet(s.Domain)
	for _, r := range s.Records {
		if r.Matches(pattern) {
			out.Add(r)
		}
	}
	return out
}

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

// Package encode renders record sets as line-oriented text or JSON.
//
// Text mode emits one line per record: field_name=value pairs in field
// order, space separated, with values containing whitespace or '=' wrapped
// in double quotes. Absent fields are omitted entirely.
//
// JSON emission is hand-written rather than routed through encoding/json:
// the output contract requires keys in record field order, and Go maps
// cannot guarantee that. The escaping rules follow RFC 8259 (control
// characters, double quote, backslash). Absent fields are omitted from the
// object, never emitted as null, a fixed choice that every consumer script
// can rely on. Pretty mode indents by two spaces per level; compact mode
// has no extraneous whitespace.
//
// HumanSize formats byte counts using binary (1024-based) units following
// the ls -h convention.
package encode

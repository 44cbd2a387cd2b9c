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

// Package record defines the uniform data model exchanged between domain
// collectors and the output encoder.
//
// A Record is an ordered mapping from field name to Value. Field names are
// lowercase with underscores and stable across releases: verbose mode only
// adds fields, it never renames or removes them. Field order is insertion
// order and is preserved through filtering and encoding; it is part of the
// output contract.
//
// A Value is a tagged union over string, integer, float, and boolean, plus
// an explicit Absent state. Absent means "intentionally omitted" and is
// distinct from the empty string: the text encoder drops absent fields
// entirely and the JSON encoder omits their keys (never null).
//
// A Set is one domain's ordered sequence of records. Each record can
// designate match fields; Set.Filter applies the substring filter over
// those fields while preserving record order.
package record

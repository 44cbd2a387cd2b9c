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

// Package fdt parses flattened device tree blobs (the /sys/firmware/fdt
// format) into an in-memory node tree.
//
// The parser is defensive: it validates every declared offset against the
// buffer before touching it, caps nesting at MaxDepth with an explicit
// counter, and resolves every corruption outcome to a partial tree plus a
// Status instead of an error. A Malformed or Truncated tree still carries
// whatever nodes were decoded before the walk stopped; partial data beats
// no data on broken firmware.
package fdt

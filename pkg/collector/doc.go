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

// Package collector gathers per-domain hardware and kernel state from the
// /sys and /proc pseudo-filesystems into record sets.
//
// # Overview
//
// Collectors are thin glue: they read attributes through the bounded
// fsreader, assemble records field by field, and leave filtering and
// encoding to the caller. Missing files, unreadable attributes, and absent
// subsystems are the expected steady state on heterogeneous hardware; a
// collector reports whatever it could gather and never fails the pass over
// missing data. The only error a collector returns is context cancellation.
//
// # Core Interface
//
// Every domain implements the same interface:
//
//	type Collector interface {
//	    Domain() string
//	    Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error)
//	}
//
// Options carry the verbose and human switches into collection: verbose
// adds fields (never renames or removes baseline ones), human changes how
// size fields render.
//
// # Factory Pattern
//
// The DefaultFactory constructs collectors with a configurable filesystem
// root, so tests can point them at fixture trees:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithRoot(t.TempDir()),
//	)
//	set, err := factory.CreateMemCollector().Collect(ctx, reader, opts)
//
// All returns every collector in the fixed snapshot order, which is also
// the key order of the aggregate JSON document.
package collector

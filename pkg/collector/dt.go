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

package collector

import (
	"context"
	"path/filepath"

	"github.com/NVIDIA/sysq/pkg/fdt"
	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// DTCollector parses the flattened device tree blob at /sys/firmware/fdt.
// The first record is a board summary (model, compatible, node count, parse
// status); it is followed by one record per node so the filter engine can
// search the tree like any other domain. A Truncated or Malformed blob
// still yields the summary plus the nodes decoded before the walk stopped.
type DTCollector struct {
	root string
}

// Domain returns the collector's domain name.
func (c *DTCollector) Domain() string { return "dt" }

// Collect reads and parses the blob. Systems without a device tree yield
// an empty set.
func (c *DTCollector) Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := record.NewSet(c.Domain())
	data, _, ok := r.ReadFile(filepath.Join(c.root, "sys/firmware/fdt"), fdt.MaxBlobSize)
	if !ok {
		return set, nil
	}

	tree := fdt.Parse(data)
	set.Add(c.summary(tree))
	tree.Walk(func(path string, n *fdt.Node) {
		set.Add(c.nodeRecord(path, n, tree.Status, opts))
	})
	return set, nil
}

func (c *DTCollector) summary(tree *fdt.Tree) *record.Record {
	rec := record.New().Match("model", "compatible")
	if tree.Root != nil {
		model, ok := tree.Root.PropString("model")
		rec.SetPresent("model", record.String(model), ok)
		if p, ok := tree.Root.Prop("compatible"); ok {
			rec.Set("compatible", record.String(p.Text()))
		}
	}
	rec.Set("node_count", record.Int(int64(tree.NodeCount())))
	rec.Set("tree_status", record.String(tree.Status.String()))
	return rec
}

func (c *DTCollector) nodeRecord(path string, n *fdt.Node, status fdt.Status, opts Options) *record.Record {
	rec := record.New().
		Set("path", record.String(path)).
		Match("path", "compatible")

	name := n.Name
	if name == "" {
		name = "/"
	}
	rec.Set("name", record.String(name))

	if p, ok := n.Prop("compatible"); ok {
		rec.Set("compatible", record.String(p.Text()))
	}
	// "okay"/"ok"/absent means enabled
	if s, ok := n.PropString("status"); ok {
		rec.Set("status", record.String(s))
	}

	if opts.Verbose {
		if p, ok := n.Prop("reg"); ok {
			rec.Set("reg", record.String(p.Text()))
		}
	}

	return rec
}

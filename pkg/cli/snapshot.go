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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysq/pkg/collector"
	"github.com/NVIDIA/sysq/pkg/encode"
	"github.com/NVIDIA/sysq/pkg/filter"
	"github.com/NVIDIA/sysq/pkg/record"
	"github.com/NVIDIA/sysq/pkg/version"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "capture every domain as a single JSON document",
		Description: `Run every collector in a fixed order and emit one JSON object:
the tool version plus one array of records per domain. Output is
always JSON; -j is implied. Domains the system does not have appear
as empty arrays.`,
		Flags: globalFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSnapshot(ctx, cmd)
		},
	}
}

// runSnapshot performs the linear all-domain pass. A domain that cannot be
// collected still contributes an empty set; only cancellation stops the
// pass.
func runSnapshot(ctx context.Context, cmd *cli.Command) error {
	r := newReader(cmd)
	opts := collector.Options{
		Verbose: cmd.Bool("verbose"),
		Human:   cmd.Bool("human"),
	}
	pattern := filter.Clamp(cmd.String("filter"))

	factory := collector.NewDefaultFactory()
	sets := make([]*record.Set, 0, len(factory.All()))
	for _, col := range factory.All() {
		set, err := col.Collect(ctx, r, opts)
		if err != nil {
			return err
		}
		sets = append(sets, set.Filter(pattern))
	}

	out, closeOut := openOutput(cmd.String("output"))
	defer closeOut()

	return encode.JSONSnapshot(out, sets, version.Version, cmd.Bool("pretty"))
}

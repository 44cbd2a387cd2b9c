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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysq/pkg/collector"
	"github.com/NVIDIA/sysq/pkg/encode"
	"github.com/NVIDIA/sysq/pkg/filter"
	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/logging"
	"github.com/NVIDIA/sysq/pkg/version"
)

// globalFlags returns the flag set shared by every data command. A fresh
// slice per command keeps urfave/cli from aliasing flag state across
// subcommands.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "emit JSON instead of text lines",
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "indent JSON output (implies nothing without --json)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "emit additional fields per record",
		},
		&cli.BoolFlag{
			Name:    "human",
			Aliases: []string{"h"},
			Usage:   "render sizes in human-readable 1024-based units",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "case-insensitive substring filter over match fields",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "log every attempted read to stderr",
			Sources: cli.EnvVars("SYSQ_DEBUG"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write output to file instead of stdout",
		},
	}
}

func domainCmd(col collector.Collector, usage string) *cli.Command {
	return &cli.Command{
		Name:  col.Domain(),
		Usage: usage,
		Flags: globalFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDomain(ctx, cmd, col)
		},
	}
}

// runDomain executes one domain pass: collect, filter, encode. The pass
// itself never fails over missing data; only context cancellation and
// output write failures surface as errors.
func runDomain(ctx context.Context, cmd *cli.Command, col collector.Collector) error {
	r := newReader(cmd)
	opts := collector.Options{
		Verbose: cmd.Bool("verbose"),
		Human:   cmd.Bool("human"),
	}

	set, err := col.Collect(ctx, r, opts)
	if err != nil {
		return err
	}
	set = set.Filter(filter.Clamp(cmd.String("filter")))

	out, closeOut := openOutput(cmd.String("output"))
	defer closeOut()

	if cmd.Bool("json") {
		return encode.JSONSet(out, set, version.Version, cmd.Bool("pretty"))
	}
	return encode.Text(out, set)
}

// newReader builds the bounded reader, wiring its diagnostics to the
// structured logger when -D / SYSQ_DEBUG is set.
func newReader(cmd *cli.Command) *fsreader.Reader {
	level := "warn"
	if cmd.Bool("debug") {
		level = "debug"
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version.Version, level)
	if !cmd.Bool("debug") {
		return fsreader.New()
	}
	return fsreader.New(fsreader.WithLogger(slog.Default()))
}

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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sysq/pkg/collector"
	"github.com/NVIDIA/sysq/pkg/version"
)

const name = "sysq"

func init() {
	// free the -h shorthand for --human; help stays reachable as --help
	cli.HelpFlag = &cli.BoolFlag{
		Name:  "help",
		Usage: "show help",
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "query hardware and kernel state from /sys and /proc",
		Version: version.Version,
		Description: `sysq reads the /sys and /proc pseudo-filesystems and prints what it
finds as field_name=value lines or JSON. Missing subsystems and
unreadable attributes are normal: the pass always completes with
whatever data the kernel exposes, and exits 0.`,
		Commands: append(domainCmds(), snapshotCmd(), versionCmd()),
	}
}

// Execute runs the CLI. It is called by main and installs signal handling
// for graceful cancellation mid-pass.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Fprintf(cmd.Writer, "%s %s\n", name, version.Get())
			return nil
		},
	}
}

// domainCmds returns one subcommand per collector domain, in snapshot
// order.
func domainCmds() []*cli.Command {
	f := collector.NewDefaultFactory()
	specs := []struct {
		create func() collector.Collector
		usage  string
	}{
		{f.CreateOSCollector, "OS release and kernel identity"},
		{f.CreateCPUCollector, "CPU summary from /proc/cpuinfo"},
		{f.CreateMemCollector, "memory summary from /proc/meminfo"},
		{f.CreatePCICollector, "PCI devices from /sys/bus/pci"},
		{f.CreateUSBCollector, "USB devices from /sys/bus/usb"},
		{f.CreateBlockCollector, "block devices from /sys/block"},
		{f.CreateNetCollector, "network interfaces from /sys/class/net"},
		{f.CreateMountsCollector, "mounted filesystems from /proc/self/mounts"},
		{f.CreateThermalCollector, "temperature sensors"},
		{f.CreatePowerCollector, "power supplies from /sys/class/power_supply"},
		{f.CreateKModCollector, "loaded kernel modules from /proc/modules"},
		{f.CreateDTCollector, "device tree from /sys/firmware/fdt"},
	}

	cmds := make([]*cli.Command, 0, len(specs))
	for _, s := range specs {
		col := s.create()
		cmds = append(cmds, domainCmd(col, s.usage))
	}
	return cmds
}

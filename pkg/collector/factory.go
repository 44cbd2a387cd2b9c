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

	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// Options carry the per-invocation switches into collection. Verbose adds
// fields to each record; Human switches size fields to 1024-based units.
type Options struct {
	Verbose bool
	Human   bool
}

// Collector gathers one domain's records.
type Collector interface {
	Domain() string
	Collect(ctx context.Context, r *fsreader.Reader, opts Options) (*record.Set, error)
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreatePCICollector() Collector
	CreateUSBCollector() Collector
	CreateBlockCollector() Collector
	CreateNetCollector() Collector
	CreateCPUCollector() Collector
	CreateMemCollector() Collector
	CreateMountsCollector() Collector
	CreateThermalCollector() Collector
	CreatePowerCollector() Collector
	CreateKModCollector() Collector
	CreateOSCollector() Collector
	CreateDTCollector() Collector
	All() []Collector
}

// FactoryOption configures a DefaultFactory.
type FactoryOption func(*DefaultFactory)

// WithRoot overrides the filesystem root the collectors read under.
// Defaults to "/"; tests point it at fixture trees.
func WithRoot(root string) FactoryOption {
	return func(f *DefaultFactory) {
		if root != "" {
			f.Root = root
		}
	}
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Root string
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...FactoryOption) *DefaultFactory {
	f := &DefaultFactory{Root: "/"}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreatePCICollector creates a PCI device collector.
func (f *DefaultFactory) CreatePCICollector() Collector {
	return &PCICollector{root: f.Root}
}

// CreateUSBCollector creates a USB device collector.
func (f *DefaultFactory) CreateUSBCollector() Collector {
	return &USBCollector{root: f.Root}
}

// CreateBlockCollector creates a block device collector.
func (f *DefaultFactory) CreateBlockCollector() Collector {
	return &BlockCollector{root: f.Root}
}

// CreateNetCollector creates a network interface collector.
func (f *DefaultFactory) CreateNetCollector() Collector {
	return &NetCollector{root: f.Root}
}

// CreateCPUCollector creates a CPU info collector.
func (f *DefaultFactory) CreateCPUCollector() Collector {
	return &CPUCollector{root: f.Root}
}

// CreateMemCollector creates a memory info collector.
func (f *DefaultFactory) CreateMemCollector() Collector {
	return &MemCollector{root: f.Root}
}

// CreateMountsCollector creates a mounted filesystem collector.
func (f *DefaultFactory) CreateMountsCollector() Collector {
	return &MountsCollector{root: f.Root}
}

// CreateThermalCollector creates a thermal sensor collector.
func (f *DefaultFactory) CreateThermalCollector() Collector {
	return &ThermalCollector{root: f.Root}
}

// CreatePowerCollector creates a power supply collector.
func (f *DefaultFactory) CreatePowerCollector() Collector {
	return &PowerCollector{root: f.Root}
}

// CreateKModCollector creates a kernel module collector.
func (f *DefaultFactory) CreateKModCollector() Collector {
	return &KModCollector{root: f.Root}
}

// CreateOSCollector creates an OS release collector.
func (f *DefaultFactory) CreateOSCollector() Collector {
	return &OSCollector{root: f.Root}
}

// CreateDTCollector creates a device tree collector.
func (f *DefaultFactory) CreateDTCollector() Collector {
	return &DTCollector{root: f.Root}
}

// All returns every collector in snapshot order. The order is fixed: it is
// the key order of the aggregate JSON document.
func (f *DefaultFactory) All() []Collector {
	return []Collector{
		f.CreateOSCollector(),
		f.CreateCPUCollector(),
		f.CreateMemCollector(),
		f.CreatePCICollector(),
		f.CreateUSBCollector(),
		f.CreateBlockCollector(),
		f.CreateNetCollector(),
		f.CreateMountsCollector(),
		f.CreateThermalCollector(),
		f.CreatePowerCollector(),
		f.CreateKModCollector(),
		f.CreateDTCollector(),
	}
}

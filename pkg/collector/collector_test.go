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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sysq/pkg/fsreader"
	"github.com/NVIDIA/sysq/pkg/record"
)

// writeFixture creates a file under a fixture root, creating parents.
func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// linkFixture creates a symlink under a fixture root.
func linkFixture(t *testing.T, root, rel, target string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.Symlink(target, path))
}

// field fetches a present field or fails the test.
func field(t *testing.T, rec *record.Record, name string) record.Value {
	t.Helper()
	v, ok := rec.Get(name)
	require.True(t, ok, "field %q missing", name)
	require.False(t, v.IsAbsent(), "field %q absent", name)
	return v
}

func assertNoField(t *testing.T, rec *record.Record, name string) {
	t.Helper()
	v, ok := rec.Get(name)
	if ok {
		assert.True(t, v.IsAbsent(), "field %q unexpectedly present", name)
	}
}

func collect(t *testing.T, c Collector, opts Options) *record.Set {
	t.Helper()
	set, err := c.Collect(context.Background(), fsreader.New(), opts)
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.Equal(t, c.Domain(), set.Domain)
	return set
}

func TestFactorySnapshotOrder(t *testing.T) {
	f := NewDefaultFactory()
	assert.Equal(t, "/", f.Root)

	var domains []string
	for _, c := range f.All() {
		domains = append(domains, c.Domain())
	}
	assert.Equal(t, []string{
		"os", "cpu", "mem", "pci", "usb", "block",
		"net", "mounts", "thermal", "power", "kmod", "dt",
	}, domains)
}

func TestFactoryWithRoot(t *testing.T) {
	f := NewDefaultFactory(WithRoot("/tmp/fixture"))
	assert.Equal(t, "/tmp/fixture", f.Root)

	// empty override keeps the default
	f = NewDefaultFactory(WithRoot(""))
	assert.Equal(t, "/", f.Root)
}

func TestCollectHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewDefaultFactory(WithRoot(t.TempDir()))
	for _, c := range f.All() {
		_, err := c.Collect(ctx, fsreader.New(), Options{})
		assert.ErrorIs(t, err, context.Canceled, "domain %s", c.Domain())
	}
}

func TestCollectEmptyRootYieldsEmptySets(t *testing.T) {
	// a root with none of the pseudo-files present is not an error
	f := NewDefaultFactory(WithRoot(t.TempDir()))
	for _, c := range f.All() {
		set, err := c.Collect(context.Background(), fsreader.New(), Options{})
		require.NoError(t, err, "domain %s", c.Domain())
		if c.Domain() == "os" {
			// the identity record is emitted even when nothing was readable
			assert.Equal(t, 1, set.Len())
			continue
		}
		assert.Equal(t, 0, set.Len(), "domain %s", c.Domain())
	}
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockFixtureRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	disk := "sys/block/nvme0n1"
	writeFixture(t, root, disk+"/size", "2097152\n")
	writeFixture(t, root, disk+"/dev", "259:0\n")
	writeFixture(t, root, disk+"/ro", "0\n")
	writeFixture(t, root, disk+"/removable", "0\n")
	writeFixture(t, root, disk+"/device/model", "Samsung SSD 990 PRO\n")
	writeFixture(t, root, disk+"/queue/hw_sector_size", "512\n")
	writeFixture(t, root, disk+"/queue/rotational", "0\n")
	writeFixture(t, root, disk+"/queue/scheduler", "[none] mq-deadline kyber\n")

	part := disk + "/nvme0n1p1"
	writeFixture(t, root, part+"/size", "1048576\n")
	writeFixture(t, root, part+"/dev", "259:1\n")
	writeFixture(t, root, part+"/ro", "0\n")

	writeFixture(t, root, "sys/block/loop0/size", "0\n")
	writeFixture(t, root, "sys/block/loop0/dev", "7:0\n")

	writeFixture(t, root, "proc/self/mounts",
		"/dev/nvme0n1p1 /boot ext4 rw 0 0\n"+
			"/dev/nvme0n1p1 /other ext4 rw 0 0\n"+
			"tmpfs /run tmpfs rw 0 0\n")

	return root
}

func TestBlockCollectBaseline(t *testing.T) {
	c := NewDefaultFactory(WithRoot(blockFixtureRoot(t))).CreateBlockCollector()
	set := collect(t, c, Options{})

	// lexical disk order: loop0 first, then the disk followed by its partition
	require.Equal(t, 3, set.Len())
	loop, disk, part := set.Records[0], set.Records[1], set.Records[2]

	assert.Equal(t, "loop0", field(t, loop, "name").Text())
	assert.Equal(t, "loop", field(t, loop, "type").Text())

	assert.Equal(t, "nvme0n1", field(t, disk, "name").Text())
	assert.Equal(t, "disk", field(t, disk, "type").Text())
	assert.Equal(t, "259:0", field(t, disk, "majmin").Text())
	assert.Equal(t, "2097152", field(t, disk, "size_sectors").Text())
	assertNoField(t, disk, "parent")
	assertNoField(t, disk, "mountpoint")

	assert.Equal(t, "nvme0n1p1", field(t, part, "name").Text())
	assert.Equal(t, "part", field(t, part, "type").Text())
	assert.Equal(t, "nvme0n1", field(t, part, "parent").Text())
	// first mount entry wins for a device mounted twice
	assert.Equal(t, "/boot", field(t, part, "mountpoint").Text())
}

func TestBlockCollectHuman(t *testing.T) {
	c := NewDefaultFactory(WithRoot(blockFixtureRoot(t))).CreateBlockCollector()
	set := collect(t, c, Options{Human: true})

	require.Equal(t, 3, set.Len())
	disk, part := set.Records[1], set.Records[2]

	// 2097152 sectors * 512 bytes
	assert.Equal(t, "1G", field(t, disk, "size").Text())
	// partitions fall back to 512-byte sectors
	assert.Equal(t, "512M", field(t, part, "size").Text())
	assertNoField(t, disk, "size_sectors")
}

func TestBlockCollectVerbose(t *testing.T) {
	c := NewDefaultFactory(WithRoot(blockFixtureRoot(t))).CreateBlockCollector()
	set := collect(t, c, Options{Verbose: true})

	require.Equal(t, 3, set.Len())
	disk, part := set.Records[1], set.Records[2]

	assert.Equal(t, "512", field(t, disk, "sector_size").Text())
	assert.Equal(t, "false", field(t, disk, "ro").Text())
	assert.Equal(t, "false", field(t, disk, "removable").Text())
	assert.Equal(t, "Samsung SSD 990 PRO", field(t, disk, "model").Text())
	assert.Equal(t, "false", field(t, disk, "rotational").Text())
	assert.Equal(t, "none", field(t, disk, "scheduler").Text())

	// physical attributes belong to the disk, not the partition
	assertNoField(t, part, "model")
	assertNoField(t, part, "removable")
	assertNoField(t, part, "scheduler")
}

func TestParseDevNumbers(t *testing.T) {
	tests := []struct {
		in    string
		major uint64
		minor uint64
		ok    bool
	}{
		{"259:0", 259, 0, true},
		{"8:16", 8, 16, true},
		{"no-colon", 0, 0, false},
		{"1:x", 0, 0, false},
		{"x:1", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		major, minor, ok := parseDevNumbers(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.major, major)
			assert.Equal(t, tt.minor, minor)
		}
	}
}

func TestActiveScheduler(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"mq-deadline kyber [none]", "none", true},
		{"[mq-deadline] kyber none", "mq-deadline", true},
		{"none", "", false},
		{"]backwards[", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := activeScheduler(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

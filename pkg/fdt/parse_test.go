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

package fdt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawBlob assembles a blob from hand-built structure and string blocks,
// using the same layout Flatten emits.
func rawBlob(structBlk, strBlk []byte) []byte {
	const rsvMapSize = 16
	offMemRsv := uint32(headerSize)
	offStruct := offMemRsv + rsvMapSize
	offStrings := offStruct + uint32(len(structBlk))
	total := offStrings + uint32(len(strBlk))

	var out bytes.Buffer
	for _, v := range []uint32{
		Magic, total, offStruct, offStrings, offMemRsv,
		17, 16, 0, uint32(len(strBlk)), uint32(len(structBlk)),
	} {
		writeU32(&out, v)
	}
	out.Write(make([]byte, rsvMapSize))
	out.Write(structBlk)
	out.Write(strBlk)
	return out.Bytes()
}

func beginNode(b *bytes.Buffer, name string) {
	writeU32(b, tokenBeginNode)
	b.WriteString(name)
	b.WriteByte(0)
	pad(b)
}

func sampleTree() *Node {
	return &Node{
		Name: "",
		Props: []Property{
			interpret("model", []byte("Jetson AGX Orin\x00")),
			interpret("compatible", []byte("nvidia,orin\x00nvidia,tegra234\x00")),
		},
		Children: []*Node{
			{
				Name: "cpus",
				Children: []*Node{
					{
						Name: "cpu@0",
						Props: []Property{
							interpret("reg", []byte{0, 0, 0, 0}),
							interpret("enable-method", []byte("psci\x00")),
						},
					},
				},
			},
			{
				Name:  "chosen",
				Props: []Property{interpret("ranges", []byte{})},
			},
		},
	}
}

func TestParseFlattenRoundTrip(t *testing.T) {
	blob := Flatten(sampleTree())
	tree := Parse(blob)

	require.NotNil(t, tree.Root)
	assert.Equal(t, StatusComplete, tree.Status)
	assert.Equal(t, 4, tree.NodeCount())
	assert.Equal(t, sampleTree(), tree.Root)

	// a second flatten of the parsed tree is byte-identical
	assert.Equal(t, blob, Flatten(tree.Root))
}

func TestParseHeaderValidation(t *testing.T) {
	valid := Flatten(sampleTree())

	patch := func(off int, v uint32) []byte {
		b := bytes.Clone(valid)
		binary.BigEndian.PutUint32(b[off:], v)
		return b
	}

	tests := []struct {
		name string
		blob []byte
	}{
		{"empty", nil},
		{"shorter than header", valid[:headerSize-1]},
		{"bad magic", patch(0, 0xdeadbeef)},
		{"struct offset beyond buffer", patch(8, uint32(len(valid)+4))},
		{"struct size overflows buffer", patch(36, 0xffffff00)},
		{"strings offset beyond buffer", patch(12, uint32(len(valid)+4))},
		{"rsvmap offset beyond buffer", patch(16, uint32(len(valid)+4))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Parse(tt.blob)
			assert.Equal(t, StatusMalformed, tree.Status)
			assert.Nil(t, tree.Root)
			assert.Equal(t, 0, tree.NodeCount())
		})
	}
}

func TestParseDepthCap(t *testing.T) {
	// 65 nested BEGIN_NODE tokens, no END_NODE, no END
	var structBlk bytes.Buffer
	beginNode(&structBlk, "")
	for i := 0; i < MaxDepth; i++ {
		beginNode(&structBlk, "n")
	}

	tree := Parse(rawBlob(structBlk.Bytes(), nil))
	assert.Equal(t, StatusTruncated, tree.Status)
	require.NotNil(t, tree.Root)

	// everything up to the cap is kept: the root plus 63 descendants
	assert.Equal(t, MaxDepth, tree.NodeCount())
}

func TestParseUnmatchedEndNode(t *testing.T) {
	var structBlk bytes.Buffer
	writeU32(&structBlk, tokenEndNode)

	tree := Parse(rawBlob(structBlk.Bytes(), nil))
	assert.Equal(t, StatusMalformed, tree.Status)
	assert.Nil(t, tree.Root)
}

func TestParseSecondTopLevelNode(t *testing.T) {
	var structBlk bytes.Buffer
	beginNode(&structBlk, "")
	writeU32(&structBlk, tokenEndNode)
	beginNode(&structBlk, "rogue")

	tree := Parse(rawBlob(structBlk.Bytes(), nil))
	assert.Equal(t, StatusMalformed, tree.Status)
	require.NotNil(t, tree.Root, "first root survives the violation")
	assert.Equal(t, 1, tree.NodeCount())
}

func TestParsePropertyOutsideNode(t *testing.T) {
	var structBlk bytes.Buffer
	writeU32(&structBlk, tokenProp)
	writeU32(&structBlk, 0) // length
	writeU32(&structBlk, 0) // name offset

	tree := Parse(rawBlob(structBlk.Bytes(), []byte("status\x00")))
	assert.Equal(t, StatusMalformed, tree.Status)
	assert.Nil(t, tree.Root)
}

func TestParseBadStringOffset(t *testing.T) {
	var structBlk bytes.Buffer
	beginNode(&structBlk, "")
	writeU32(&structBlk, tokenProp)
	writeU32(&structBlk, 0)
	writeU32(&structBlk, 100) // beyond the string block

	tree := Parse(rawBlob(structBlk.Bytes(), []byte("ok\x00")))
	assert.Equal(t, StatusMalformed, tree.Status)
	require.NotNil(t, tree.Root, "node decoded before the violation is kept")
	assert.Empty(t, tree.Root.Props)
}

func TestParsePropPayloadOverrunsBlock(t *testing.T) {
	var structBlk bytes.Buffer
	beginNode(&structBlk, "")
	writeU32(&structBlk, tokenProp)
	writeU32(&structBlk, 0xffff) // longer than the remaining block
	writeU32(&structBlk, 0)

	tree := Parse(rawBlob(structBlk.Bytes(), []byte("reg\x00")))
	assert.Equal(t, StatusMalformed, tree.Status)
}

func TestParseEndWithOpenNodes(t *testing.T) {
	var structBlk bytes.Buffer
	beginNode(&structBlk, "")
	beginNode(&structBlk, "child")
	writeU32(&structBlk, tokenEnd)

	tree := Parse(rawBlob(structBlk.Bytes(), nil))
	assert.Equal(t, StatusTruncated, tree.Status)
	assert.Equal(t, 2, tree.NodeCount())
}

func TestParseStructExhaustedWithoutEnd(t *testing.T) {
	var structBlk bytes.Buffer
	beginNode(&structBlk, "")
	writeU32(&structBlk, tokenEndNode)

	tree := Parse(rawBlob(structBlk.Bytes(), nil))
	assert.Equal(t, StatusTruncated, tree.Status)
	assert.Equal(t, 1, tree.NodeCount())
}

func TestParseUnknownToken(t *testing.T) {
	var structBlk bytes.Buffer
	beginNode(&structBlk, "")
	writeU32(&structBlk, 0x7)

	tree := Parse(rawBlob(structBlk.Bytes(), nil))
	assert.Equal(t, StatusMalformed, tree.Status)
}

func TestParseNopTokensIgnored(t *testing.T) {
	var structBlk bytes.Buffer
	writeU32(&structBlk, tokenNop)
	beginNode(&structBlk, "")
	writeU32(&structBlk, tokenNop)
	writeU32(&structBlk, tokenEndNode)
	writeU32(&structBlk, tokenEnd)

	tree := Parse(rawBlob(structBlk.Bytes(), nil))
	assert.Equal(t, StatusComplete, tree.Status)
	assert.Equal(t, 1, tree.NodeCount())
}

func TestWalkPaths(t *testing.T) {
	tree := Parse(Flatten(sampleTree()))
	require.Equal(t, StatusComplete, tree.Status)

	var paths []string
	tree.Walk(func(path string, n *Node) {
		paths = append(paths, path)
	})
	assert.Equal(t, []string{"/", "/cpus", "/cpus/cpu@0", "/chosen"}, paths)
}

func TestNodeLookups(t *testing.T) {
	tree := Parse(Flatten(sampleTree()))
	require.NotNil(t, tree.Root)

	model, ok := tree.Root.PropString("model")
	require.True(t, ok)
	assert.Equal(t, "Jetson AGX Orin", model)

	compat, ok := tree.Root.Prop("compatible")
	require.True(t, ok)
	assert.Equal(t, "nvidia,orin, nvidia,tegra234", compat.Text())

	_, ok = tree.Root.Prop("no-such-prop")
	assert.False(t, ok)

	_, ok = tree.Root.PropString("no-such-prop")
	assert.False(t, ok)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "complete", StatusComplete.String())
	assert.Equal(t, "truncated", StatusTruncated.String())
	assert.Equal(t, "malformed", StatusMalformed.String())
}

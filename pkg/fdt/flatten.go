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
)

// Flatten serializes a node tree back into a valid blob. Parsing the result
// yields an identical tree, which is the round-trip property the tests
// lean on. A nil root produces a header-only blob with an empty structure
// block.
func Flatten(root *Node) []byte {
	var strTab bytes.Buffer
	offsets := make(map[string]uint32)

	var structBlk bytes.Buffer
	if root != nil {
		flattenNode(&structBlk, root, &strTab, offsets)
	}
	writeU32(&structBlk, tokenEnd)

	// layout: header, reserved-memory map terminator, struct, strings
	const rsvMapSize = 16
	offMemRsv := uint32(headerSize)
	offStruct := offMemRsv + rsvMapSize
	offStrings := offStruct + uint32(structBlk.Len())
	total := offStrings + uint32(strTab.Len())

	var out bytes.Buffer
	writeU32(&out, Magic)
	writeU32(&out, total)
	writeU32(&out, offStruct)
	writeU32(&out, offStrings)
	writeU32(&out, offMemRsv)
	writeU32(&out, 17) // version
	writeU32(&out, 16) // last compatible version
	writeU32(&out, 0)  // boot cpu id
	writeU32(&out, uint32(strTab.Len()))
	writeU32(&out, uint32(structBlk.Len()))
	out.Write(make([]byte, rsvMapSize))
	out.Write(structBlk.Bytes())
	out.Write(strTab.Bytes())
	return out.Bytes()
}

func flattenNode(b *bytes.Buffer, n *Node, strTab *bytes.Buffer, offsets map[string]uint32) {
	writeU32(b, tokenBeginNode)
	b.WriteString(n.Name)
	b.WriteByte(0)
	pad(b)
	for _, p := range n.Props {
		writeU32(b, tokenProp)
		writeU32(b, uint32(len(p.Raw)))
		writeU32(b, internString(strTab, offsets, p.Name))
		b.Write(p.Raw)
		pad(b)
	}
	for _, c := range n.Children {
		flattenNode(b, c, strTab, offsets)
	}
	writeU32(b, tokenEndNode)
}

func internString(strTab *bytes.Buffer, offsets map[string]uint32, s string) uint32 {
	if off, ok := offsets[s]; ok {
		return off
	}
	off := uint32(strTab.Len())
	offsets[s] = off
	strTab.WriteString(s)
	strTab.WriteByte(0)
	return off
}

func writeU32(b *bytes.Buffer, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.Write(buf[:])
}

func pad(b *bytes.Buffer) {
	for b.Len()%4 != 0 {
		b.WriteByte(0)
	}
}

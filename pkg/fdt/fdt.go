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

const (
	// Magic is the big-endian blob signature.
	Magic = 0xd00dfeed

	// MaxDepth caps node nesting. Real trees rarely exceed 15 levels.
	MaxDepth = 64

	// MaxBlobSize caps the blob read from /sys/firmware/fdt.
	MaxBlobSize = 16 << 20

	headerSize = 40

	tokenBeginNode = 0x00000001
	tokenEndNode   = 0x00000002
	tokenProp      = 0x00000003
	tokenNop       = 0x00000004
	tokenEnd       = 0x00000009
)

// Status reports how far the parse got.
type Status int

const (
	// StatusComplete means the whole structure block decoded cleanly.
	StatusComplete Status = iota
	// StatusTruncated means the walk stopped early (depth cap or data ran
	// out) but everything decoded so far is valid.
	StatusTruncated
	// StatusMalformed means the header or structure block is corrupt; the
	// tree holds whatever decoded before the violation.
	StatusMalformed
)

// String renders the status for record fields and logs.
func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusTruncated:
		return "truncated"
	default:
		return "malformed"
	}
}

// Header is the 40-byte big-endian blob header.
type Header struct {
	Magic           uint32
	TotalSize       uint32
	OffStruct       uint32
	OffStrings      uint32
	OffMemRsvMap    uint32
	Version         uint32
	LastCompVersion uint32
	BootCPUID       uint32
	SizeStrings     uint32
	SizeStruct      uint32
}

// Node is one tree node. The parent owns its children; there is no
// child-to-parent pointer, so the structure is cycle free.
type Node struct {
	Name     string
	Props    []Property
	Children []*Node
}

// Prop returns the named property.
func (n *Node) Prop(name string) (Property, bool) {
	for _, p := range n.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// PropString returns the first string of the named property.
func (n *Node) PropString(name string) (string, bool) {
	p, ok := n.Prop(name)
	if !ok || p.Kind != PropString || len(p.Strings) == 0 {
		return "", false
	}
	return p.Strings[0], true
}

// Tree is the parse result: the decoded root (nil when the header was
// invalid) plus the status of the walk.
type Tree struct {
	Header Header
	Root   *Node
	Status Status
}

// NodeCount returns the number of decoded nodes.
func (t *Tree) NodeCount() int {
	return countNodes(t.Root)
}

func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

// Walk visits every node in document order, passing its slash-joined path
// from the root. The root visits as "/". Recursion depth is bounded by the
// parser's MaxDepth cap.
func (t *Tree) Walk(fn func(path string, n *Node)) {
	if t.Root == nil {
		return
	}
	walk(t.Root, "/", fn)
}

func walk(n *Node, path string, fn func(string, *Node)) {
	fn(path, n)
	for _, c := range n.Children {
		childPath := path + c.Name
		if path != "/" {
			childPath = path + "/" + c.Name
		}
		walk(c, childPath, fn)
	}
}

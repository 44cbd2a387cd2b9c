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

// Parse decodes a flattened device tree blob. It never returns an error:
// corrupt input yields a Tree with StatusMalformed (and whatever nodes
// decoded before the violation), excessive nesting or early data exhaustion
// yields StatusTruncated.
func Parse(data []byte) *Tree {
	t := &Tree{Status: StatusMalformed}
	if len(data) < headerSize {
		return t
	}
	t.Header = parseHeader(data)
	h := t.Header
	if h.Magic != Magic {
		return t
	}
	// Every declared region must lie inside the buffer before the walk
	// starts. uint64 arithmetic avoids offset+size wraparound.
	if !regionOK(len(data), h.OffStruct, h.SizeStruct) ||
		!regionOK(len(data), h.OffStrings, h.SizeStrings) ||
		uint64(h.OffMemRsvMap) > uint64(len(data)) {
		return t
	}

	w := walker{
		data:    data,
		pos:     int(h.OffStruct),
		end:     int(h.OffStruct) + int(h.SizeStruct),
		strings: data[h.OffStrings : uint64(h.OffStrings)+uint64(h.SizeStrings)],
	}
	t.Root, t.Status = w.run()
	return t
}

func parseHeader(data []byte) Header {
	be := binary.BigEndian
	return Header{
		Magic:           be.Uint32(data[0:]),
		TotalSize:       be.Uint32(data[4:]),
		OffStruct:       be.Uint32(data[8:]),
		OffStrings:      be.Uint32(data[12:]),
		OffMemRsvMap:    be.Uint32(data[16:]),
		Version:         be.Uint32(data[20:]),
		LastCompVersion: be.Uint32(data[24:]),
		BootCPUID:       be.Uint32(data[28:]),
		SizeStrings:     be.Uint32(data[32:]),
		SizeStruct:      be.Uint32(data[36:]),
	}
}

func regionOK(bufLen int, off, size uint32) bool {
	return uint64(off)+uint64(size) <= uint64(bufLen)
}

// walker decodes the structure block token stream. Nesting is tracked with
// an explicit node stack whose length is the depth counter.
type walker struct {
	data    []byte
	pos     int
	end     int
	strings []byte
	stack   []*Node
	root    *Node
}

// run walks tokens until END, exhaustion, or a violation.
func (w *walker) run() (*Node, Status) {
	for {
		tok, ok := w.u32()
		if !ok {
			// struct block ran out before an END token
			return w.root, StatusTruncated
		}
		switch tok {
		case tokenBeginNode:
			name, ok := w.nodeName()
			if !ok {
				return w.root, StatusMalformed
			}
			if len(w.stack) >= MaxDepth {
				return w.root, StatusTruncated
			}
			n := &Node{Name: name}
			if w.root == nil {
				w.root = n
			} else if len(w.stack) == 0 {
				// second top-level node
				return w.root, StatusMalformed
			} else {
				parent := w.stack[len(w.stack)-1]
				parent.Children = append(parent.Children, n)
			}
			w.stack = append(w.stack, n)
		case tokenEndNode:
			if len(w.stack) == 0 {
				return w.root, StatusMalformed
			}
			w.stack = w.stack[:len(w.stack)-1]
		case tokenProp:
			if !w.prop() {
				return w.root, StatusMalformed
			}
		case tokenNop:
			// skip
		case tokenEnd:
			if len(w.stack) != 0 {
				return w.root, StatusTruncated
			}
			return w.root, StatusComplete
		default:
			return w.root, StatusMalformed
		}
	}
}

// u32 reads the next big-endian word from the structure block.
func (w *walker) u32() (uint32, bool) {
	if w.pos+4 > w.end {
		return 0, false
	}
	v := binary.BigEndian.Uint32(w.data[w.pos:])
	w.pos += 4
	return v, true
}

// nodeName reads the NUL-terminated name after BEGIN_NODE and pads the
// cursor to 4-byte alignment.
func (w *walker) nodeName() (string, bool) {
	i := bytes.IndexByte(w.data[w.pos:w.end], 0)
	if i < 0 {
		return "", false
	}
	name := string(w.data[w.pos : w.pos+i])
	w.pos += i + 1
	w.align()
	return name, true
}

// prop decodes a PROP token body: declared payload length, string-table
// offset for the name, then the payload padded to alignment.
func (w *walker) prop() bool {
	length, ok := w.u32()
	if !ok {
		return false
	}
	nameOff, ok := w.u32()
	if !ok {
		return false
	}
	name, ok := w.stringAt(nameOff)
	if !ok {
		return false
	}
	if int64(w.pos)+int64(length) > int64(w.end) {
		return false
	}
	if len(w.stack) == 0 {
		// property outside any node
		return false
	}
	raw := make([]byte, length)
	copy(raw, w.data[w.pos:w.pos+int(length)])
	w.pos += int(length)
	w.align()

	n := w.stack[len(w.stack)-1]
	n.Props = append(n.Props, interpret(name, raw))
	return true
}

// stringAt resolves a property name from the string block, bounded by the
// declared string-block size.
func (w *walker) stringAt(off uint32) (string, bool) {
	if uint64(off) >= uint64(len(w.strings)) {
		return "", false
	}
	i := bytes.IndexByte(w.strings[off:], 0)
	if i < 0 {
		return "", false
	}
	return string(w.strings[off : int(off)+i]), true
}

func (w *walker) align() {
	if rem := w.pos % 4; rem != 0 {
		w.pos += 4 - rem
	}
}

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

package fsreader

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxAttrSize is the default read limit for a single sysfs attribute.
// Real attributes are a page or less; anything larger is suspect.
const MaxAttrSize = 64 * 1024

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the diagnostic logger. Defaults to a discard logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Reader) {
		if log != nil {
			r.log = log
		}
	}
}

// Reader performs bounded, fail-soft reads of pseudo-filesystem trees.
// The zero value is not usable; construct with New.
type Reader struct {
	log *slog.Logger
}

// New creates a Reader with the provided options.
func New(opts ...Option) *Reader {
	r := &Reader{
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadFile reads up to maxLen bytes from path. The truncated result reports
// whether the file held more than maxLen bytes; the read is never retried or
// expanded. ok is false when the file is missing, unreadable, or maxLen is
// not positive.
func (r *Reader) ReadFile(path string, maxLen int) (data []byte, truncated, ok bool) {
	if maxLen <= 0 {
		r.log.Debug("read rejected", "path", path, "reason", "non-positive limit")
		return nil, false, false
	}

	f, err := os.Open(path)
	if err != nil {
		r.log.Debug("read failed", "path", path, "error", err)
		return nil, false, false
	}
	defer f.Close()

	// Read one byte past the limit to detect truncation. Sysfs attributes
	// report a page-sized st_size regardless of content, so stat is useless
	// here.
	buf, err := io.ReadAll(io.LimitReader(f, int64(maxLen)+1))
	if err != nil {
		r.log.Debug("read failed", "path", path, "error", err)
		return nil, false, false
	}

	if len(buf) > maxLen {
		buf = buf[:maxLen]
		truncated = true
	}

	r.log.Debug("read", "path", path, "bytes", len(buf), "truncated", truncated)
	return buf, truncated, true
}

// ReadString reads an attribute as a whitespace-trimmed string. An empty
// result after trimming counts as absent, matching kernel attributes that
// exist but hold nothing.
func (r *Reader) ReadString(path string, maxLen int) (string, bool) {
	data, _, ok := r.ReadFile(path, maxLen)
	if !ok {
		return "", false
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return "", false
	}
	return s, true
}

// ReadAttr reads a single attribute with the default bound.
func (r *Reader) ReadAttr(path string) (string, bool) {
	return r.ReadString(path, MaxAttrSize)
}

// ReadUint reads an attribute and parses it as a decimal unsigned integer.
func (r *Reader) ReadUint(path string) (uint64, bool) {
	s, ok := r.ReadAttr(path)
	if !ok {
		return 0, false
	}
	return ParseUint(s, 10)
}

// ReadInt reads an attribute and parses it as a decimal signed integer.
func (r *Reader) ReadInt(path string) (int64, bool) {
	s, ok := r.ReadAttr(path)
	if !ok {
		return 0, false
	}
	return ParseInt(s, 10)
}

// ReadHex reads an attribute and parses it as hex, with or without a 0x
// prefix. The kernel is not consistent about prefixes.
func (r *Reader) ReadHex(path string) (uint64, bool) {
	s, ok := r.ReadAttr(path)
	if !ok {
		return 0, false
	}
	return ParseHex(s)
}

// ReadBool reads an attribute holding a kernel boolean (0 or 1).
func (r *Reader) ReadBool(path string) (bool, bool) {
	v, ok := r.ReadUint(path)
	if !ok {
		return false, false
	}
	return v != 0, true
}

// ListDir returns the directory's entry names in lexical order. Missing or
// unreadable directories yield ok=false with no entries.
func (r *Reader) ListDir(path string) ([]string, bool) {
	entries, err := os.ReadDir(path)
	if err != nil {
		r.log.Debug("list failed", "path", path, "error", err)
		return nil, false
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	r.log.Debug("list", "path", path, "entries", len(names))
	return names, true
}

// ReadLinkName returns the final element of a symlink's target. Used for
// attributes like .../driver, which link to the bound driver's directory.
func (r *Reader) ReadLinkName(path string) (string, bool) {
	target, err := os.Readlink(path)
	if err != nil {
		r.log.Debug("readlink failed", "path", path, "error", err)
		return "", false
	}
	name := filepath.Base(target)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", false
	}
	return name, true
}

// Exists reports whether the path exists. Symlinks are not followed.
func (r *Reader) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// IsDir reports whether the path is a directory (without following a
// symlink at the final element).
func (r *Reader) IsDir(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.IsDir()
}

// Join appends validated child segments to base. Each segment must be a
// single relative path element: absolute segments, parent-directory
// references, and segments containing a separator are rejected before any
// filesystem access takes place.
func Join(base string, children ...string) (string, bool) {
	for _, c := range children {
		if c == "" || c == "." || c == ".." {
			return "", false
		}
		if strings.ContainsAny(c, "/\\") {
			return "", false
		}
	}
	return filepath.Join(append([]string{base}, children...)...), true
}

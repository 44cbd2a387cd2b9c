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

// Package filter implements the case-insensitive substring matcher applied
// to records and device-tree nodes. Matching never mutates subject data.
package filter

import "strings"

// MaxPatternLen bounds the filter pattern. A longer pattern is silently
// truncated at ingestion; 1024 characters is plenty for any substring match.
const MaxPatternLen = 1024

// Clamp truncates a pattern to MaxPatternLen. Excess input is discarded,
// not an error.
func Clamp(pattern string) string {
	if len(pattern) > MaxPatternLen {
		return pattern[:MaxPatternLen]
	}
	return pattern
}

// Matches reports whether subject contains pattern, ASCII case-insensitive.
// The empty pattern matches everything (the "no filter" case).
func Matches(pattern, subject string) bool {
	pattern = Clamp(pattern)
	if pattern == "" {
		return true
	}
	return strings.Contains(asciiLower(subject), asciiLower(pattern))
}

// MatchesAny reports whether any subject matches the pattern.
func MatchesAny(pattern string, subjects ...string) bool {
	pattern = Clamp(pattern)
	if pattern == "" {
		return true
	}
	for _, s := range subjects {
		if Matches(pattern, s) {
			return true
		}
	}
	return false
}

// asciiLower folds A-Z only. Multi-byte runes pass through untouched, which
// keeps the fold allocation-free for the common all-ASCII case.
func asciiLower(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

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

// Package cli wires the domain collectors to the command line: one
// subcommand per domain plus snapshot and version.
//
// Flag conventions follow the query-tool tradition rather than the default
// help binding: -h means human-readable sizes, so the help flag is the
// long form --help only. A completed pass always exits 0, even when
// domains are missing or partial; non-zero exits are reserved for usage
// errors.
package cli

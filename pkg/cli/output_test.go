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

package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenOutputStdout(t *testing.T) {
	w, closeFn := openOutput("")
	defer closeFn()
	assert.Equal(t, os.Stdout, w)

	w, closeFn = openOutput("   ")
	defer closeFn()
	assert.Equal(t, os.Stdout, w)
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w, closeFn := openOutput(path)

	_, err := io.WriteString(w, "data\n")
	require.NoError(t, err)
	closeFn()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data\n", string(content))
}

func TestOpenOutputFallsBackToStdout(t *testing.T) {
	w, closeFn := openOutput(filepath.Join(t.TempDir(), "no", "such", "dir", "out"))
	defer closeFn()
	assert.Equal(t, os.Stdout, w)
}

// Copyright 2024 The mopper Authors.
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

package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	o := New()
	require.Equal(t, DefaultMessageBufferCapacity, o.MessageBufferCapacity)
	require.False(t, o.ForceSingleTarget())
}

func TestForceSingleTargetReflectsEitherForcedOutput(t *testing.T) {
	o := New()
	o.ForceToStdOut = true
	require.True(t, o.ForceSingleTarget())

	o = New()
	o.ForceToFile = "out.nt"
	require.True(t, o.ForceSingleTarget())
}

func TestFileConfigOnlyOverridesSetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deduplicate: true\nmessage_buffer_capacity: 16\n"), 0o644))

	fc, err := LoadFileConfig(path)
	require.NoError(t, err)

	merged := fc.ApplyTo(New())
	require.True(t, merged.Deduplicate)
	require.Equal(t, 16, merged.MessageBufferCapacity)
	require.False(t, merged.ForceToStdOut)
}

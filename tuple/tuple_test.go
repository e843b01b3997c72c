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

package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tup := New("3", "a", "b", "c")
	assert.Equal(t, "3", tup.NodeID())
	assert.Equal(t, []string{"a", "b", "c"}, tup.Payload())
}

func TestFromSlice(t *testing.T) {
	payload := []string{"x", "y"}
	tup := FromSlice("7", payload)
	require.Equal(t, "7", tup.NodeID())
	assert.Equal(t, payload, tup.Payload())
}

func TestEmptyPayload(t *testing.T) {
	tup := New("1")
	assert.Equal(t, "1", tup.NodeID())
	assert.Empty(t, tup.Payload())
}

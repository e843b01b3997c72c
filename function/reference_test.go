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

package function

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/tuple"
)

func TestReferenceEvaluate(t *testing.T) {
	ref := NewReference("name", "")
	require.NoError(t, ref.BindHeaders([]string{"id", "name"}))
	require.Equal(t, ResultTypeStr, ref.ResultType())

	values, err := ref.Evaluate(tuple.New("1", "42", "alice"))
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, values)
}

func TestReferenceUnknownColumnErrors(t *testing.T) {
	ref := NewReference("missing", "")
	err := ref.BindHeaders([]string{"id", "name"})
	require.Error(t, err)
	require.True(t, moppererr.ErrReference.Is(err))
}

func TestReferenceStripsJoinAliasPrefix(t *testing.T) {
	ref := NewReference("j1_name", "j1")
	require.NoError(t, ref.BindHeaders([]string{"id", "name"}))
	values, err := ref.Evaluate(tuple.New("1", "42", "alice"))
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, values)
}

func TestReferenceUnboundEvaluateErrors(t *testing.T) {
	ref := NewReference("name", "")
	_, err := ref.Evaluate(tuple.New("1", "42", "alice"))
	require.Error(t, err)
	require.True(t, moppererr.ErrReference.Is(err))
}

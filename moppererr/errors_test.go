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

package moppererr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindsProduceDistinguishableErrors(t *testing.T) {
	err := ErrReference.New("subject")
	require.Error(t, err)
	require.True(t, ErrReference.Is(err))
	require.False(t, ErrPlanParse.Is(err))
	require.Contains(t, err.Error(), "subject")
}

func TestErrTemplateSyntaxFormatsBothArgs(t *testing.T) {
	err := ErrTemplateSyntax.New("{unterminated", "missing '}'")
	require.True(t, ErrTemplateSyntax.Is(err))
	require.Contains(t, err.Error(), "{unterminated")
	require.Contains(t, err.Error(), "missing '}'")
}

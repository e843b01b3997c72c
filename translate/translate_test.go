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

package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mopperengine/mopper/moppererr"
)

func TestTranslateRMLIsUnsupported(t *testing.T) {
	_, err := Translate(LangRML, "<#mapping> a rr:TriplesMap .")
	require.Error(t, err)
	require.True(t, moppererr.ErrUnsupportedFeature.Is(err))
}

func TestTranslateShExMLIsUnsupported(t *testing.T) {
	_, err := Translate(LangShExML, "PREFIX : <http://example.org/>")
	require.Error(t, err)
	require.True(t, moppererr.ErrUnsupportedFeature.Is(err))
}

func TestTranslateUnknownLangIsUnsupported(t *testing.T) {
	_, err := Translate(Lang("cobol"), "")
	require.Error(t, err)
	require.True(t, moppererr.ErrUnsupportedFeature.Is(err))
}

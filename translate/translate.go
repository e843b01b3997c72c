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

// Package translate is the seam for higher-level mapping-language front
// ends. Translating RML or ShExML source into a plan document is an
// external collaborator's responsibility; this package only recognizes the
// -l/--mapping-lang values the CLI accepts and reports that neither is
// implemented yet.
package translate

import "github.com/mopperengine/mopper/moppererr"

// Lang names a mapping language the CLI's -l flag can request a
// translation from before the plan loader runs.
type Lang string

const (
	LangRML    Lang = "rml"
	LangShExML Lang = "shexml"
)

// Translate converts source, written in lang, into a plan JSON document.
// Neither supported value of Lang has a translator in this engine; both
// report ErrUnsupportedFeature so the CLI can surface a clean exit-1
// failure instead of a panic.
func Translate(lang Lang, source string) (string, error) {
	switch lang {
	case LangRML, LangShExML:
		return "", moppererr.ErrUnsupportedFeature.New("mapping language " + string(lang) + " translation")
	default:
		return "", moppererr.ErrUnsupportedFeature.New("mapping language " + string(lang))
	}
}

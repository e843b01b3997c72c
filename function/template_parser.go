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
	"strings"

	"github.com/mopperengine/mopper/moppererr"
)

// TemplatePart is one literal or variable segment of a parsed template.
type TemplatePart struct {
	IsVariable bool
	Text       string
}

// ParseTemplate parses a "{var}"-style template into an ordered list of
// parts. joinAlias, if non-empty, is stripped as a "<alias>_" prefix from
// every variable name produced (compensating for an elided self-join).
//
// Grammar: '{' opens a variable segment, '}' closes one, '\' escapes the
// next character. Only '{', '}' and '\' are escapable. Nested '{', an
// unescaped '}' outside a segment, an unterminated segment, and a trailing
// escape are all parse errors. Empty "{}" segments are silently dropped.
func ParseTemplate(template string, joinAlias string) ([]TemplatePart, error) {
	parts := make([]TemplatePart, 0, 2)
	var current strings.Builder
	betweenBraces := false
	escape := false

	for _, c := range template {
		switch c {
		case '{':
			if escape {
				current.WriteRune('{')
				escape = false
			} else if betweenBraces {
				return nil, moppererr.ErrTemplateSyntax.New(template, "unescaped '{' found between {}")
			} else {
				if current.Len() > 0 {
					parts = append(parts, TemplatePart{false, current.String()})
					current.Reset()
				}
				betweenBraces = true
			}
		case '}':
			if escape {
				current.WriteRune('}')
				escape = false
			} else if betweenBraces {
				if current.Len() > 0 {
					parts = append(parts, TemplatePart{true, removeJoinAliasPrefix(current.String(), joinAlias)})
					current.Reset()
				}
				betweenBraces = false
			} else {
				return nil, moppererr.ErrTemplateSyntax.New(template, "unescaped '}' found outside {}")
			}
		case '\\':
			if escape {
				current.WriteRune('\\')
				escape = false
			} else {
				escape = true
			}
		default:
			if escape {
				return nil, moppererr.ErrTemplateSyntax.New(template, "character '"+string(c)+"' is being escaped, but it doesn't need escaping")
			}
			current.WriteRune(c)
		}
	}

	if betweenBraces {
		return nil, moppererr.ErrTemplateSyntax.New(template, "missing '}'")
	}
	if escape {
		return nil, moppererr.ErrTemplateSyntax.New(template, "expecting character to escape after final '\\'")
	}
	if current.Len() > 0 {
		parts = append(parts, TemplatePart{false, current.String()})
	}

	return parts, nil
}

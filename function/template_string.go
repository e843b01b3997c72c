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
	"github.com/mopperengine/mopper/tuple"
)

// TemplateString renders a parsed template by substituting each variable
// part with the value of the like-named column. Substituted values are
// emitted verbatim: this implementation deliberately does not
// percent-encode them (see the template-string encoding entry in DESIGN.md).
type TemplateString struct {
	parts     []TemplatePart
	headerIdx map[string]int
}

// NewTemplateString parses template and returns a TemplateString, stripping
// joinAlias from variable names as ParseTemplate describes.
func NewTemplateString(template string, joinAlias string) (*TemplateString, error) {
	parts, err := ParseTemplate(template, joinAlias)
	if err != nil {
		return nil, err
	}
	return &TemplateString{parts: parts}, nil
}

// BindHeaders records the column index of every variable part.
func (t *TemplateString) BindHeaders(headers []string) error {
	t.headerIdx = make(map[string]int, len(headers))
	for i, name := range headers {
		t.headerIdx[name] = i
	}
	return nil
}

// ResultType always reports str.
func (t *TemplateString) ResultType() ResultType { return ResultTypeStr }

// Evaluate renders the template against tup's payload.
func (t *TemplateString) Evaluate(tup tuple.Tuple) ([]string, error) {
	payload := tup.Payload()
	var b strings.Builder
	for _, part := range t.parts {
		if !part.IsVariable {
			b.WriteString(part.Text)
			continue
		}
		idx, ok := t.headerIdx[part.Text]
		if !ok || idx >= len(payload) {
			return nil, moppererr.ErrReference.New(part.Text)
		}
		b.WriteString(payload[idx])
	}
	return []string{b.String()}, nil
}

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

// TemplateFunctionValue is like TemplateString, but each variable part
// names a sub-expression rather than a column: evaluating it invokes that
// sub-expression on the full input tuple and concatenates its first result.
type TemplateFunctionValue struct {
	parts     []TemplatePart
	functions map[string]Function
}

// NewTemplateFunctionValue parses template and pairs its variable parts
// with the supplied sub-expressions.
func NewTemplateFunctionValue(template string, variableFunctionPairs map[string]Function, joinAlias string) (*TemplateFunctionValue, error) {
	parts, err := ParseTemplate(template, joinAlias)
	if err != nil {
		return nil, err
	}
	return &TemplateFunctionValue{parts: parts, functions: variableFunctionPairs}, nil
}

// BindHeaders propagates headers to every sub-expression.
func (t *TemplateFunctionValue) BindHeaders(headers []string) error {
	for _, fn := range t.functions {
		if err := fn.BindHeaders(headers); err != nil {
			return err
		}
	}
	return nil
}

// ResultType always reports str.
func (t *TemplateFunctionValue) ResultType() ResultType { return ResultTypeStr }

// Evaluate renders the template, invoking each variable part's
// sub-expression on tup and taking its first result.
func (t *TemplateFunctionValue) Evaluate(tup tuple.Tuple) ([]string, error) {
	var b strings.Builder
	for _, part := range t.parts {
		if !part.IsVariable {
			b.WriteString(part.Text)
			continue
		}
		fn, ok := t.functions[part.Text]
		if !ok {
			return nil, moppererr.ErrPlanParse.New("template references undefined variable function " + part.Text)
		}
		out, err := fn.Evaluate(tup)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			b.WriteString(out[0])
		}
	}
	return []string{b.String()}, nil
}

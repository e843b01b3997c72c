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

	"github.com/mopperengine/mopper/operator"
	"github.com/mopperengine/mopper/tuple"
)

func TestBuildCompilesIriOverTemplateString(t *testing.T) {
	expr := operator.FunctionExpr{
		Kind: operator.FunctionIri,
		Base: "http://example.org/",
		Inner: &operator.FunctionExpr{
			Kind:  operator.FunctionTemplateString,
			Value: "person/{id}",
		},
	}

	fn, err := Build(expr, "")
	require.NoError(t, err)
	require.NoError(t, fn.BindHeaders([]string{"id"}))
	require.Equal(t, ResultTypeIri, fn.ResultType())

	values, err := fn.Evaluate(tuple.New("1", "42"))
	require.NoError(t, err)
	require.Equal(t, []string{"http://example.org/person/42"}, values)
}

func TestBuildTemplateFunctionValueNestsSubExpressions(t *testing.T) {
	expr := operator.FunctionExpr{
		Kind:  operator.FunctionTemplateFunctionValue,
		Value: "{greeting} world",
		Variables: map[string]operator.FunctionExpr{
			"greeting": {Kind: operator.FunctionConstant, Value: "hello"},
		},
	}

	fn, err := Build(expr, "")
	require.NoError(t, err)
	require.NoError(t, fn.BindHeaders(nil))

	values, err := fn.Evaluate(tuple.New("1"))
	require.NoError(t, err)
	require.Equal(t, []string{"hello world"}, values)
}

func TestBuildMissingInnerFunctionErrors(t *testing.T) {
	_, err := Build(operator.FunctionExpr{Kind: operator.FunctionLiteral}, "")
	require.Error(t, err)
}

func TestBuildUnknownKindErrors(t *testing.T) {
	_, err := Build(operator.FunctionExpr{Kind: "bogus"}, "")
	require.Error(t, err)
}

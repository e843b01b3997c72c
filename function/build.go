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
	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/operator"
)

// Build compiles a wire FunctionExpr into an evaluable Function tree,
// eagerly parsing every template it contains so a malformed plan fails
// before any worker starts streaming data. joinAlias, if non-empty, is
// threaded down to every Reference and template so self-join-compensated
// column names resolve correctly.
func Build(expr operator.FunctionExpr, joinAlias string) (Function, error) {
	switch expr.Kind {
	case operator.FunctionConstant:
		return NewConstant(expr.Value), nil

	case operator.FunctionReference:
		return NewReference(expr.Value, joinAlias), nil

	case operator.FunctionTemplateString:
		return NewTemplateString(expr.Value, joinAlias)

	case operator.FunctionTemplateFunctionValue:
		fns := make(map[string]Function, len(expr.Variables))
		for name, sub := range expr.Variables {
			compiled, err := Build(sub, joinAlias)
			if err != nil {
				return nil, err
			}
			fns[name] = compiled
		}
		return NewTemplateFunctionValue(expr.Value, fns, joinAlias)

	case operator.FunctionIri:
		if expr.Inner == nil {
			return nil, moppererr.ErrPlanParse.New("iri function missing inner_function")
		}
		inner, err := Build(*expr.Inner, joinAlias)
		if err != nil {
			return nil, err
		}
		return NewIri(inner, expr.Base), nil

	case operator.FunctionLiteral:
		if expr.Inner == nil {
			return nil, moppererr.ErrPlanParse.New("literal function missing inner_function")
		}
		inner, err := Build(*expr.Inner, joinAlias)
		if err != nil {
			return nil, err
		}
		return NewLiteral(inner), nil

	case operator.FunctionBlankNode:
		if expr.Inner == nil {
			return nil, moppererr.ErrPlanParse.New("blank_node function missing inner_function")
		}
		inner, err := Build(*expr.Inner, joinAlias)
		if err != nil {
			return nil, err
		}
		return NewBlankNode(inner), nil

	case operator.FunctionUriEncode:
		if expr.Inner == nil {
			return nil, moppererr.ErrPlanParse.New("uri_encode function missing inner_function")
		}
		inner, err := Build(*expr.Inner, joinAlias)
		if err != nil {
			return nil, err
		}
		return NewUriEncode(inner), nil

	default:
		return nil, moppererr.ErrPlanParse.New("unknown function expression type " + string(expr.Kind))
	}
}

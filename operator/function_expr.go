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

package operator

import (
	"encoding/json"
	"fmt"
)

// FunctionKind discriminates the value-construction expression variants.
type FunctionKind string

const (
	FunctionConstant               FunctionKind = "constant"
	FunctionReference              FunctionKind = "reference"
	FunctionTemplateString         FunctionKind = "template_string"
	FunctionTemplateFunctionValue  FunctionKind = "template_function_value"
	FunctionIri                    FunctionKind = "iri"
	FunctionLiteral                FunctionKind = "literal"
	FunctionBlankNode              FunctionKind = "blank_node"
	FunctionUriEncode              FunctionKind = "uri_encode"
)

// FunctionExpr is the wire representation of one node in a value-construction
// function's expression tree. Which fields are meaningful depends on Kind:
//
//	constant, reference, template_string  -> Value
//	iri                                    -> Inner, Base
//	literal, blank_node, uri_encode        -> Inner
//	template_function_value               -> Value (the template), Variables
type FunctionExpr struct {
	Kind      FunctionKind
	Value     string
	Base      string
	Inner     *FunctionExpr
	Variables map[string]FunctionExpr
}

type wireFunctionExpr struct {
	Type      FunctionKind            `json:"type"`
	Value     string                  `json:"value,omitempty"`
	Base      *string                 `json:"base,omitempty"`
	Inner     *FunctionExpr           `json:"inner_function,omitempty"`
	Variables map[string]FunctionExpr `json:"variable_function_pairs,omitempty"`
}

// UnmarshalJSON decodes the discriminated function expression envelope.
func (f *FunctionExpr) UnmarshalJSON(data []byte) error {
	var wire wireFunctionExpr
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Type {
	case FunctionConstant, FunctionReference, FunctionTemplateString, FunctionTemplateFunctionValue,
		FunctionIri, FunctionLiteral, FunctionBlankNode, FunctionUriEncode:
	case "":
		return fmt.Errorf("function expression missing %q discriminator", "type")
	default:
		return fmt.Errorf("unknown function expression type %q", wire.Type)
	}
	f.Kind = wire.Type
	f.Value = wire.Value
	f.Inner = wire.Inner
	f.Variables = wire.Variables
	if wire.Base != nil {
		f.Base = *wire.Base
	}
	return nil
}

// MarshalJSON re-encodes the expression into its discriminated wire form.
func (f FunctionExpr) MarshalJSON() ([]byte, error) {
	wire := wireFunctionExpr{
		Type:      f.Kind,
		Value:     f.Value,
		Inner:     f.Inner,
		Variables: f.Variables,
	}
	if f.Base != "" {
		wire.Base = &f.Base
	}
	return json.Marshal(wire)
}

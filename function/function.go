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

// Package function implements the value-construction expression algebra:
// Constant, Reference, TemplateString, TemplateFunctionValue, Iri, Literal,
// BlankNode and UriEncode. Every expression lazily binds variable names to
// column positions the first time a header is observed.
package function

import (
	"github.com/mopperengine/mopper/tuple"
)

// ResultType tags how a serializer should render a function's output.
type ResultType string

const (
	ResultTypeStr   ResultType = "str"
	ResultTypeIri   ResultType = "iri"
	ResultTypeLit   ResultType = "lit"
	ResultTypeBlank ResultType = "blank"
)

// Function is the capability set every expression node in the algebra
// implements: bind headers, report a result type, evaluate against a tuple.
type Function interface {
	// BindHeaders is called exactly once per worker lifecycle, before any
	// call to Evaluate, with the column names of the incoming data stream.
	BindHeaders(headers []string) error

	// ResultType reports one of str, iri, lit, blank.
	ResultType() ResultType

	// Evaluate returns the function's result, typically a single-element
	// slice, from one input tuple's payload.
	Evaluate(t tuple.Tuple) ([]string, error)
}

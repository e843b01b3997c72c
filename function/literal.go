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

import "github.com/mopperengine/mopper/tuple"

// Literal passes its inner expression's results through unchanged, tagging
// the result type as lit.
type Literal struct {
	inner Function
}

// NewLiteral returns a Literal wrapping inner.
func NewLiteral(inner Function) *Literal {
	return &Literal{inner: inner}
}

// BindHeaders forwards to the inner expression.
func (l *Literal) BindHeaders(headers []string) error {
	return l.inner.BindHeaders(headers)
}

// ResultType always reports lit.
func (l *Literal) ResultType() ResultType { return ResultTypeLit }

// Evaluate forwards to the inner expression.
func (l *Literal) Evaluate(t tuple.Tuple) ([]string, error) {
	return l.inner.Evaluate(t)
}

// BlankNode passes its inner expression's results through unchanged,
// tagging the result type as blank.
type BlankNode struct {
	inner Function
}

// NewBlankNode returns a BlankNode wrapping inner.
func NewBlankNode(inner Function) *BlankNode {
	return &BlankNode{inner: inner}
}

// BindHeaders forwards to the inner expression.
func (b *BlankNode) BindHeaders(headers []string) error {
	return b.inner.BindHeaders(headers)
}

// ResultType always reports blank.
func (b *BlankNode) ResultType() ResultType { return ResultTypeBlank }

// Evaluate forwards to the inner expression.
func (b *BlankNode) Evaluate(t tuple.Tuple) ([]string, error) {
	return b.inner.Evaluate(t)
}

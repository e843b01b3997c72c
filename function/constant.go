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

// Constant always evaluates to the same value, regardless of input.
type Constant struct {
	Value string
}

// NewConstant returns a Constant evaluating to value.
func NewConstant(value string) *Constant {
	return &Constant{Value: value}
}

// BindHeaders is a no-op: a Constant ignores the header entirely.
func (c *Constant) BindHeaders(headers []string) error { return nil }

// ResultType always reports str.
func (c *Constant) ResultType() ResultType { return ResultTypeStr }

// Evaluate always returns the constant value.
func (c *Constant) Evaluate(t tuple.Tuple) ([]string, error) {
	return []string{c.Value}, nil
}

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
	"github.com/mopperengine/mopper/tuple"
)

// Reference looks up one column by name in the bound header and evaluates
// to that column's value.
type Reference struct {
	name  string
	index int
	bound bool
}

// NewReference returns a Reference to name, stripping a join-alias prefix
// from name first if joinAlias is set (compensating for a self-join the
// rewriter elided).
func NewReference(name string, joinAlias string) *Reference {
	return &Reference{name: removeJoinAliasPrefix(name, joinAlias)}
}

// BindHeaders records the position of r's column name in headers. Unlike
// the upstream implementation this returns an explicit error when the name
// is absent, instead of silently defaulting to index 0.
func (r *Reference) BindHeaders(headers []string) error {
	for i, name := range headers {
		if name == r.name {
			r.index = i
			r.bound = true
			return nil
		}
	}
	return moppererr.ErrReference.New(r.name)
}

// ResultType always reports str.
func (r *Reference) ResultType() ResultType { return ResultTypeStr }

// Evaluate returns the value of r's bound column from t's payload.
func (r *Reference) Evaluate(t tuple.Tuple) ([]string, error) {
	payload := t.Payload()
	if !r.bound || r.index >= len(payload) {
		return nil, moppererr.ErrReference.New(r.name)
	}
	return []string{payload[r.index]}, nil
}

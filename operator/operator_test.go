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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOperatorSourceRoundTrip(t *testing.T) {
	op := Operator{
		Kind: KindSource,
		Source: &SourceConfig{
			SourceType:   SourceTypeFile,
			RootIterator: RootIterator{ReferenceFormulation: ReferenceFormulationCSVRows},
			Config:       map[string]string{"path": "people.csv"},
		},
	}

	data, err := json.Marshal(op)
	require.NoError(t, err)

	var decoded Operator
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, KindSource, decoded.Kind)
	require.Equal(t, "people.csv", decoded.Source.Path())
}

func TestOperatorTargetRoundTrip(t *testing.T) {
	op := Operator{
		Kind:   KindTarget,
		Target: &TargetConfig{TargetType: TargetTypeFile, Config: map[string]string{"path": "out.nt"}},
	}

	data, err := json.Marshal(op)
	require.NoError(t, err)

	var decoded Operator
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "out.nt", decoded.Target.Path())
}

func TestOperatorFragmentRoundTrip(t *testing.T) {
	data := []byte(`{"type": "fragment", "config": {}}`)
	var decoded Operator
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, KindFragment, decoded.Kind)
	require.NotNil(t, decoded.Fragment)
}

func TestOperatorUnknownKindErrors(t *testing.T) {
	data := []byte(`{"type": "bogus", "config": {}}`)
	var decoded Operator
	require.Error(t, json.Unmarshal(data, &decoded))
}

func TestSourceConfigIOKeyIsStructural(t *testing.T) {
	a := SourceConfig{SourceType: SourceTypeFile, Config: map[string]string{"path": "a.csv"}}
	b := SourceConfig{SourceType: SourceTypeFile, Config: map[string]string{"path": "a.csv"}}
	c := SourceConfig{SourceType: SourceTypeFile, Config: map[string]string{"path": "b.csv"}}

	require.Equal(t, a.IOKey(), b.IOKey())
	require.NotEqual(t, a.IOKey(), c.IOKey())
}

func TestFunctionExprNestedRoundTrip(t *testing.T) {
	expr := FunctionExpr{
		Kind: FunctionIri,
		Base: "http://example.org/",
		Inner: &FunctionExpr{
			Kind:  FunctionTemplateString,
			Value: "person/{id}",
		},
	}

	data, err := json.Marshal(expr)
	require.NoError(t, err)

	var decoded FunctionExpr
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, FunctionIri, decoded.Kind)
	require.Equal(t, "http://example.org/", decoded.Base)
	require.NotNil(t, decoded.Inner)
	require.Equal(t, FunctionTemplateString, decoded.Inner.Kind)
	require.Equal(t, "person/{id}", decoded.Inner.Value)
}

func TestFunctionExprMissingDiscriminatorErrors(t *testing.T) {
	var decoded FunctionExpr
	require.Error(t, json.Unmarshal([]byte(`{"value": "x"}`), &decoded))
}

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

package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mopperengine/mopper/operator"
	"github.com/mopperengine/mopper/options"
)

func sourceOp(path string) operator.Operator {
	return operator.Operator{
		Kind: operator.KindSource,
		Source: &operator.SourceConfig{
			SourceType:   operator.SourceTypeFile,
			RootIterator: operator.RootIterator{ReferenceFormulation: operator.ReferenceFormulationCSVRows},
			Config:       map[string]string{"path": path},
		},
	}
}

func targetOp(path string) operator.Operator {
	return operator.Operator{
		Kind: operator.KindTarget,
		Target: &operator.TargetConfig{
			TargetType: operator.TargetTypeFile,
			Config:     map[string]string{"path": path},
		},
	}
}

func link(g *Graph, from, to int) {
	g.Edges = append(g.Edges, [2]int{from, to})
}

func TestRewriteMergesEquivalentSources(t *testing.T) {
	g := &Graph{Nodes: map[int]*Node{
		0: NewNode(0, sourceOp("a.csv")),
		1: NewNode(1, sourceOp("a.csv")),
		2: NewNode(2, targetOp("out.nt")),
	}}
	link(g, 0, 2)
	link(g, 1, 2)

	nodes, err := Rewrite(g, options.New())
	require.NoError(t, err)

	// Both sources shared an IOKey; only one should survive, feeding 2 once.
	var sourceCount int
	for _, n := range nodes {
		if n.Operator.Kind == operator.KindSource {
			sourceCount++
		}
	}
	require.Equal(t, 1, sourceCount)
	require.Len(t, nodes[2].From, 1)
}

func TestRewriteForceSingleTargetMergesDistinctTargets(t *testing.T) {
	g := &Graph{Nodes: map[int]*Node{
		0: NewNode(0, sourceOp("a.csv")),
		1: NewNode(1, targetOp("a.nt")),
		2: NewNode(2, targetOp("b.nt")),
	}}
	link(g, 0, 1)
	link(g, 0, 2)

	opts := options.New()
	opts.ForceToStdOut = true
	nodes, err := Rewrite(g, opts)
	require.NoError(t, err)

	var targetCount int
	for _, n := range nodes {
		if n.Operator.Kind == operator.KindTarget {
			targetCount++
		}
	}
	require.Equal(t, 1, targetCount)
}

func TestRewriteEliminatesFragmenter(t *testing.T) {
	g := &Graph{Nodes: map[int]*Node{
		0: NewNode(0, sourceOp("a.csv")),
		1: NewNode(1, operator.Operator{Kind: operator.KindFragment, Fragment: &operator.FragmentConfig{}}),
		2: NewNode(2, targetOp("a.nt")),
		3: NewNode(3, targetOp("b.nt")),
	}}
	link(g, 0, 1)
	link(g, 1, 2)
	link(g, 1, 3)

	nodes, err := Rewrite(g, options.New())
	require.NoError(t, err)

	_, fragmentSurvived := nodes[1]
	require.False(t, fragmentSurvived)
	require.Equal(t, []int{0}, nodes[2].From)
	require.Equal(t, []int{0}, nodes[3].From)
}

func TestRewriteFragmenterWithoutExactlyOneUpstreamErrors(t *testing.T) {
	g := &Graph{Nodes: map[int]*Node{
		0: NewNode(0, sourceOp("a.csv")),
		1: NewNode(1, sourceOp("b.csv")),
		2: NewNode(2, operator.Operator{Kind: operator.KindFragment, Fragment: &operator.FragmentConfig{}}),
	}}
	link(g, 0, 2)
	link(g, 1, 2)

	_, err := Rewrite(g, options.New())
	require.Error(t, err)
}

func TestRewriteEliminatesProjectionAndPushesAttributes(t *testing.T) {
	g := &Graph{Nodes: map[int]*Node{
		0: NewNode(0, sourceOp("a.csv")),
		1: NewNode(1, operator.Operator{
			Kind:    operator.KindProject,
			Project: &operator.ProjectConfig{Attributes: []string{"id", "name"}},
		}),
		2: NewNode(2, targetOp("a.nt")),
	}}
	link(g, 0, 1)
	link(g, 1, 2)

	nodes, err := Rewrite(g, options.New())
	require.NoError(t, err)

	_, projectionSurvived := nodes[1]
	require.False(t, projectionSurvived)
	require.Contains(t, nodes[0].Attributes, "id")
	require.Contains(t, nodes[0].Attributes, "name")
	require.Equal(t, []int{0}, nodes[2].From)
}

func TestRewriteEliminatesSelfJoin(t *testing.T) {
	g := &Graph{Nodes: map[int]*Node{
		0: NewNode(0, sourceOp("a.csv")),
		1: NewNode(1, operator.Operator{
			Kind: operator.KindJoin,
			Join: &operator.JoinConfig{
				JoinType:           operator.JoinTypeInner,
				LeftRightAttrPairs: []operator.AttrPair{{Left: "id", Right: "id"}},
				JoinAlias:          "j1",
			},
		}),
		2: NewNode(2, targetOp("a.nt")),
	}}
	link(g, 0, 1)
	link(g, 0, 1)
	link(g, 1, 2)

	nodes, err := Rewrite(g, options.New())
	require.NoError(t, err)

	_, joinSurvived := nodes[1]
	require.False(t, joinSurvived)
	require.Equal(t, []int{0}, nodes[2].From)
	require.Equal(t, "j1", nodes[2].JoinAlias)
}

func TestRewriteKeepsNonSelfJoin(t *testing.T) {
	g := &Graph{Nodes: map[int]*Node{
		0: NewNode(0, sourceOp("a.csv")),
		1: NewNode(1, sourceOp("b.csv")),
		2: NewNode(2, operator.Operator{
			Kind: operator.KindJoin,
			Join: &operator.JoinConfig{
				JoinType:           operator.JoinTypeInner,
				LeftRightAttrPairs: []operator.AttrPair{{Left: "id", Right: "id"}},
			},
		}),
		3: NewNode(3, targetOp("a.nt")),
	}}
	link(g, 0, 2)
	link(g, 1, 2)
	link(g, 2, 3)

	nodes, err := Rewrite(g, options.New())
	require.NoError(t, err)

	_, joinSurvived := nodes[2]
	require.True(t, joinSurvived)
}

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
	"encoding/json"
	"io"

	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/operator"
)

// Graph is the loaded, not-yet-rewritten plan: a set of nodes keyed by ID
// and the edge list that connects them. The rewriter (see rewriter.go)
// consumes this and produces the normalized node map the channel fabric and
// workers run against.
type Graph struct {
	Nodes map[int]*Node
	Edges [][2]int
}

type wireNode struct {
	Operator   operator.Operator `json:"operator"`
	From       []int             `json:"from"`
	To         []int             `json:"to"`
	Attributes []string          `json:"attributes"`
	JoinAlias  *string           `json:"join_alias"`
}

type wireGraph struct {
	Nodes []wireNode  `json:"nodes"`
	Edges [][2]int    `json:"edges"`
}

// Load decodes a plan JSON document into a Graph. Node IDs are assigned by
// position in the "nodes" array, matching the index convention edges
// reference.
func Load(r io.Reader) (*Graph, error) {
	var wire wireGraph
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return nil, moppererr.ErrPlanParse.New(err.Error())
	}

	g := &Graph{
		Nodes: make(map[int]*Node, len(wire.Nodes)),
		Edges: wire.Edges,
	}
	for id, wn := range wire.Nodes {
		node := NewNode(id, wn.Operator)
		if len(wn.Attributes) > 0 {
			node.Attributes = make(map[string]struct{}, len(wn.Attributes))
			for _, a := range wn.Attributes {
				node.Attributes[a] = struct{}{}
			}
		}
		if wn.JoinAlias != nil {
			node.JoinAlias = *wn.JoinAlias
		}
		g.Nodes[id] = node
	}

	for _, edge := range g.Edges {
		if _, ok := g.Nodes[edge[0]]; !ok {
			return nil, moppererr.ErrPlanParse.New("edge references unknown node")
		}
		if _, ok := g.Nodes[edge[1]]; !ok {
			return nil, moppererr.ErrPlanParse.New("edge references unknown node")
		}
	}

	return g, nil
}

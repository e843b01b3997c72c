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
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/operator"
	"github.com/mopperengine/mopper/options"
)

var rewriteLog = logrus.WithField("component", "plan.rewriter")

// Rewrite normalizes g into the node map the channel fabric and workers run
// against, running the five passes in order: classify/index, merge
// equivalent I/O endpoints, eliminate Fragmenters, eliminate Projections,
// eliminate self-joins. Each pass preserves edge symmetry.
func Rewrite(g *Graph, opts options.Options) (map[int]*Node, error) {
	nodes := make(map[int]*Node, len(g.Nodes))
	for id, n := range g.Nodes {
		nodes[id] = n.Clone()
	}

	var fragmentIDs, projectionIDs, joinIDs []int
	ioBuckets := make(map[string][]int)

	for id, n := range nodes {
		switch n.Operator.Kind {
		case operator.KindFragment:
			fragmentIDs = append(fragmentIDs, id)
		case operator.KindProject:
			projectionIDs = append(projectionIDs, id)
		case operator.KindJoin:
			joinIDs = append(joinIDs, id)
		case operator.KindSource:
			key := n.Operator.Source.IOKey()
			ioBuckets[key] = append(ioBuckets[key], id)
		case operator.KindTarget:
			key := n.Operator.Target.IOKey()
			if opts.ForceSingleTarget() {
				key = "\x00forced-single-target"
			}
			ioBuckets[key] = append(ioBuckets[key], id)
		}
	}
	initialCount := len(nodes)

	for _, edge := range g.Edges {
		from, to := edge[0], edge[1]
		nodes[from].AddTo(to)
		nodes[to].AddFrom(from)
	}

	mergeEquivalentIOEndpoints(nodes, ioBuckets)

	if err := eliminateFragmenters(nodes, fragmentIDs); err != nil {
		return nil, err
	}

	eliminateProjections(nodes, projectionIDs)

	if err := eliminateSelfJoins(nodes, joinIDs); err != nil {
		return nil, err
	}

	rewriteLog.Infof("reduced plan from %d to %d nodes", initialCount, len(nodes))
	return nodes, nil
}

// mergeEquivalentIOEndpoints implements pass 2: for every bucket of two or
// more structurally-equal Source or Target nodes, pick the first by ID as
// the survivor, fold the others' edges into it, and remove the others.
func mergeEquivalentIOEndpoints(nodes map[int]*Node, buckets map[string][]int) {
	for _, ids := range buckets {
		if len(ids) < 2 {
			continue
		}
		sort.Ints(ids)
		survivorID := ids[0]
		survivor := nodes[survivorID]

		for _, otherID := range ids[1:] {
			other := nodes[otherID]
			survivor.AddAllTo(other.To)
			survivor.AddAllFrom(other.From)
			// The survivor is a Source or Target, never a Join, so an
			// upstream it now shares with the merged node is kept once.
			survivor.DedupeFrom()

			for toID := range other.To {
				downstream := nodes[toID]
				downstream.ReplaceFrom(otherID, survivorID)
				// A Join legitimately wants two edges to the same node (it
				// is how eliminateSelfJoins later recognizes a self-join);
				// every other node kind only ever has one logical upstream,
				// so collapse the duplicate the fabric would otherwise
				// double-deliver down.
				if downstream.Operator.Kind != operator.KindJoin {
					downstream.DedupeFrom()
				}
			}
			for _, fromID := range other.From {
				nodes[fromID].ReplaceTo(otherID, survivorID)
			}
			delete(nodes, otherID)
			rewriteLog.Debugf("merged I/O node %d into %d", otherID, survivorID)
		}
	}
}

// eliminateFragmenters implements pass 3. A Fragmenter node must have
// exactly one upstream; any other count is a malformed plan.
func eliminateFragmenters(nodes map[int]*Node, fragmentIDs []int) error {
	for _, fID := range fragmentIDs {
		fragment := nodes[fID]
		if len(fragment.From) != 1 {
			return moppererr.ErrPlanParse.New("fragmenter node must have exactly one upstream")
		}
		upstreamID := fragment.From[0]
		upstream := nodes[upstreamID]
		upstream.ChangeToIDs(fragment.To, fID)

		for toID := range fragment.To {
			nodes[toID].ReplaceFrom(fID, upstreamID)
		}
		delete(nodes, fID)
		rewriteLog.Debugf("eliminated fragmenter node %d", fID)
	}
	return nil
}

// eliminateProjections implements pass 4: like eliminateFragmenters, but
// also pushes the projection's attribute set into its upstream node.
func eliminateProjections(nodes map[int]*Node, projectionIDs []int) {
	for _, pID := range projectionIDs {
		projection := nodes[pID]
		var attrs map[string]struct{}
		if projection.Operator.Project != nil && len(projection.Operator.Project.Attributes) > 0 {
			attrs = make(map[string]struct{}, len(projection.Operator.Project.Attributes))
			for _, a := range projection.Operator.Project.Attributes {
				attrs[a] = struct{}{}
			}
		}

		for _, upstreamID := range projection.From {
			upstream := nodes[upstreamID]
			upstream.ChangeToIDs(projection.To, pID)
			upstream.AddAttributes(cloneAttrSet(attrs))

			for toID := range projection.To {
				nodes[toID].ReplaceFrom(pID, upstreamID)
			}
		}
		delete(nodes, pID)
		rewriteLog.Debugf("eliminated projection node %d", pID)
	}
}

func cloneAttrSet(attrs map[string]struct{}) map[string]struct{} {
	if attrs == nil {
		return nil
	}
	clone := make(map[string]struct{}, len(attrs))
	for a := range attrs {
		clone[a] = struct{}{}
	}
	return clone
}

// eliminateSelfJoins implements pass 5: a Join whose two upstream IDs are
// equal is removed; its upstream takes its place in every downstream node,
// and the downstream's join_alias is set to the join's alias.
func eliminateSelfJoins(nodes map[int]*Node, joinIDs []int) error {
	for _, jID := range joinIDs {
		join, ok := nodes[jID]
		if !ok {
			continue
		}
		if len(join.From) != 2 {
			return moppererr.ErrPlanParse.New("join node must have exactly two upstreams")
		}
		if join.From[0] != join.From[1] {
			continue
		}
		if join.Operator.Join == nil {
			return moppererr.ErrPlanParse.New("join node missing configuration")
		}
		alias := join.Operator.Join.JoinAlias
		upstreamID := join.From[0]

		for toID := range join.To {
			downstream := nodes[toID]
			downstream.ReplaceFrom(jID, upstreamID)
			downstream.JoinAlias = alias
		}
		upstream := nodes[upstreamID]
		upstream.ChangeToIDs(join.To, jID)

		delete(nodes, jID)
		rewriteLog.Debugf("eliminated self-join node %d (alias %q)", jID, alias)
	}
	return nil
}

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

// Package plan holds the node/edge model the rewriter operates on and the
// loader that decodes it from the plan JSON document.
package plan

import (
	"sort"

	"github.com/mopperengine/mopper/operator"
)

// Node is one vertex of a plan graph.
type Node struct {
	ID       int
	Operator operator.Operator

	// From is the ordered list of upstream node IDs. Order matters for
	// Join: index 0 is the left/"child" side, index 1 the right/"parent".
	From []int

	// To is the set of downstream node IDs; order is irrelevant.
	To map[int]struct{}

	// Attributes is the optional set of column names this node needs from
	// its source. A nil map means "unset", distinct from an empty set.
	Attributes map[string]struct{}

	// JoinAlias is the prefix used to qualify attributes that arrived from
	// the "right" side of a join that has since been elided.
	JoinAlias string
}

// NewNode returns an empty Node with the given ID and operator.
func NewNode(id int, op operator.Operator) *Node {
	return &Node{ID: id, Operator: op, To: make(map[int]struct{})}
}

// AddFrom appends id to n's upstream list.
func (n *Node) AddFrom(id int) {
	n.From = append(n.From, id)
}

// AddAllFrom appends every id in ids to n's upstream list.
func (n *Node) AddAllFrom(ids []int) {
	n.From = append(n.From, ids...)
}

// ReplaceFrom rewrites every occurrence of oldID in n's upstream list to
// newID. Duplicate entries are intentionally left in place: a Join node
// whose two upstream edges both end up naming the same surviving node
// (because the rewriter merged two equivalent I/O endpoints into one) must
// keep both entries, since that is exactly the shape eliminateSelfJoins
// looks for. Only a non-Join node's caller is responsible for collapsing a
// duplicate, since only Join legitimately wants two edges to one node.
func (n *Node) ReplaceFrom(oldID, newID int) {
	for i, id := range n.From {
		if id == oldID {
			n.From[i] = newID
		}
	}
}

// DedupeFrom collapses consecutive-or-not duplicate entries in n's upstream
// list down to one each, preserving first-seen order. Call this on any
// single-upstream node kind (Target, Extend, Serialize, Fragment, Project)
// after a rewrite step that may have pointed two of its edges at the same
// survivor; a Join node must never call this (see ReplaceFrom).
func (n *Node) DedupeFrom() {
	if len(n.From) < 2 {
		return
	}
	seen := make(map[int]struct{}, len(n.From))
	deduped := n.From[:0]
	for _, id := range n.From {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	n.From = deduped
}

// AddTo inserts id into n's downstream set.
func (n *Node) AddTo(id int) {
	if n.To == nil {
		n.To = make(map[int]struct{})
	}
	n.To[id] = struct{}{}
}

// AddAllTo inserts every id in ids into n's downstream set.
func (n *Node) AddAllTo(ids map[int]struct{}) {
	for id := range ids {
		n.AddTo(id)
	}
}

// ReplaceTo removes oldID from n's downstream set and inserts newID.
func (n *Node) ReplaceTo(oldID, newID int) {
	delete(n.To, oldID)
	n.AddTo(newID)
}

// ChangeToIDs removes idToRemove from n's downstream set and inserts every
// ID in idsToAdd.
func (n *Node) ChangeToIDs(idsToAdd map[int]struct{}, idToRemove int) {
	delete(n.To, idToRemove)
	n.AddAllTo(idsToAdd)
}

// AddAttributes union-merges attributes into n.Attributes: if both n and
// attributes are set, the result is their union; otherwise n takes
// whichever side is present.
func (n *Node) AddAttributes(attributes map[string]struct{}) {
	if n.Attributes == nil {
		n.Attributes = attributes
		return
	}
	if attributes == nil {
		return
	}
	for attr := range attributes {
		n.Attributes[attr] = struct{}{}
	}
}

// SortedTo returns n's downstream IDs in ascending order, for deterministic
// iteration.
func (n *Node) SortedTo() []int {
	ids := make([]int, 0, len(n.To))
	for id := range n.To {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone returns a deep-enough copy of n for the rewriter's copy-on-write
// update style: a fresh From slice and To/Attributes maps.
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:        n.ID,
		Operator:  n.Operator,
		JoinAlias: n.JoinAlias,
	}
	clone.From = append([]int(nil), n.From...)
	clone.To = make(map[int]struct{}, len(n.To))
	for id := range n.To {
		clone.To[id] = struct{}{}
	}
	if n.Attributes != nil {
		clone.Attributes = make(map[string]struct{}, len(n.Attributes))
		for a := range n.Attributes {
			clone.Attributes[a] = struct{}{}
		}
	}
	return clone
}

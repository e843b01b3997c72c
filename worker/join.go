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

package worker

import (
	"strconv"

	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/operator"
	"github.com/mopperengine/mopper/tuple"
)

// joinSide is one side's state machine: a growing, append-only record
// buffer plus one value→indices map per join column. Records are never
// evicted; both sides of a join are held in memory for the run's duration.
type joinSide struct {
	positions []int
	buffer    [][]string
	indices   []map[string][]int
}

func newJoinSide(joinColumns int) *joinSide {
	indices := make([]map[string][]int, joinColumns)
	for i := range indices {
		indices[i] = make(map[string][]int)
	}
	return &joinSide{indices: indices}
}

// add appends payload to the side's buffer and indexes its join-column
// values, returning those values in join-column order.
func (s *joinSide) add(payload []string) []string {
	values := make([]string, len(s.positions))
	for i, pos := range s.positions {
		if pos < len(payload) {
			values[i] = payload[pos]
		}
	}
	s.buffer = append(s.buffer, append([]string(nil), payload...))
	row := len(s.buffer) - 1
	for i, v := range values {
		s.indices[i][v] = append(s.indices[i][v], row)
	}
	return values
}

// matches returns every buffered record whose join-column values equal
// values at every position (AND semantics across join columns).
func (s *joinSide) matches(values []string) [][]string {
	if len(values) == 0 {
		return nil
	}
	var candidates []int
	for i, v := range values {
		rows, ok := s.indices[i][v]
		if !ok {
			return nil
		}
		if i == 0 {
			candidates = append(candidates, rows...)
			continue
		}
		rowSet := make(map[int]struct{}, len(rows))
		for _, r := range rows {
			rowSet[r] = struct{}{}
		}
		filtered := candidates[:0]
		for _, c := range candidates {
			if _, ok := rowSet[c]; ok {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return nil
	}
	out := make([][]string, len(candidates))
	for i, row := range candidates {
		out[i] = s.buffer[row]
	}
	return out
}

// RunJoin implements the symmetric inner-join operator.
// Only inner joins are supported; any other join type is an
// UnsupportedFeature. The receiver interleaves tuples from both leftID and
// rightID, routed by tuple[0]; order between the two inputs is not
// determined, and the join handles either arrival order.
func RunJoin(nodeID, leftID, rightID int, joinType operator.JoinType, pairs []operator.AttrPair, joinAlias string, receiver chan tuple.Tuple, senders []chan tuple.Tuple) Status {
	defer closeAll(senders)

	if joinType != operator.JoinTypeInner {
		drain(receiver)
		return Fail(1, moppererr.ErrUnsupportedFeature.New("join type "+string(joinType)))
	}

	id := strconv.Itoa(nodeID)
	leftNodeID := strconv.Itoa(leftID)
	rightNodeID := strconv.Itoa(rightID)

	left := newJoinSide(len(pairs))
	right := newJoinSide(len(pairs))

	var leftHeaderNames, rightHeaderNamesPrefixed []string
	leftReady, rightReady := false, false

	emitMergedHeaderIfReady := func() {
		if !leftReady || !rightReady {
			return
		}
		merged := make([]string, 0, len(leftHeaderNames)+len(rightHeaderNamesPrefixed))
		merged = append(merged, leftHeaderNames...)
		merged = append(merged, rightHeaderNamesPrefixed...)
		sendAll(senders, tuple.FromSlice(id, merged))
	}

	for data := range receiver {
		producer := data.NodeID()
		payload := data.Payload()

		switch producer {
		case leftNodeID:
			if !leftReady {
				positions := make([]int, len(pairs))
				for i, pair := range pairs {
					positions[i] = indexOf(payload, pair.Left)
				}
				left.positions = positions
				leftHeaderNames = append([]string(nil), payload...)
				leftReady = true
				emitMergedHeaderIfReady()
				continue
			}
			values := left.add(payload)
			for _, rightRow := range right.matches(values) {
				merged := make([]string, 0, len(payload)+len(rightRow))
				merged = append(merged, payload...)
				merged = append(merged, rightRow...)
				sendAll(senders, tuple.FromSlice(id, merged))
			}

		case rightNodeID:
			if !rightReady {
				positions := make([]int, len(pairs))
				for i, pair := range pairs {
					positions[i] = indexOf(payload, pair.Right)
				}
				right.positions = positions
				rightHeaderNamesPrefixed = make([]string, len(payload))
				for i, name := range payload {
					rightHeaderNamesPrefixed[i] = joinAlias + "_" + name
				}
				rightReady = true
				emitMergedHeaderIfReady()
				continue
			}
			values := right.add(payload)
			for _, leftRow := range left.matches(values) {
				merged := make([]string, 0, len(leftRow)+len(payload))
				merged = append(merged, leftRow...)
				merged = append(merged, payload...)
				sendAll(senders, tuple.FromSlice(id, merged))
			}
		}
	}

	return OK
}

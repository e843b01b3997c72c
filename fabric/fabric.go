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

// Package fabric builds the channel topology a rewritten plan graph
// executes over: one bounded multi-producer/single-consumer channel per
// node that has at least one upstream, fanned out to every upstream as a
// sender.
package fabric

import (
	"github.com/mopperengine/mopper/plan"
	"github.com/mopperengine/mopper/tuple"
)

// Channel is the unit of the fabric: a Tuple channel. The capacity it was
// built with is available through cap.
type Channel = chan tuple.Tuple

// Fabric holds, for every node ID, the single receiver it owns (nil if the
// node has no upstream, i.e. a Source) and the senders it holds (one per
// distinct downstream node it feeds, empty if the node has no downstream,
// i.e. a Target).
type Fabric struct {
	Receivers map[int]Channel
	Senders   map[int][]Channel
}

// Build constructs the Fabric for nodes. capacity bounds every channel;
// zero produces an unbuffered (rendezvous) channel, matching
// options.Options.MessageBufferCapacity's documented zero value.
func Build(nodes map[int]*plan.Node, capacity int) *Fabric {
	f := &Fabric{
		Receivers: make(map[int]Channel),
		Senders:   make(map[int][]Channel),
	}
	for id, n := range nodes {
		if len(n.From) == 0 {
			continue
		}
		ch := make(Channel, capacity)
		f.Receivers[id] = ch
		for _, upstreamID := range n.From {
			f.Senders[upstreamID] = append(f.Senders[upstreamID], ch)
		}
	}
	return f
}

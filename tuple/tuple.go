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

// Package tuple defines the wire unit passed over the engine's channels.
package tuple

// Tuple is the wire unit on a channel: an ordered sequence of strings whose
// first element is always the producing node's ID. The remainder is the
// payload, whose meaning depends on the tuple's position in the stream:
// header, type, or data, depending on the worker reading it.
type Tuple []string

// New builds a Tuple for nodeID carrying payload as its values.
func New(nodeID string, payload ...string) Tuple {
	t := make(Tuple, 0, len(payload)+1)
	t = append(t, nodeID)
	t = append(t, payload...)
	return t
}

// FromSlice builds a Tuple for nodeID from an existing payload slice without
// requiring the caller to spread it.
func FromSlice(nodeID string, payload []string) Tuple {
	t := make(Tuple, 0, len(payload)+1)
	t = append(t, nodeID)
	t = append(t, payload...)
	return t
}

// NodeID returns the ID of the node that produced this tuple.
func (t Tuple) NodeID() string {
	return t[0]
}

// Payload returns the tuple's values, excluding the producer's node ID.
func (t Tuple) Payload() []string {
	return t[1:]
}

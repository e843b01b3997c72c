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

// Package options holds the runtime configuration record for an engine run.
package options

// DefaultMessageBufferCapacity is the per-channel bound New sets.
const DefaultMessageBufferCapacity = 128

// Options configures one run of the engine. The zero value is usable: no
// forced output, no working-directory hint, no deduplication, and a
// MessageBufferCapacity of zero, i.e. rendezvous channels. New returns the
// same record with DefaultMessageBufferCapacity instead.
type Options struct {
	// ForceToStdOut ignores every Target's configuration and routes all
	// sinks to standard out. Takes precedence over ForceToFile.
	ForceToStdOut bool

	// ForceToFile ignores every Target's configuration and routes all
	// sinks to a single file at this path. Ignored if ForceToStdOut is set.
	ForceToFile string

	// WorkingDirHint is the fallback directory used to resolve a CSV
	// source's file path when it is not absolute.
	WorkingDirHint string

	// MessageBufferCapacity bounds every inter-operator channel. Zero means
	// a rendezvous channel: send and receive must happen at the same time.
	MessageBufferCapacity int

	// Deduplicate drops duplicate output lines at each sink.
	Deduplicate bool
}

// New returns an Options with every field at its documented default.
func New() Options {
	return Options{
		MessageBufferCapacity: DefaultMessageBufferCapacity,
	}
}

// ForceSingleTarget reports whether this run's configuration requires every
// Target node to collapse into a single sink during plan rewriting.
func (o Options) ForceSingleTarget() bool {
	return o.ForceToStdOut || o.ForceToFile != ""
}

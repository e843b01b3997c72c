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
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/tuple"
)

// Sink writes every inbound tuple's payload, newline-joined, to an owned
// writer through a buffered writer. Mu guards this Sink's buffered writes
// and its final flush. NewSink gives every Sink its own mutex and RunSink
// its own buffer, so two Sinks over the same underlying writer are not
// serialized against each other. A Target node has exactly one receiver,
// so in practice only this worker's own goroutine ever takes the lock.
type Sink struct {
	Writer      io.Writer
	Mu          *sync.Mutex
	Deduplicate bool
}

// NewSink returns a Sink wrapping w with its own mutex.
func NewSink(w io.Writer, deduplicate bool) *Sink {
	return &Sink{Writer: w, Mu: &sync.Mutex{}, Deduplicate: deduplicate}
}

// RunSink iterates receiver to closure, writing each tuple's payload as a
// newline-joined, newline-terminated line. A write or flush failure is
// reported through the returned Status once the channel drains, rather than
// aborting mid-stream.
func RunSink(nodeID int, sink *Sink, receiver chan tuple.Tuple) Status {
	bw, ok := sink.Writer.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(sink.Writer)
	}

	var seen map[string]struct{}
	if sink.Deduplicate {
		seen = make(map[string]struct{})
	}

	var writeErr error
	for data := range receiver {
		line := strings.Join(data.Payload(), "\n")
		if sink.Deduplicate {
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
		}

		sink.Mu.Lock()
		_, err := bw.WriteString(line)
		if err == nil {
			err = bw.WriteByte('\n')
		}
		sink.Mu.Unlock()
		if err != nil && writeErr == nil {
			writeErr = err
		}
	}

	sink.Mu.Lock()
	flushErr := bw.Flush()
	sink.Mu.Unlock()

	if writeErr != nil {
		return Fail(1, moppererr.ErrRuntimeIO.New(writeErr.Error()))
	}
	if flushErr != nil {
		return Fail(1, moppererr.ErrRuntimeIO.New(flushErr.Error()))
	}
	return OK
}

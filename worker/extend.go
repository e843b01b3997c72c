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
	"sort"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mopperengine/mopper/function"
	"github.com/mopperengine/mopper/operator"
	"github.com/mopperengine/mopper/tuple"
)

var extendLog = logrus.WithField("component", "worker.extend")

// extendField is one compiled (output name, function) pair, kept in a
// stable order so the names/types/values tuples line up column-for-column.
type extendField struct {
	name string
	fn   function.Function
}

// RunExtend compiles every expression in extendPairs eagerly (so a
// malformed template fails before any data flows), then emits two header
// tuples (output names, then result types) followed by one data tuple per
// inbound row. If joinAlias is set, it doubles both the bound header and
// every inbound payload to compensate for a self-join the rewriter elided.
func RunExtend(nodeID int, extendPairs map[string]operator.FunctionExpr, joinAlias string, receiver chan tuple.Tuple, senders []chan tuple.Tuple) Status {
	id := strconv.Itoa(nodeID)
	defer closeAll(senders)

	names := make([]string, 0, len(extendPairs))
	for name := range extendPairs {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]extendField, 0, len(names))
	for _, name := range names {
		fn, err := function.Build(extendPairs[name], joinAlias)
		if err != nil {
			return Fail(1, err)
		}
		outputName := name
		if len(outputName) > 0 {
			outputName = outputName[1:]
		}
		fields = append(fields, extendField{name: outputName, fn: fn})
	}

	// functionsMutex guards nothing this goroutine doesn't already own
	// exclusively; kept for symmetry with the sink's writer lock, which
	// genuinely is shared.
	var functionsMutex sync.Mutex
	functionsMutex.Lock()
	defer functionsMutex.Unlock()

	outputNames := make([]string, len(fields))
	resultTypes := make([]string, len(fields))
	for i, f := range fields {
		outputNames[i] = f.name
		resultTypes[i] = string(f.fn.ResultType())
	}
	sendAll(senders, tuple.FromSlice(id, outputNames))
	sendAll(senders, tuple.FromSlice(id, resultTypes))

	header, ok := <-receiver
	if !ok {
		return OK
	}
	upstreamHeader := header.Payload()

	boundHeader := upstreamHeader
	if joinAlias != "" {
		boundHeader = doubleHeaderWithAlias(upstreamHeader, joinAlias)
	}
	for _, f := range fields {
		if err := f.fn.BindHeaders(boundHeader); err != nil {
			return Fail(1, err)
		}
	}

	for data := range receiver {
		payload := data.Payload()
		if joinAlias != "" {
			payload = doublePayload(payload)
		}
		result := make([]string, 0, len(fields))
		for _, f := range fields {
			values, err := f.fn.Evaluate(tuple.FromSlice(id, payload))
			if err != nil {
				extendLog.Errorf("extend %s: %s", id, err)
				return Fail(1, err)
			}
			result = append(result, values...)
		}
		sendAll(senders, tuple.FromSlice(id, result))
	}

	return OK
}

func doubleHeaderWithAlias(header []string, joinAlias string) []string {
	out := make([]string, 0, len(header)*2)
	out = append(out, header...)
	for _, name := range header {
		out = append(out, joinAlias+"_"+name)
	}
	return out
}

func doublePayload(payload []string) []string {
	out := make([]string, 0, len(payload)*2)
	out = append(out, payload...)
	out = append(out, payload...)
	return out
}

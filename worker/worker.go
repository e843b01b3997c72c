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

// Package worker implements the per-operator goroutine bodies: CSV source,
// Extend, Join, Serialize and Sink. Every worker follows the same
// life-cycle: read header(s) from its inbound channel (if any), announce
// headers downstream, stream data, then exit with a Status.
package worker

import (
	"fmt"

	"github.com/mopperengine/mopper/tuple"
)

// Status is a worker's exit report: Code zero means success, any other
// value a failure whose cause is described by Message.
type Status struct {
	Code    int
	Message string
}

// OK is the status every worker reports on a clean exit.
var OK = Status{Code: 0, Message: ""}

// Fail builds a failure Status from an error.
func Fail(code int, err error) Status {
	return Status{Code: code, Message: err.Error()}
}

// Failf builds a failure Status from a formatted message.
func Failf(code int, format string, args ...any) Status {
	return Status{Code: code, Message: fmt.Sprintf(format, args...)}
}

// closeAll closes every sender channel once a worker is done producing.
func closeAll(senders []chan tuple.Tuple) {
	for _, s := range senders {
		close(s)
	}
}

// sendAll sends t on every sender channel.
func sendAll(senders []chan tuple.Tuple, t tuple.Tuple) {
	for _, s := range senders {
		s <- t
	}
}

// drain reads receiver to closure without processing, so an upstream
// producer blocked on send can still exit when this worker bails out early.
func drain(receiver chan tuple.Tuple) {
	for range receiver {
	}
}

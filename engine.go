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

// Package mopper is the top-level mapping-plan execution engine: it loads a
// plan document, rewrites it into its normalized form, builds the channel
// fabric the rewritten graph runs over, and dispatches one goroutine per
// node to the matching operator worker. Run blocks until every worker has
// exited and reports a single aggregated error, if any worker failed.
package mopper

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mopperengine/mopper/fabric"
	"github.com/mopperengine/mopper/operator"
	"github.com/mopperengine/mopper/options"
	"github.com/mopperengine/mopper/plan"
	"github.com/mopperengine/mopper/tuple"
	"github.com/mopperengine/mopper/worker"
)

var engineLog = logrus.WithField("component", "mopper.engine")

// Engine holds the configuration a mapping run executes under. The zero
// value is unusable; build one with New or NewDefault.
type Engine struct {
	Options options.Options
}

// New returns an Engine configured by opts.
func New(opts options.Options) *Engine {
	return &Engine{Options: opts}
}

// NewDefault returns an Engine configured with options.New()'s defaults:
// no forced output, the default channel capacity, no deduplication.
func NewDefault() *Engine {
	return New(options.New())
}

// Start loads the plan document read from r, rewrites it, and runs it to
// completion under opts. It blocks until every operator goroutine has
// exited.
func Start(r io.Reader, opts options.Options) error {
	return New(opts).Run(r)
}

// StartDefault runs Start with options.New()'s defaults.
func StartDefault(r io.Reader) error {
	return Start(r, options.New())
}

// Run loads the plan document from r, rewrites it, builds its channel
// fabric, and spawns one goroutine per node. Each goroutine dispatches to
// the operator worker matching its node's kind and reports a worker.Status
// back; Run joins every goroutine and returns a single error naming every
// node that failed, or nil if all succeeded.
func (e *Engine) Run(r io.Reader) error {
	graph, err := plan.Load(r)
	if err != nil {
		return errors.Wrap(err, "loading plan")
	}

	nodes, err := plan.Rewrite(graph, e.Options)
	if err != nil {
		return errors.Wrap(err, "rewriting plan")
	}
	engineLog.Infof("executing rewritten plan with %d nodes", len(nodes))

	f := fabric.Build(nodes, e.Options.MessageBufferCapacity)

	type result struct {
		nodeID int
		status worker.Status
	}
	results := make(chan result, len(nodes))

	var wg sync.WaitGroup
	for id, n := range nodes {
		wg.Add(1)
		go func(id int, n *plan.Node) {
			defer wg.Done()
			results <- result{nodeID: id, status: e.runNode(id, n, f)}
		}(id, n)
	}
	wg.Wait()
	close(results)

	var failures []string
	for res := range results {
		if res.status.Code != 0 {
			engineLog.Errorf("node %d failed: %s", res.nodeID, res.status.Message)
			failures = append(failures, fmt.Sprintf("node %d: %s", res.nodeID, res.status.Message))
		}
	}
	if len(failures) > 0 {
		return errors.New("mapping run failed:\n" + strings.Join(failures, "\n"))
	}
	return nil
}

// runNode dispatches n to the worker implementation matching its operator
// kind, wiring in the channels the fabric built for it. By the time Run
// calls this, the rewriter has already removed every Projection and
// Fragmenter node, so only the five cases below are ever reachable.
func (e *Engine) runNode(id int, n *plan.Node, f *fabric.Fabric) worker.Status {
	senders := f.Senders[id]
	receiver := f.Receivers[id]

	switch n.Operator.Kind {
	case operator.KindSource:
		return worker.RunSource(id, n.Operator.Source.Path(), e.Options.WorkingDirHint, n.Attributes, senders)

	case operator.KindExtend:
		return worker.RunExtend(id, n.Operator.Extend.ExtendPairs, n.JoinAlias, receiver, senders)

	case operator.KindJoin:
		if len(n.From) != 2 {
			return worker.Failf(1, "join node %d must have exactly two upstreams, has %d", id, len(n.From))
		}
		join := n.Operator.Join
		return worker.RunJoin(id, n.From[0], n.From[1], join.JoinType, join.LeftRightAttrPairs, join.JoinAlias, receiver, senders)

	case operator.KindSerialize:
		return worker.RunSerialize(id, n.Operator.Serialize.Format, n.Operator.Serialize.Template, receiver, senders)

	case operator.KindTarget:
		return e.runTarget(id, n.Operator.Target, receiver)

	default:
		return worker.Failf(1, "node %d: unexpected operator kind %q in rewritten plan", id, n.Operator.Kind)
	}
}

// runTarget resolves the writer a Target node's Sink writes to and runs it.
func (e *Engine) runTarget(id int, cfg *operator.TargetConfig, receiver chan tuple.Tuple) worker.Status {
	w, closer, err := e.targetWriter(cfg)
	if err != nil {
		for range receiver {
		}
		return worker.Fail(1, err)
	}
	if closer != nil {
		defer closer.Close()
	}

	sink := worker.NewSink(w, e.Options.Deduplicate)
	return worker.RunSink(id, sink, receiver)
}

// targetWriter resolves the writer a Target node's Sink writes its
// serialized output to. ForceToStdOut and ForceToFile override every
// Target's own configuration and collapse onto a single sink, the same
// bucketing the rewriter already applied when options.Options.ForceSingleTarget
// is set; ForceToStdOut takes precedence over ForceToFile.
func (e *Engine) targetWriter(cfg *operator.TargetConfig) (io.Writer, io.Closer, error) {
	switch {
	case e.Options.ForceToStdOut:
		return os.Stdout, nil, nil

	case e.Options.ForceToFile != "":
		f, err := os.Create(e.Options.ForceToFile)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot open %s", e.Options.ForceToFile)
		}
		return f, f, nil

	case cfg != nil && cfg.TargetType == operator.TargetTypeFile:
		path := cfg.Path()
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot open %s", path)
		}
		return f, f, nil

	default:
		return os.Stdout, nil, nil
	}
}

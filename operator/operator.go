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

// Package operator holds the discriminated-union config types carried by a
// plan node's "operator" field. These schemas are otherwise opaque to the
// mapping engine: only the rewriter and the operator workers look inside
// them, and only for the fields they care about.
package operator

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the operator variants a plan node can carry.
type Kind string

const (
	KindSource    Kind = "source"
	KindProject   Kind = "project"
	KindFragment  Kind = "fragment"
	KindJoin      Kind = "join"
	KindExtend    Kind = "extend"
	KindSerialize Kind = "serialize"
	KindTarget    Kind = "target"
)

// SourceType names where a Source operator reads its rows from. Only File
// (read via CSVRows) is implemented; the others are recognized so plan
// documents from other mopper front ends still decode.
type SourceType string

const (
	SourceTypeFile   SourceType = "file"
	SourceTypeStdIn  SourceType = "stdin"
	SourceTypeRemote SourceType = "remote"
)

// ReferenceFormulation names how a Source iterates its underlying data.
// Only CSVRows is implemented.
type ReferenceFormulation string

const ReferenceFormulationCSVRows ReferenceFormulation = "csv_rows"

// RootIterator wraps the reference formulation of a Source.
type RootIterator struct {
	ReferenceFormulation ReferenceFormulation `json:"reference_formulation"`
}

// SourceConfig configures a Source operator.
type SourceConfig struct {
	SourceType   SourceType        `json:"source_type"`
	RootIterator RootIterator      `json:"root_iterator"`
	Config       map[string]string `json:"config"`
}

// Path returns the "path" entry of Config, the file a CSVRows source reads.
func (s SourceConfig) Path() string {
	return s.Config["path"]
}

// TargetType names where a Target operator writes its serialized output.
type TargetType string

const (
	TargetTypeStdOut TargetType = "stdout"
	TargetTypeFile   TargetType = "file"
)

// TargetConfig configures a Target (sink) operator.
type TargetConfig struct {
	TargetType TargetType        `json:"target_type"`
	Config     map[string]string `json:"config"`
}

// Path returns the "path" entry of Config, the file a file Target writes to.
func (t TargetConfig) Path() string {
	return t.Config["path"]
}

// ProjectConfig configures a Projection operator. The rewriter pushes
// Attributes into the upstream node and then discards the Projection node
// entirely once that push completes.
type ProjectConfig struct {
	Attributes []string `json:"projection_attributes"`
}

// JoinType enumerates supported join kinds. Only JoinTypeInner is
// implemented; any other value is an UnsupportedFeature at worker start.
type JoinType string

const JoinTypeInner JoinType = "inner"

// AttrPair names one left/right column pair a Join matches on.
type AttrPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// JoinConfig configures a Join operator.
type JoinConfig struct {
	JoinType          JoinType   `json:"join_type"`
	LeftRightAttrPairs []AttrPair `json:"left_right_attr_pairs"`
	JoinAlias         string     `json:"join_alias"`
}

// ExtendConfig configures an Extend operator: one Function expression per
// output attribute. The map key's first character is a sigil (conventionally
// "?") stripped when the header is announced downstream.
type ExtendConfig struct {
	ExtendPairs map[string]FunctionExpr `json:"extend_pairs"`
}

// SerializeFormat enumerates supported serialization formats.
type SerializeFormat string

const (
	FormatNTriples SerializeFormat = "ntriples"
	FormatNQuads   SerializeFormat = "nquads"
)

// SerializeConfig configures a Serialize operator.
type SerializeConfig struct {
	Format   SerializeFormat `json:"format"`
	Template string          `json:"template"`
}

// FragmentConfig configures a Fragmenter operator. It carries no fields:
// a Fragmenter's only job is fanning one input to many outputs, and the
// rewriter removes it before execution.
type FragmentConfig struct{}

// Operator is the tagged variant a plan node carries, decoded from the
// "type" discriminator of its JSON representation, e.g.:
//
//	{"type": "source", "config": {"source_type": "file", ...}}
type Operator struct {
	Kind      Kind
	Source    *SourceConfig
	Project   *ProjectConfig
	Join      *JoinConfig
	Extend    *ExtendConfig
	Serialize *SerializeConfig
	Target    *TargetConfig
	Fragment  *FragmentConfig
}

type wireOperator struct {
	Type   Kind            `json:"type"`
	Config json.RawMessage `json:"config"`
}

// UnmarshalJSON decodes the discriminated operator envelope into the
// matching config field.
func (o *Operator) UnmarshalJSON(data []byte) error {
	var wire wireOperator
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	o.Kind = wire.Type
	switch wire.Type {
	case KindSource:
		o.Source = &SourceConfig{}
		return decodeConfig(wire.Config, o.Source)
	case KindProject:
		o.Project = &ProjectConfig{}
		return decodeConfig(wire.Config, o.Project)
	case KindFragment:
		o.Fragment = &FragmentConfig{}
		return nil
	case KindJoin:
		o.Join = &JoinConfig{}
		return decodeConfig(wire.Config, o.Join)
	case KindExtend:
		o.Extend = &ExtendConfig{}
		return decodeConfig(wire.Config, o.Extend)
	case KindSerialize:
		o.Serialize = &SerializeConfig{}
		return decodeConfig(wire.Config, o.Serialize)
	case KindTarget:
		o.Target = &TargetConfig{}
		return decodeConfig(wire.Config, o.Target)
	default:
		return fmt.Errorf("unknown operator type %q", wire.Type)
	}
}

// MarshalJSON re-encodes the operator into its discriminated wire form.
func (o Operator) MarshalJSON() ([]byte, error) {
	var cfg any
	switch o.Kind {
	case KindSource:
		cfg = o.Source
	case KindProject:
		cfg = o.Project
	case KindFragment:
		cfg = o.Fragment
	case KindJoin:
		cfg = o.Join
	case KindExtend:
		cfg = o.Extend
	case KindSerialize:
		cfg = o.Serialize
	case KindTarget:
		cfg = o.Target
	}
	return json.Marshal(wireOperatorOut{Type: o.Kind, Config: cfg})
}

type wireOperatorOut struct {
	Type   Kind `json:"type"`
	Config any  `json:"config"`
}

func decodeConfig(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, into)
}

// IOKey returns a canonical string identifying this Source or Target's
// configuration, used by the rewriter's endpoint-merging pass to bucket
// structurally-equal I/O endpoints for merging. Two configs with the same
// key are considered the same source or sink.
func (s SourceConfig) IOKey() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// IOKey returns a canonical string identifying this Target's configuration.
// See SourceConfig.IOKey.
func (t TargetConfig) IOKey() string {
	b, _ := json.Marshal(t)
	return string(b)
}

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
	"strings"

	"github.com/mopperengine/mopper/function"
	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/operator"
	"github.com/mopperengine/mopper/tuple"
)

// RunSerialize renders an N-Triples/N-Quads line per inbound data tuple by
// substituting a "?var" template's variable parts with the named column's
// value, formatted according to that column's result type. Any other
// format is an UnsupportedFeature.
func RunSerialize(nodeID int, format operator.SerializeFormat, template string, receiver chan tuple.Tuple, senders []chan tuple.Tuple) Status {
	id := strconv.Itoa(nodeID)
	defer closeAll(senders)

	if format != operator.FormatNTriples && format != operator.FormatNQuads {
		drain(receiver)
		return Fail(1, moppererr.ErrUnsupportedFeature.New("serialize format "+string(format)))
	}

	parts := parseSerializeTemplate(template)

	names, ok := <-receiver
	if !ok {
		return OK
	}
	variableNames := names.Payload()

	types, ok := <-receiver
	if !ok {
		return OK
	}
	resultTypes := types.Payload()

	for data := range receiver {
		values := data.Payload()
		valueOf := make(map[string]string, len(variableNames))
		typeOf := make(map[string]string, len(variableNames))
		for i, name := range variableNames {
			if i < len(values) {
				valueOf[name] = values[i]
			}
			if i < len(resultTypes) {
				typeOf[name] = resultTypes[i]
			}
		}

		var line strings.Builder
		for _, part := range parts {
			if !part.IsVariable {
				line.WriteString(part.Text)
				continue
			}
			line.WriteString(formatSerializedValue(valueOf[part.Text], typeOf[part.Text]))
		}
		sendAll(senders, tuple.FromSlice(id, []string{line.String()}))
	}

	return OK
}

// formatSerializedValue renders value according to its result type tag.
// The "str" case emits the value itself, not the tag's name; see DESIGN.md.
func formatSerializedValue(value, resultType string) string {
	switch resultType {
	case "iri":
		return "<" + value + ">"
	case "lit":
		return "\"" + value + "\""
	case "blank":
		return "_:" + value
	default:
		return value
	}
}

// parseSerializeTemplate splits an N-Triples/N-Quads pattern like
// "<?s> <?p> ?o ." into literal and variable parts. A variable segment
// starts at '?' and ends at the first character that is not a letter,
// digit or underscore, not only at a space, so templates that wrap a
// variable in delimiters (as the angle brackets around "?s" do) still
// resolve to the bare column name.
func parseSerializeTemplate(template string) []function.TemplatePart {
	parts := make([]function.TemplatePart, 0, 4)
	var current strings.Builder
	inVariable := false

	flushLiteral := func() {
		if current.Len() > 0 {
			parts = append(parts, function.TemplatePart{IsVariable: false, Text: current.String()})
			current.Reset()
		}
	}
	flushVariable := func() {
		if current.Len() > 0 {
			parts = append(parts, function.TemplatePart{IsVariable: true, Text: current.String()})
			current.Reset()
		}
	}

	for _, c := range template {
		switch {
		case c == '?' && !inVariable:
			flushLiteral()
			inVariable = true
		case inVariable && !isIdentChar(c):
			flushVariable()
			inVariable = false
			current.WriteRune(c)
		default:
			current.WriteRune(c)
		}
	}
	if inVariable {
		flushVariable()
	} else {
		flushLiteral()
	}

	return parts
}

func isIdentChar(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

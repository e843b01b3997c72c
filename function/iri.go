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

package function

import (
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/mopperengine/mopper/tuple"
)

var iriLog = logrus.WithField("component", "function.iri")

// Iri wraps an inner expression, validating (and if necessary resolving
// against a base) each result as an IRI.
type Iri struct {
	inner Function
	base  string
}

// NewIri returns an Iri wrapping inner. base may be empty.
func NewIri(inner Function, base string) *Iri {
	return &Iri{inner: inner, base: base}
}

// BindHeaders forwards to the inner expression.
func (i *Iri) BindHeaders(headers []string) error {
	return i.inner.BindHeaders(headers)
}

// ResultType always reports iri.
func (i *Iri) ResultType() ResultType { return ResultTypeIri }

// Evaluate validates each of the inner expression's results as an absolute
// IRI; if not absolute, base is prepended and the result re-validated as an
// IRI reference. A value that still fails to validate is replaced by the
// sentinel "INVALID" and logged.
func (i *Iri) Evaluate(t tuple.Tuple) ([]string, error) {
	values, err := i.inner.Evaluate(t)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for idx, value := range values {
		if isAbsoluteIRI(value) {
			out[idx] = value
			continue
		}
		candidate := i.base + value
		if isIRIReference(candidate) {
			out[idx] = candidate
			continue
		}
		iriLog.Errorf("invalid IRI: %s", candidate)
		out[idx] = "INVALID"
	}
	return out, nil
}

// isAbsoluteIRI reports whether value parses as a URI with a scheme and,
// per RFC 3986, no unescaped whitespace or control characters.
func isAbsoluteIRI(value string) bool {
	if value == "" || containsForbiddenIRIByte(value) {
		return false
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.IsAbs()
}

// isIRIReference reports whether value parses as a (possibly relative)
// URI reference.
func isIRIReference(value string) bool {
	if value == "" || containsForbiddenIRIByte(value) {
		return false
	}
	_, err := url.Parse(value)
	return err == nil
}

func containsForbiddenIRIByte(value string) bool {
	for _, r := range value {
		if r <= 0x20 || r == 0x7f || r == '<' || r == '>' || r == '"' || r == '{' || r == '}' || r == '|' || r == '^' || r == '`' {
			return true
		}
	}
	return false
}

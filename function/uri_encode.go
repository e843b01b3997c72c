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
	"fmt"
	"strings"

	"github.com/mopperengine/mopper/tuple"
)

// UriEncode percent-encodes its inner expression's results using the
// RFC 3986 reserved set for a single path segment. Build compiles it from a
// "uri_encode" expression; TemplateString does not apply it to the values it
// substitutes.
type UriEncode struct {
	inner Function
}

// NewUriEncode returns a UriEncode wrapping inner.
func NewUriEncode(inner Function) *UriEncode {
	return &UriEncode{inner: inner}
}

// BindHeaders forwards to the inner expression.
func (u *UriEncode) BindHeaders(headers []string) error {
	return u.inner.BindHeaders(headers)
}

// ResultType inherits the inner expression's result type: UriEncode only
// transforms the string, it does not re-tag its meaning.
func (u *UriEncode) ResultType() ResultType {
	return u.inner.ResultType()
}

// Evaluate percent-encodes every result of the inner expression.
func (u *UriEncode) Evaluate(t tuple.Tuple) ([]string, error) {
	values, err := u.inner.Evaluate(t)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = encodePathSegment(v)
	}
	return out, nil
}

// encodePathSegment percent-encodes every byte of v not in the unreserved
// set, mirroring RFC 3986's segment-reserved encoding.
func encodePathSegment(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	default:
		return false
	}
}

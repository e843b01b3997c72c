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

import "strings"

// removeJoinAliasPrefix strips "<alias>_" from the front of name, if alias
// is non-empty and name actually carries that prefix. Used to compensate
// variable and reference names for a self-join that the rewriter elided.
func removeJoinAliasPrefix(name string, joinAlias string) string {
	if joinAlias == "" {
		return name
	}
	prefix := joinAlias + "_"
	return strings.TrimPrefix(name, prefix)
}

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

package mopper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mopperengine/mopper/options"
)

func writeCSVFixture(t *testing.T, dir, name string, rows []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644))
	return path
}

// personPlanJSON builds a minimal source -> extend -> serialize -> target
// plan, reading csvPath and emitting one NT line per row via an Iri over a
// Reference to "id" (with a person base) and a literal name.
func personPlanJSON(csvPath string) string {
	return fmt.Sprintf(`{
		"nodes": [
			{
				"operator": {
					"type": "source",
					"config": {
						"source_type": "file",
						"root_iterator": {"reference_formulation": "csv_rows"},
						"config": {"path": %q}
					}
				},
				"attributes": ["id", "name"]
			},
			{
				"operator": {
					"type": "extend",
					"config": {
						"extend_pairs": {
							"?s": {
								"type": "iri",
								"base": "http://example.org/person/",
								"inner_function": {"type": "reference", "value": "id"}
							},
							"?o": {
								"type": "literal",
								"inner_function": {"type": "reference", "value": "name"}
							}
						}
					}
				}
			},
			{
				"operator": {
					"type": "serialize",
					"config": {
						"format": "ntriples",
						"template": "?s <http://example.org/name> ?o ."
					}
				}
			},
			{
				"operator": {"type": "target", "config": {"target_type": "file", "config": {"path": "ignored.nt"}}}
			}
		],
		"edges": [[0, 1], [1, 2], [2, 3]]
	}`, csvPath)
}

func TestEngineRunSingleSourceToNTriples(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSVFixture(t, dir, "people.csv", []string{
		"id,name",
		"1,alice",
		"2,bob",
	})
	outPath := filepath.Join(dir, "out.nt")

	opts := options.New()
	opts.ForceToFile = outPath

	err := New(opts).Run(strings.NewReader(personPlanJSON(csvPath)))
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	sort.Strings(lines)
	require.Equal(t, []string{
		`<http://example.org/person/1> <http://example.org/name> "alice" .`,
		`<http://example.org/person/2> <http://example.org/name> "bob" .`,
	}, lines)
}

func TestEngineRunMissingSourceFileFails(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.nt")

	opts := options.New()
	opts.ForceToFile = outPath

	err := New(opts).Run(strings.NewReader(personPlanJSON(filepath.Join(dir, "does-not-exist.csv"))))
	require.Error(t, err)
}

func TestEngineRunForceStdOutOverridesFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeCSVFixture(t, dir, "people.csv", []string{
		"id,name",
		"1,alice",
	})
	outPath := filepath.Join(dir, "out.nt")

	opts := options.New()
	opts.ForceToStdOut = true
	opts.ForceToFile = outPath

	err := New(opts).Run(strings.NewReader(personPlanJSON(csvPath)))
	require.NoError(t, err)

	_, statErr := os.Stat(outPath)
	require.True(t, os.IsNotExist(statErr))
}

func TestStartDefaultRejectsMalformedPlan(t *testing.T) {
	err := StartDefault(strings.NewReader("not json"))
	require.Error(t, err)
}

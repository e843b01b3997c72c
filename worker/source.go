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
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mopperengine/mopper/moppererr"
	"github.com/mopperengine/mopper/tuple"
)

var sourceLog = logrus.WithField("component", "worker.source")

// RunSource reads path as a CSV file (its first record is the header),
// emits a header tuple naming the requested attributes, then one data
// tuple per remaining row. workingDirHint is joined onto path when path is
// not already absolute.
func RunSource(nodeID int, path string, workingDirHint string, attributes map[string]struct{}, senders []chan tuple.Tuple) Status {
	id := strconv.Itoa(nodeID)
	defer closeAll(senders)

	resolved := path
	if workingDirHint != "" && !filepath.IsAbs(path) {
		resolved = filepath.Join(workingDirHint, path)
	}

	f, err := os.Open(resolved)
	if err != nil {
		return Fail(1, moppererr.ErrSourceOpen.New(resolved, err))
	}
	defer f.Close()

	attrs := sortedAttributes(attributes)

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return OK
	}
	if err != nil {
		return Fail(1, moppererr.ErrSourceOpen.New(resolved, err))
	}

	indices := make([]int, 0, len(attrs))
	wantedAttrs := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		idx := indexOf(header, attr)
		if idx < 0 {
			sourceLog.Warnf("no field found with name %s", attr)
			continue
		}
		indices = append(indices, idx)
		wantedAttrs = append(wantedAttrs, attr)
	}

	sendAll(senders, tuple.FromSlice(id, wantedAttrs))

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Fail(1, moppererr.ErrRuntimeIO.New(err.Error()))
		}
		values := make([]string, len(indices))
		for i, idx := range indices {
			if idx < len(record) {
				values[i] = record[idx]
			}
		}
		sendAll(senders, tuple.FromSlice(id, values))
	}

	return OK
}

func sortedAttributes(attributes map[string]struct{}) []string {
	out := make([]string, 0, len(attributes))
	for a := range attributes {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

func indexOf(haystack []string, needle string) int {
	for i, v := range haystack {
		if v == needle {
			return i
		}
	}
	return -1
}

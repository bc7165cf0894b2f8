// Copyright 2025 Zintix Labs
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

package perf

import (
	"os"
	"testing"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
)

func work() {
	g := core.MustNew(core.Xoshiro128StarStar, 1, 2, 3, 4)
	g.Skip(100_000)
}

func TestRunPProfModes(t *testing.T) {
	dir := t.TempDir()
	for _, mode := range []string{"cpu", "heap", "allocs"} {
		path, err := RunPProf(work, mode, dir)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		st, err := os.Stat(path)
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if mode != "cpu" && st.Size() == 0 {
			t.Fatalf("%s profile is empty", mode)
		}
	}
}

func TestRunPProfNone(t *testing.T) {
	ran := false
	path, err := RunPProf(func() { ran = true }, "", t.TempDir())
	if err != nil || path != "" || !ran {
		t.Fatalf("plain run: path=%q err=%v ran=%v", path, err, ran)
	}
}

func TestRunPProfUnknown(t *testing.T) {
	_, err := RunPProf(work, "trace", t.TempDir())
	if errs.Level(err) != errs.Warn {
		t.Fatalf("unknown mode must be Warn, got %v", err)
	}
}

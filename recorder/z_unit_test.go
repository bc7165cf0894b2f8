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

package recorder

import (
	"math"
	"testing"

	"github.com/zintix-labs/prnglab/sdk/core"
)

func TestValueRecorderRecord(t *testing.T) {
	r, err := NewValueRecorder("p", core.SplitMix32, 10)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, v := range []float64{0.05, 0.5, 0.95} {
		r.Record(v)
	}
	rep := r.Done()
	if rep.Summary.Count != 3 || rep.Moment.Pairs != 2 {
		t.Fatalf("count=%d pairs=%d", rep.Summary.Count, rep.Moment.Pairs)
	}
	if rep.Summary.Min != 0.05 || rep.Summary.Max != 0.95 {
		t.Fatalf("min=%v max=%v", rep.Summary.Min, rep.Summary.Max)
	}
	if math.Abs(rep.Summary.Mean-0.5) > 1e-12 {
		t.Fatalf("mean = %v", rep.Summary.Mean)
	}
	if rep.Dist.Collect[0] != 1 || rep.Dist.Collect[5] != 1 || rep.Dist.Collect[9] != 1 {
		t.Fatalf("collect = %v", rep.Dist.Collect)
	}
	if rep.Summary.Algorithm != "splitmix32" || rep.Summary.Unit != "uniform" {
		t.Fatalf("summary = %+v", rep.Summary)
	}
}

func TestValueRecorderRawScale(t *testing.T) {
	r, err := NewValueRecorder("raw", core.LCGv1, 10)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r.Record(float64(1 << 30))
	if r.Max != 0.5 || r.Collect[5] != 1 {
		t.Fatalf("raw value not scaled: max=%v collect=%v", r.Max, r.Collect)
	}
	if rep := r.Done(); rep.Summary.Unit != "raw" {
		t.Fatalf("unit = %s", rep.Summary.Unit)
	}
}

func TestMergeValueRecorder(t *testing.T) {
	a, _ := NewValueRecorder("p", core.Tyche, 4)
	b, _ := NewValueRecorder("p", core.Tyche, 4)
	a.Record(0.1)
	a.Record(0.2)
	b.Record(0.9)

	m, err := MergeValueRecorder([]*ValueRecorder{a, b})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if m.Count != 3 || m.Workers != 2 {
		t.Fatalf("count=%d workers=%d", m.Count, m.Workers)
	}
	// 不同 worker 的流之間不計入相鄰乘積
	if m.Moment.Pairs != 1 || math.Abs(m.Moment.LagSum-0.02) > 1e-12 {
		t.Fatalf("pairs=%d lag=%v", m.Moment.Pairs, m.Moment.LagSum)
	}
	if m.Min != 0.1 || m.Max != 0.9 {
		t.Fatalf("min=%v max=%v", m.Min, m.Max)
	}

	c, _ := NewValueRecorder("q", core.Tyche, 4)
	if _, err := MergeValueRecorder([]*ValueRecorder{a, c}); err == nil {
		t.Fatalf("merging different profiles must fail")
	}
	if _, err := MergeValueRecorder(nil); err == nil {
		t.Fatalf("merging nothing must fail")
	}
}

func TestNewValueRecorderErrors(t *testing.T) {
	if _, err := NewValueRecorder("p", core.Algorithm(200), 10); err == nil {
		t.Fatalf("invalid algorithm must fail")
	}
	if _, err := NewValueRecorder("p", core.Tyche, 1); err == nil {
		t.Fatalf("single bucket must fail")
	}
}

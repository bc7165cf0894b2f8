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

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/stats"
)

// rawScale 將 raw 尺度（lcg_v1 的整數輸出）換算到 [0,1)。
const rawScale = 1.0 / (1 << 31)

// ValueRecorder 抽樣紀錄員
//
// ValueRecorder 只做累加，透過 Done 輸出統計報表
type ValueRecorder struct {
	Profile   string
	Algorithm core.Algorithm
	Workers   int
	Count     int
	Min       float64
	Max       float64
	Moment    *stats.MomentReport
	Collect   []int

	bucket  *stats.Bucket
	scale   float64
	prev    float64
	hasPrev bool
}

func NewValueRecorder(profile string, alg core.Algorithm, buckets int) (*ValueRecorder, error) {
	if !alg.Valid() {
		return nil, errs.Wrapf(errs.ErrUnknownAlgorithm, "recorder: algorithm id %d", uint8(alg))
	}
	if buckets < 2 {
		return nil, errs.Fatalf("recorder: need at least 2 buckets, got %d", buckets)
	}
	r := &ValueRecorder{
		Profile:   profile,
		Algorithm: alg,
		Workers:   1,
		Min:       math.Inf(1),
		Max:       math.Inf(-1),
		Moment:    new(stats.MomentReport),
		bucket:    stats.NewBucket(buckets),
		scale:     1,
	}
	if alg.Unit() == core.UnitRaw {
		r.scale = rawScale
	}
	r.Collect = make([]int, r.bucket.Len())
	return r, nil
}

// Record 紀錄一個輸出值（raw 尺度會先換算到 [0,1)）。
func (r *ValueRecorder) Record(v float64) {
	u := v * r.scale
	r.Count++
	r.Moment.Sum += u
	r.Moment.SumSq += u * u
	if r.hasPrev {
		r.Moment.LagSum += r.prev * u
		r.Moment.Pairs++
	}
	r.prev, r.hasPrev = u, true
	if u < r.Min {
		r.Min = u
	}
	if u > r.Max {
		r.Max = u
	}
	r.Collect[r.bucket.Index(u)]++
}

// MergeValueRecorder 合併多個 worker 的紀錄；相鄰值乘積只在各自的流內累計。
func MergeValueRecorder(rs []*ValueRecorder) (*ValueRecorder, error) {
	if len(rs) == 0 {
		return nil, errs.NewFatal("merge value record err : empty input")
	}
	r0 := rs[0]
	s, err := NewValueRecorder(r0.Profile, r0.Algorithm, len(r0.Collect))
	if err != nil {
		return nil, err
	}
	s.Workers = 0
	for _, v := range rs {
		if v.Profile != r0.Profile {
			return nil, errs.NewFatal("merge value record err : different profile")
		}
		if v.Algorithm != r0.Algorithm {
			return nil, errs.NewFatal("merge value record err : different algorithm")
		}
		if len(v.Collect) != len(r0.Collect) {
			return nil, errs.NewFatal("merge value record err : different bucket count")
		}
		s.Workers += v.Workers
		s.Count += v.Count
		s.Min = min(s.Min, v.Min)
		s.Max = max(s.Max, v.Max)
		s.Moment.Sum += v.Moment.Sum
		s.Moment.SumSq += v.Moment.SumSq
		s.Moment.LagSum += v.Moment.LagSum
		s.Moment.Pairs += v.Moment.Pairs
		for i, c := range v.Collect {
			s.Collect[i] += c
		}
	}
	return s, nil
}

// Done 產生報表；可重複呼叫，每次都回傳新的報表。
func (r *ValueRecorder) Done() *stats.SampleReport {
	minV, maxV := r.Min, r.Max
	if r.Count == 0 {
		minV, maxV = 0, 0
	}
	m := *r.Moment
	report := &stats.SampleReport{
		Summary: &stats.SummaryReport{
			Profile:   r.Profile,
			Algorithm: r.Algorithm.String(),
			Unit:      r.Algorithm.Unit().String(),
			Workers:   r.Workers,
			Count:     r.Count,
			Min:       minV,
			Max:       maxV,
		},
		Moment: &m,
		Dist: &stats.DistReport{
			Bucket:  r.bucket.Labels(),
			Collect: append([]int(nil), r.Collect...),
		},
	}
	report.Done()
	return report
}

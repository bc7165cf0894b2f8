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

package prnglab

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/recorder"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/setting"
	"github.com/zintix-labs/prnglab/stats"
)

// DefaultBuckets 抽樣報表預設的直方圖格數。
const DefaultBuckets = 10

// pbStep 每累積多少個值才推進一次進度條，避免熱路徑上的原子操作。
const pbStep = 4096

// Sampler 對一個 profile 抽樣並產出統計報表。
//
// 多線抽樣時，worker 0 使用 profile 本身的種子，其餘 worker 的種子由 splitmix32 從 profile 種子衍生，
// 因此同樣的 (profile, n, workers) 永遠得到同樣的報表。
type Sampler struct {
	Profile string
	Buckets int
	ss      *setting.StreamSetting
}

func newSampler(ss *setting.StreamSetting) (*Sampler, error) {
	if ss == nil {
		return nil, errs.NewFatal("nil stream setting")
	}
	return &Sampler{Profile: ss.Name, Buckets: DefaultBuckets, ss: ss}, nil
}

// Setting 回傳抽樣器使用的設定副本。
func (s *Sampler) Setting() *setting.StreamSetting {
	return s.ss.Clone()
}

// Sample 單線抽樣：以一條流連續取 n 個值，回傳統計結果與用時。
func (s *Sampler) Sample(n int, showpb bool) (*stats.SampleReport, time.Duration, error) {
	if n < 1 {
		return nil, 0, errs.NewWarn("sample count must > 0")
	}
	g, err := s.ss.NewGenerator()
	if err != nil {
		return nil, 0, err
	}
	r, err := recorder.NewValueRecorder(s.Profile, g.Algorithm(), s.Buckets)
	if err != nil {
		return nil, 0, err
	}

	bar := newBar(n, showpb)
	drain(g, r, n, bar)
	used := time.Since(bar.StartTime())
	bar.Finish()

	return r.Done(), used, nil
}

// SampleMP 平行執行 workers 條獨立的流，每條取 n 個值（總計 n*workers），合併後回傳統計結果與用時。
func (s *Sampler) SampleMP(n int, workers int, showpb bool) (*stats.SampleReport, time.Duration, error) {
	if workers <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	if n < 1 {
		return nil, 0, errs.NewWarn("sample count must > 0")
	}
	if n > math.MaxInt/workers {
		return nil, 0, errs.Warnf("n*workers overflows int: n=%d workers=%d", n, workers)
	}

	gBuf := make([]*core.Generator, workers)
	rBuf := make([]*recorder.ValueRecorder, workers)
	for i, seed := range DeriveSeeds(s.ss.Alg(), s.ss.Seed, workers) {
		g, err := core.New(s.ss.Alg(), seed...)
		if err != nil {
			return nil, 0, err
		}
		g.Skip(s.ss.Skip)
		r, err := recorder.NewValueRecorder(s.Profile, s.ss.Alg(), s.Buckets)
		if err != nil {
			return nil, 0, err
		}
		gBuf[i], rBuf[i] = g, r
	}

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	bar := newBar(n*workers, showpb)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			drain(gBuf[i], rBuf[i], n, bar)
		}(i)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	merged, err := recorder.MergeValueRecorder(rBuf)
	if err != nil {
		return nil, 0, err
	}
	return merged.Done(), used, nil
}

func newBar(total int, show bool) *pb.ProgressBar {
	bar := pb.StartNew(total)
	if !show {
		bar.SetWriter(io.Discard)
	}
	return bar
}

func drain(g *core.Generator, r *recorder.ValueRecorder, n int, bar *pb.ProgressBar) {
	pending := 0
	for range n {
		r.Record(g.Next())
		pending++
		if pending == pbStep {
			bar.Add(pending)
			pending = 0
		}
	}
	bar.Add(pending)
}

// DeriveSeeds 為 workers 條流產生各自的種子。
//
// 第 0 條沿用 base；其餘由一條 splitmix32 依序取值填滿，splitmix32 的種子為 base 各暫存器的 XOR 摺疊。
func DeriveSeeds(alg core.Algorithm, base []uint32, workers int) [][]uint32 {
	out := make([][]uint32, 0, max(workers, 0))
	if workers <= 0 {
		return out
	}
	out = append(out, append([]uint32(nil), base...))

	var fold uint32
	for _, v := range base {
		fold ^= v
	}
	mk := core.MustNew(core.SplitMix32, fold)
	arity := alg.Arity()
	for i := 1; i < workers; i++ {
		seed := make([]uint32, arity)
		for j := range seed {
			seed[j] = mk.Uint32()
		}
		out = append(out, seed)
	}
	return out
}

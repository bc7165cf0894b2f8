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

package core

import (
	"iter"

	"github.com/zintix-labs/prnglab/errs"
)

// State 為生成器的暫存器組（a, b, c, d）；只有前 Arity() 個有意義。
type State [4]uint32

// Generator 持有一組 State 與其轉移函數。
//
// 並發語意：
//   - Generator 不加鎖。同一個實例不應被多個 goroutine 同時取值。
//   - 若要併發，請每個 worker 各自建立一個 Generator，或由上層（例如 prnglab.Session）序列化存取。
//
// 生命週期：
//   - 由 New 以種子建立一次，每次 Next 恰好推進一次轉移。
//   - 不提供重設；要重頭開始請以相同種子再 New 一個。
type Generator struct {
	alg    Algorithm
	state  State
	step   stepFunc
	scale  scaleFunc
	pulled uint64
}

// New 驗證演算法與種子長度後建立 Generator。
//
// 錯誤：
//   - errs.ErrUnknownAlgorithm：alg 不在目錄內。
//   - errs.ErrInvalidSeedArity：len(seed) 與 alg.Arity() 不符。
func New(alg Algorithm, seed ...uint32) (*Generator, error) {
	if err := Validate(alg, seed); err != nil {
		return nil, err
	}
	e := table[alg]
	g := &Generator{
		alg:   alg,
		step:  e.step,
		scale: e.scale,
	}
	copy(g.state[:], seed)
	return g, nil
}

// NewByName 與 New 相同，但以對外名稱（例如 "sfc32"）選擇演算法。
func NewByName(name string, seed ...uint32) (*Generator, error) {
	alg, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return New(alg, seed...)
}

// MustNew 與 New 相同，失敗時 panic；僅建議用於常數種子的初始化。
func MustNew(alg Algorithm, seed ...uint32) *Generator {
	g, err := New(alg, seed...)
	if err != nil {
		panic(errs.Wrap(err, "core.MustNew"))
	}
	return g
}

// Algorithm 回傳建構時選定的演算法。
func (g *Generator) Algorithm() Algorithm {
	return g.alg
}

// Next 推進一次轉移並回傳縮放後的輸出（大多數演算法落在 [0,1)）。
func (g *Generator) Next() float64 {
	return g.scale(g.Uint32())
}

// Uint32 推進一次轉移並回傳未縮放的 32-bit tap。
//
// 注意：Uint32 與 Next 共用同一組狀態，兩者交錯呼叫會各自消耗一個值。
func (g *Generator) Uint32() uint32 {
	g.pulled++
	return g.step(&g.state)
}

// Skip 丟棄接下來的 n 個值；n <= 0 不做任何事。
func (g *Generator) Skip(n int) {
	for range n {
		g.Uint32()
	}
}

// Pulled 回傳自建立以來已推進的次數。
func (g *Generator) Pulled() uint64 {
	return g.pulled
}

// Seq 回傳以此 Generator 為底的無限惰性序列。
//
// 序列不可重來：中途 break 後再次 range，會從目前狀態接續，而不是從種子重新開始。
// Seq 與 Pull 是同一個 Next 的兩種視圖，可以混用，會共享進度。
func (g *Generator) Seq() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for {
			if !yield(g.Next()) {
				return
			}
		}
	}
}

// Pull 回傳零參數的取值函數，每次呼叫恰好推進一次。
func (g *Generator) Pull() func() float64 {
	return g.Next
}

// Fill 以連續輸出填滿 dst，回傳 dst。
func (g *Generator) Fill(dst []float64) []float64 {
	for i := range dst {
		dst[i] = g.Next()
	}
	return dst
}

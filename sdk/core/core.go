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

// Package core implements the uniform-deviate generator catalogue of prnglab.
//
// 每個演算法都是一個由 1、2 或 4 個 32-bit 暫存器組成的小型狀態機；
// 正確性的唯一標準是與該演算法公開參考實作「逐位元一致」。
//
// 本包只負責三件事：
//  1. 演算法目錄（Algorithm enum + 轉移函數表）。
//  2. 建構期驗證（名稱、種子長度）。
//  3. Generator：持有狀態並提供 Next / Seq / Pull 三種取值方式。
//
// 本包不做任何 I/O，不持有全域可變狀態，也不提供加鎖；同一個 Generator 不可被多個 goroutine 同時使用。
package core

import (
	"fmt"

	"github.com/zintix-labs/prnglab/errs"
)

// Algorithm 為封閉的演算法列舉，於建構 Generator 時選定後不可變。
type Algorithm uint8

const (
	Xoroshiro64Plus Algorithm = iota
	Xoroshiro64StarStar
	Xoroshiro64Star
	Xoshiro128Plus
	Xoshiro128StarStar
	SFC32
	GJRand32
	JSF32
	JSF32B
	Tyche
	TycheI
	Xorshift128
	Xorshift32
	LCGv1
	LCGv2
	Mulberry32
	SplitMix32

	numAlgorithms
)

// Unit 描述 Next 回傳值的尺度。
type Unit uint8

const (
	// UnitUniform 輸出落在 [0,1)。
	UnitUniform Unit = iota
	// UnitRaw 輸出為未縮放的整數（目前只有 lcg_v1）。
	UnitRaw
)

func (u Unit) String() string {
	if u == UnitRaw {
		return "raw"
	}
	return "uniform"
}

// stepFunc 執行一次狀態轉移並回傳 32-bit 輸出 tap。
type stepFunc func(s *State) uint32

// scaleFunc 將 tap 轉成對外的 float64。
type scaleFunc func(tap uint32) float64

type entry struct {
	name  string
	arity int
	unit  Unit
	step  stepFunc
	scale scaleFunc
}

// table 以 Algorithm 為索引，建構時查一次，熱路徑不做字串查找。
var table = [numAlgorithms]entry{
	Xoroshiro64Plus:     {name: "xoroshiro64+", arity: 2, step: xoroshiro64Plus, scale: toUnit32},
	Xoroshiro64StarStar: {name: "xoroshiro64**", arity: 2, step: xoroshiro64StarStar, scale: toUnit32},
	Xoroshiro64Star:     {name: "xoroshiro64*", arity: 2, step: xoroshiro64Star, scale: toUnit32},
	Xoshiro128Plus:      {name: "xoshiro128+", arity: 4, step: xoshiro128Plus, scale: toUnit32},
	Xoshiro128StarStar:  {name: "xoshiro128**", arity: 4, step: xoshiro128StarStar, scale: toUnit32},
	SFC32:               {name: "sfc32", arity: 4, step: sfc32, scale: toUnit32},
	GJRand32:            {name: "gjrand32", arity: 4, step: gjrand32, scale: toUnit32},
	JSF32:               {name: "jsf32", arity: 4, step: jsf32, scale: toUnit32},
	JSF32B:              {name: "jsf32b", arity: 4, step: jsf32b, scale: toUnit32},
	Tyche:               {name: "tyche", arity: 4, step: tyche, scale: toUnit32},
	TycheI:              {name: "tychei", arity: 4, step: tychei, scale: toUnit32},
	Xorshift128:         {name: "xorshift128", arity: 4, step: xorshift128, scale: toUnit32},
	Xorshift32:          {name: "xorshift32", arity: 1, step: xorshift32, scale: toUnit32},
	LCGv1:               {name: "lcg_v1", arity: 1, unit: UnitRaw, step: lcgV1, scale: toRaw},
	LCGv2:               {name: "lcg_v2", arity: 1, step: lcgV2, scale: toUnit31},
	Mulberry32:          {name: "mulberry32", arity: 1, step: mulberry32, scale: toUnit32},
	SplitMix32:          {name: "splitmix32", arity: 1, step: splitmix32, scale: toUnit32},
}

var byName = func() map[string]Algorithm {
	m := make(map[string]Algorithm, numAlgorithms)
	for i := range table {
		m[table[i].name] = Algorithm(i)
	}
	return m
}()

// ParseAlgorithm 依對外名稱（大小寫敏感）取得 Algorithm。
func ParseAlgorithm(name string) (Algorithm, error) {
	if a, ok := byName[name]; ok {
		return a, nil
	}
	return 0, errs.Wrapf(errs.ErrUnknownAlgorithm, "algorithm %q is not in the catalogue", name)
}

// All 依目錄順序回傳全部演算法。
func All() []Algorithm {
	out := make([]Algorithm, numAlgorithms)
	for i := range out {
		out[i] = Algorithm(i)
	}
	return out
}

// Valid 回報 a 是否屬於目錄。
func (a Algorithm) Valid() bool {
	return a < numAlgorithms
}

// String 回傳對外使用的名稱，例如 "xoshiro128**"。
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return table[a].name
}

// Arity 回傳所需的種子數量（1、2 或 4）；不在目錄內回傳 0。
func (a Algorithm) Arity() int {
	if !a.Valid() {
		return 0
	}
	return table[a].arity
}

// Unit 回傳輸出尺度。
func (a Algorithm) Unit() Unit {
	if !a.Valid() {
		return UnitUniform
	}
	return table[a].unit
}

// Validate 為唯一的建構期檢查點，失敗時不會配置任何狀態。
// 設定檔解析等呼叫端可先用它檢查，而不必真的建出 Generator。
func Validate(a Algorithm, seed []uint32) error {
	if !a.Valid() {
		return errs.Wrapf(errs.ErrUnknownAlgorithm, "algorithm id %d is not in the catalogue", uint8(a))
	}
	if want := table[a].arity; len(seed) != want {
		return errs.Wrapf(errs.ErrInvalidSeedArity, "%s needs %d seed(s), got %d", a, want, len(seed))
	}
	return nil
}

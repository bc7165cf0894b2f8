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

package dto

import (
	"github.com/zintix-labs/prnglab/sdk/core"
)

// AlgorithmInfo 為演算法目錄的對外描述。
type AlgorithmInfo struct {
	Name  string `json:"name"`
	Arity int    `json:"arity"` // 種子數量
	Unit  string `json:"unit"`  // uniform: [0,1)；raw: 未縮放整數
}

// Algorithms 依目錄順序列出全部演算法。
func Algorithms() []AlgorithmInfo {
	all := core.All()
	out := make([]AlgorithmInfo, len(all))
	for i, a := range all {
		out[i] = AlgorithmInfo{Name: a.String(), Arity: a.Arity(), Unit: a.Unit().String()}
	}
	return out
}

// StreamResult 為無狀態 /stream 的回應。
type StreamResult struct {
	Algorithm string    `json:"alg"`
	Seed      []uint32  `json:"seed"`
	Skip      int       `json:"skip"`
	Count     int       `json:"n"`
	Values    []float64 `json:"values"`
}

// ProfileValues 為共用 profile session 的取值回應。
type ProfileValues struct {
	Profile string    `json:"profile"`
	Count   int       `json:"n"`
	Pulled  uint64    `json:"pulled"` // 本次取值後，session 已推進的總步數（含 skip）
	Values  []float64 `json:"values"`
}

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

// Package setting 定義 profile 設定檔（一組具名的亂數流設定）的資料結構與解析入口。
package setting

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
)

// MaxSkip 一個 profile 建流時最多可丟棄的數量。Skip 為同步迴圈，不受 ctx 控制，必須有上限。
const MaxSkip = 1 << 24

// StreamSetting 是一個 profile：建立一條可重現亂數流所需的全部資訊。
type StreamSetting struct {
	Name        string   `yaml:"name"        json:"name"`
	Algorithm   string   `yaml:"algorithm"   json:"algorithm"`
	Seed        []uint32 `yaml:"seed"        json:"seed"`
	Skip        int      `yaml:"skip"        json:"skip"`
	Description string   `yaml:"description" json:"description,omitempty"`

	alg core.Algorithm
}

// Alg 回傳解析後的演算法，只有經過 GetStreamSettingByYAML/JSON 或 Init 之後才有意義。
func (ss *StreamSetting) Alg() core.Algorithm {
	return ss.alg
}

// Init 正規化欄位並執行基本檢查。
func (ss *StreamSetting) Init() error {
	ss.Name = strings.ToLower(strings.TrimSpace(ss.Name))
	ss.Algorithm = strings.TrimSpace(ss.Algorithm)
	return ss.valid()
}

func (ss *StreamSetting) valid() error {
	if ss.Name == "" {
		return errs.Wrapf(errs.ErrInvalidSetting, "profile name required")
	}
	alg, err := core.ParseAlgorithm(ss.Algorithm)
	if err != nil {
		return errs.Wrap(err, fmt.Sprintf("profile: %s", ss.Name))
	}
	if err := core.Validate(alg, ss.Seed); err != nil {
		return errs.Wrap(err, fmt.Sprintf("profile: %s", ss.Name))
	}
	if ss.Skip < 0 || ss.Skip > MaxSkip {
		return errs.Wrapf(errs.ErrInvalidSetting, "profile: %s err:skip must be in [0, %d], got %d", ss.Name, MaxSkip, ss.Skip)
	}
	ss.alg = alg
	return nil
}

// NewGenerator 依設定建出 Generator，並丟棄前 Skip 個輸出。
func (ss *StreamSetting) NewGenerator() (*core.Generator, error) {
	g, err := core.New(ss.alg, ss.Seed...)
	if err != nil {
		return nil, err
	}
	g.Skip(ss.Skip)
	return g, nil
}

// Clone 回傳深拷貝，種子 slice 不與原設定共用。
func (ss *StreamSetting) Clone() *StreamSetting {
	c := *ss
	c.Seed = append([]uint32(nil), ss.Seed...)
	return &c
}

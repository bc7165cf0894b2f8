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

// Package prnglab 提供亂數流的「取用入口」與 profile 的「組裝入口（assembler）」。
//
// 最小用法只需要兩個函數：
//
//	next, _ := prnglab.CreatePull("sfc32", 1, 2, 3, 4)
//	v := next() // [0,1)
//
//	seq, _ := prnglab.CreateStream("mulberry32", 42)
//	for v := range seq { ... } // 無限序列，break 即停止
//
// 進一步地，Lab 把設定檔來源（fs.FS）中的具名 profile 組裝起來，提供：
//   - Session：可被多個 goroutine 共用、依序吐值的具名亂數流。
//   - Runtime：每個 profile 一個 Session，附帶關閉生命週期（給後端服務使用）。
//   - Sampler：單線/多線抽樣並產出統計報表（給 CLI 診斷使用）。
package prnglab

import (
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/prnglab/catalog"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/setting"
)

// CreateStream 依名稱建立一條無限、惰性的 [0,1) 亂數流。
//
// 名稱未知回傳 errs.ErrUnknownAlgorithm；種子數量不符回傳 errs.ErrInvalidSeedArity。
// 回傳的序列持有自己的狀態：break 後再 range 會從下一個值接續，而不是從頭開始。
func CreateStream(name string, seed ...uint32) (iter.Seq[float64], error) {
	g, err := core.NewByName(name, seed...)
	if err != nil {
		return nil, err
	}
	return g.Seq(), nil
}

// CreatePull 與 CreateStream 相同，但回傳每呼叫一次就推進一步的函數。
func CreatePull(name string, seed ...uint32) (func() float64, error) {
	g, err := core.NewByName(name, seed...)
	if err != nil {
		return nil, err
	}
	return g.Pull(), nil
}

// Configs 用來把一或多個設定檔來源（fs.FS）打包成 New() 需要的參數。
//
// 可用 go:embed 把設定直接編進 binary，也可以用 os.DirFS 在本機開發時讀取目錄。
func Configs(cfgs ...fs.FS) []fs.FS {
	return cfgs
}

// Lab 是 profile 的組裝器與運行入口。
//
// 使用流程分成兩階段：
//   - 註冊階段：Register / RegisterAll 把設定檔宣告的 profile 放進 Catalog。
//   - 執行階段：Freeze 之後才能建立 Generator / Session / Sampler / Runtime。
type Lab struct {
	cat *catalog.Catalog
	sum []catalog.Summary
}

// New 建立一個 Lab instance（註冊階段）。cfgs 至少一個。
func New(cfgs []fs.FS) (*Lab, error) {
	if len(cfgs) == 0 {
		return nil, errs.NewFatal("configs required")
	}
	cat, err := catalog.New(cfgs...)
	if err != nil {
		return nil, err
	}
	return &Lab{cat: cat}, nil
}

// NewAuto 建立一個直接進入執行階段的 Lab：RegisterAll 後 Freeze。
func NewAuto(cfgs []fs.FS) (*Lab, error) {
	lab, err := New(cfgs)
	if err != nil {
		return nil, err
	}
	if err := lab.RegisterAll(); err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

func (l *Lab) Register(ents ...catalog.Entry) error {
	return l.cat.Register(ents...)
}

// RegisterAll
//
// 掃描所有設定檔來源，把可辨識的設定檔（.yaml/.yml/.json）解析成 *setting.StreamSetting，
// 並以設定檔內宣告的 name 批次註冊。
//
// 行為特性：
//  1. Fail-fast：任何一個檔案讀取/解析/檢查失敗，立刻回傳 error。
//  2. 原子性：全部檔案都通過檢查後才呼叫一次 Register。
//  3. 穩定性：fs.WalkDir 依檔名排序走訪，結果可重現。
func (l *Lab) RegisterAll() error {
	sources := l.cat.Cfg().Sources()
	if len(sources) == 0 {
		return errs.NewFatal("configs required")
	}

	entries := make([]catalog.Entry, 0, 16)
	seenName := map[string]string{}

	for _, src := range sources {
		walkErr := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.NewFatal(fmt.Sprintf("configs must be flat (no subdir): %q", path))
			}
			base := filepath.Base(path)
			if strings.HasPrefix(base, ".") || !catalog.IsConfigFile(base) {
				return nil
			}

			raw, rerr := fs.ReadFile(src, path)
			if rerr != nil {
				return errs.Wrap(rerr, fmt.Sprintf("read config failed: %s", base))
			}
			ss, perr := catalog.ParseSettingByExt(base, raw)
			if perr != nil {
				return errs.Wrap(perr, fmt.Sprintf("parse stream setting failed: %s", base))
			}

			if prev, ok := seenName[ss.Name]; ok {
				return errs.NewFatal(fmt.Sprintf("duplicate profile name: %s (config=%s and %s)", ss.Name, prev, base))
			}
			if _, ok := l.cat.GetByName(ss.Name); ok {
				return errs.NewFatal(fmt.Sprintf("profile name already registered: %s (config=%s)", ss.Name, base))
			}
			seenName[ss.Name] = base

			entries = append(entries, catalog.Entry{Name: ss.Name, ConfigName: base})
			return nil
		})
		if walkErr != nil {
			return walkErr
		}
	}

	if len(entries) == 0 {
		return errs.NewFatal("no config files found to register")
	}
	return l.cat.Register(entries...)
}

func (l *Lab) Freeze() {
	l.cat.Freeze()
}

func (l *Lab) EntryByName(name string) (catalog.Entry, bool) {
	return l.cat.GetByName(name)
}

func (l *Lab) Names() []string {
	return l.cat.Names()
}

func (l *Lab) All() []catalog.Entry {
	return l.cat.All()
}

// Summary 回傳所有 profile 的摘要；結果會被快取。
func (l *Lab) Summary() ([]catalog.Summary, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	if l.sum != nil {
		return l.sum, nil
	}
	names := l.cat.Names()
	out := make([]catalog.Summary, 0, len(names))
	for _, n := range names {
		ss, err := l.cat.SettingByName(n)
		if err != nil {
			return nil, err
		}
		out = append(out, catalog.NewSummary(ss))
	}
	l.sum = out
	return l.sum, nil
}

// Setting 回傳 profile 設定的獨立副本。
func (l *Lab) Setting(name string) (*setting.StreamSetting, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	return l.cat.SettingByName(name)
}

// NewGenerator 依 profile 建出一個新的 Generator（已丟棄 Skip 個值）。
//
// 同一個 profile 每次呼叫都得到相同起點的獨立 Generator。
func (l *Lab) NewGenerator(name string) (*core.Generator, error) {
	ss, err := l.Setting(name)
	if err != nil {
		return nil, err
	}
	return ss.NewGenerator()
}

// NewSession 依 profile 建出一個可共用的 Session。
func (l *Lab) NewSession(name string) (*Session, error) {
	ss, err := l.Setting(name)
	if err != nil {
		return nil, err
	}
	return newSession(ss)
}

// NewSampler 依 profile 建出抽樣器。
func (l *Lab) NewSampler(name string) (*Sampler, error) {
	ss, err := l.Setting(name)
	if err != nil {
		return nil, err
	}
	return newSampler(ss)
}

// NewSamplerByYAML 以臨時的 YAML 設定建出抽樣器，不需要先註冊到 Catalog。
func NewSamplerByYAML(raw []byte) (*Sampler, error) {
	ss, err := setting.GetStreamSettingByYAML(raw)
	if err != nil {
		return nil, err
	}
	return newSampler(ss)
}

// NewSamplerByJSON 以臨時的 JSON 設定建出抽樣器。
func NewSamplerByJSON(raw []byte) (*Sampler, error) {
	ss, err := setting.GetStreamSettingByJSON(raw)
	if err != nil {
		return nil, err
	}
	return newSampler(ss)
}

// NewSamplerBySetting 以已驗證的設定建出抽樣器。
func NewSamplerBySetting(ss *setting.StreamSetting) (*Sampler, error) {
	if ss == nil {
		return nil, errs.NewFatal("nil stream setting")
	}
	if err := ss.Init(); err != nil {
		return nil, err
	}
	return newSampler(ss.Clone())
}

// BuildRuntime 進入執行階段：Freeze Catalog 並為每個 profile 建好 Session。
func (l *Lab) BuildRuntime() (*Runtime, error) {
	l.Freeze()

	names := l.cat.Names()
	if len(names) == 0 {
		return nil, errs.NewFatal("no profiles registered")
	}
	rt := &Runtime{
		lab:      l,
		sessions: make(map[string]*Session, len(names)),
		names:    names,
		done:     make(chan struct{}),
	}
	rt.reason.Store("")

	// 先全建好（fail-fast）
	for _, n := range names {
		s, err := l.NewSession(n)
		if err != nil {
			return nil, err
		}
		rt.sessions[n] = s
	}
	return rt, nil
}

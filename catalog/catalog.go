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

// Package catalog 是 profile 目錄：哪些具名亂數流可用，以及各自對應的設定檔。
//
// 設定檔來源一律以 fs.FS 注入，且每個來源必須是扁平目錄（不允許子目錄），
// 檔名在所有來源之間必須唯一。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/setting"
)

var (
	ErrDupName   = errs.NewFatal("duplicate profile name")
	ErrDupConfig = errs.NewFatal("duplicate config name")
)

type Entry struct {
	Name       string
	ConfigName string
}

// Summary 為對外列舉用的 profile 摘要。
type Summary struct {
	Name        string   `json:"name"`
	Algorithm   string   `json:"algorithm"`
	Arity       int      `json:"arity"`
	Unit        string   `json:"unit"`
	Seed        []uint32 `json:"seed"`
	Skip        int      `json:"skip"`
	Description string   `json:"description,omitempty"`
}

func NewSummary(ss *setting.StreamSetting) Summary {
	return Summary{
		Name:        ss.Name,
		Algorithm:   ss.Alg().String(),
		Arity:       ss.Alg().Arity(),
		Unit:        ss.Alg().Unit().String(),
		Seed:        append([]uint32(nil), ss.Seed...),
		Skip:        ss.Skip,
		Description: ss.Description,
	}
}

type Catalog struct {
	byName map[string]Entry
	names  []string            // 用來穩定排序
	unique map[string]struct{} // 一組 profile，檔名需唯一
	config *multiFS
	frozen bool
}

func New(cfg ...fs.FS) (*Catalog, error) {
	mfs, err := newMultiFS(cfg...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		byName: map[string]Entry{},
		names:  make([]string, 0, 32),
		unique: map[string]struct{}{},
		config: mfs,
	}, nil
}

// Register 以「全有或全無」的方式註冊一批 Entry：任何一筆檢查失敗都不會寫入。
func (c *Catalog) Register(ents ...Entry) error {
	if c.frozen {
		return errs.NewWarn("can not register when catalog already frozen")
	}
	seenName := map[string]struct{}{}
	seenCfg := map[string]struct{}{}
	for i := range ents {
		ent := &ents[i]
		ent.Name = normName(ent.Name)
		if ent.Name == "" {
			return errs.NewFatal("profile name required")
		}
		if err := validFileName(ent.ConfigName); err != nil {
			return err
		}
		if _, ok := c.config.index[ent.ConfigName]; !ok {
			return errs.NewFatal(fmt.Sprintf("config file not found: %s", ent.ConfigName))
		}
		if _, ok := c.byName[ent.Name]; ok {
			return ErrDupName
		}
		if _, ok := seenName[ent.Name]; ok {
			return ErrDupName
		}
		if _, ok := c.unique[ent.ConfigName]; ok {
			return ErrDupConfig
		}
		if _, ok := seenCfg[ent.ConfigName]; ok {
			return ErrDupConfig
		}
		seenName[ent.Name] = struct{}{}
		seenCfg[ent.ConfigName] = struct{}{}
	}
	for _, ent := range ents {
		c.unique[ent.ConfigName] = struct{}{}
		c.byName[ent.Name] = ent
		c.names = append(c.names, ent.Name)
	}
	sort.Strings(c.names)
	return nil
}

func (c *Catalog) GetByName(name string) (Entry, bool) {
	e, ok := c.byName[normName(name)]
	return e, ok
}

func (c *Catalog) Names() []string {
	if len(c.names) == 0 {
		return nil
	}
	return append([]string(nil), c.names...)
}

func (c *Catalog) All() []Entry {
	out := make([]Entry, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}
	return out
}

func (c *Catalog) Cfg() *multiFS {
	return c.config
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

// SettingByName
//
// 會讀取 fs 中的 YAML/JSON 設定、初始化並執行基本檢查後回傳
func (c *Catalog) SettingByName(name string) (*setting.StreamSetting, error) {
	e, ok := c.GetByName(name)
	if !ok {
		return nil, errs.Wrapf(errs.ErrNotFound, "profile %q does not exist in catalog", name)
	}
	src, ok := c.config.GetFS(e.ConfigName)
	if !ok {
		return nil, errs.Wrapf(errs.ErrNotFound, "config %q does not exist in catalog", e.ConfigName)
	}
	raw, err := fs.ReadFile(src, e.ConfigName)
	if err != nil {
		return nil, errs.Wrap(err, "catalog read file error")
	}
	return ParseSettingByExt(e.ConfigName, raw)
}

// ParseSettingByExt 依副檔名選擇 YAML 或 JSON 解析。
func ParseSettingByExt(filename string, raw []byte) (*setting.StreamSetting, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return setting.GetStreamSettingByYAML(raw)
	case ".json":
		return setting.GetStreamSettingByJSON(raw)
	default:
		return nil, errs.NewFatal(fmt.Sprintf("unsupported config format: %q", filename))
	}
}

// IsConfigFile 回報檔名是否為可辨識的設定檔（.yaml/.yml/.json，大小寫不敏感）。
func IsConfigFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}

func normName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty config filename")
	}
	// 1) 不能包含路徑或類似字元
	if strings.ContainsAny(file, `/\:`) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must be a basename)", file))
	}
	// 2) 必須以 .yaml/.yml/.json 結尾
	if !IsConfigFile(file) {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (must end with .yaml, .yml, or .json)", file))
	}
	// 3) 不能以 . 開頭
	if strings.HasPrefix(file, ".") {
		return errs.NewFatal(fmt.Sprintf("invalid config filename: %q (cannot start with '.')", file))
	}
	return nil
}

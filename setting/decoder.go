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

package setting

import (
	"bytes"
	"encoding/json"

	"github.com/zintix-labs/prnglab/errs"
	"gopkg.in/yaml.v3"
)

// GetStreamSettingByYAML
// 會讀取 YAML 設定、初始化並執行基本檢查後回傳。
func GetStreamSettingByYAML(data []byte) (*StreamSetting, error) {
	ss := &StreamSetting{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 嚴格檢查：多寫/拼錯欄位就報錯
	if err := dec.Decode(ss); err != nil {
		return nil, errs.Wrap(errs.Wrap(errs.ErrInvalidSetting, err.Error()), "failed to unmarshall yaml")
	}
	if err := ss.Init(); err != nil {
		return nil, errs.Wrap(err, "stream setting initialized err")
	}
	return ss, nil
}

// GetStreamSettingByJSON
// 會讀取 Json 設定、初始化並執行基本檢查後回傳
func GetStreamSettingByJSON(data []byte) (*StreamSetting, error) {
	ss := &StreamSetting{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(ss); err != nil {
		return nil, errs.Wrap(errs.Wrap(errs.ErrInvalidSetting, err.Error()), "can not unmarshall json byte")
	}
	if err := ss.Init(); err != nil {
		return nil, errs.Wrap(err, "stream setting initialized err")
	}
	return ss, nil
}

// EncodeYAML 將設定序列化為 YAML，方便 CLI 匯出目前使用的 profile。
func EncodeYAML(ss *StreamSetting) ([]byte, error) {
	b, err := yaml.Marshal(ss)
	if err != nil {
		return nil, errs.Wrap(err, "setting : marshal yaml failed")
	}
	return b, nil
}

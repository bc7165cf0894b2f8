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

// Package seedfmt 提供種子的文字格式，供 CLI 與 HTTP query 使用。
//
// 格式為以逗號或空白分隔的 32-bit 無號整數，每一項可為十進位或 0x 開頭的十六進位：
//
//	"1,2,3,4"
//	"0xdeadbeef 0xcafebabe"
package seedfmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zintix-labs/prnglab/errs"
)

// ErrInvalidSeed 種子文字無法解析。
var ErrInvalidSeed = errs.NewWarn("invalid seed text")

func split(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\n'
}

// Parse 解析種子文字；空字串回傳 ErrInvalidSeed。
func Parse(s string) ([]uint32, error) {
	fields := strings.FieldsFunc(s, split)
	if len(fields) == 0 {
		return nil, errs.Wrapf(ErrInvalidSeed, "empty seed")
	}
	out := make([]uint32, 0, len(fields))
	for _, f := range fields {
		var (
			v   uint64
			err error
		)
		if h, ok := strings.CutPrefix(strings.ToLower(f), "0x"); ok {
			v, err = strconv.ParseUint(h, 16, 32)
		} else {
			v, err = strconv.ParseUint(f, 10, 32)
		}
		if err != nil {
			return nil, errs.Wrapf(ErrInvalidSeed, "seed item %q: %v", f, err)
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

// Format 以十進位、逗號分隔輸出，Parse(Format(x)) == x。
func Format(seed []uint32) string {
	var sb strings.Builder
	for i, v := range seed {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// FormatHex 以 0x%08x 輸出，方便閱讀位元樣式；Parse 可讀回。
func FormatHex(seed []uint32) string {
	var sb strings.Builder
	for i, v := range seed {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "0x%08x", v)
	}
	return sb.String()
}

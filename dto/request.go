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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/seedfmt"
	"github.com/zintix-labs/prnglab/setting"
)

const (
	// MaxCount 單次請求可取的最大數量。
	MaxCount = 100_000
	// MaxSkip 單次無狀態請求可丟棄的最大數量。
	MaxSkip = setting.MaxSkip
	// DefaultCount 未指定 n 時的數量。
	DefaultCount = 1
)

// StreamRequest 為無狀態取值請求：每次都以 (alg, seed) 新建一條流，丟棄 skip 個值後回傳 n 個。
type StreamRequest struct {
	Algorithm string   `json:"alg"`
	Seed      []uint32 `json:"seed"`
	Skip      int      `json:"skip"`
	Count     int      `json:"n"`
}

// DecodeStreamRequest 會把 HTTP 請求解碼成 StreamRequest。
//
// 支援：
//   - GET：從 query string 讀取 alg / seed / skip / n，seed 使用 seedfmt 文字格式（例如 "1,2,0xdeadbeef,4"）。
//   - POST：從 JSON body 反序列化，seed 為數字陣列。
//
// 注意：
//   - 這裡只負責解碼與範圍檢查；演算法名稱與種子數量由 core 在建構時驗證。
//   - POST 會對 body 做大小限制（1MiB）並拒絕未知欄位。
func DecodeStreamRequest(r *http.Request) (*StreamRequest, error) {
	if r == nil {
		return nil, errs.NewWarn("nil request")
	}
	req := &StreamRequest{Count: DefaultCount}

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req.Algorithm = q.Get("alg")
		seed, err := seedfmt.Parse(q.Get("seed"))
		if err != nil {
			return nil, err
		}
		req.Seed = seed
		if req.Skip, err = intParam(q.Get("skip"), 0); err != nil {
			return nil, errs.Wrap(err, "invalid skip")
		}
		if req.Count, err = intParam(q.Get("n"), DefaultCount); err != nil {
			return nil, errs.Wrap(err, "invalid n")
		}

	case http.MethodPost:
		const maxBody = 1 << 20
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(req); err != nil {
			return nil, errs.NewWarn(fmt.Sprintf("invalid json: %v", err))
		}

	default:
		return nil, errs.NewWarn("method not allowed")
	}

	if req.Algorithm == "" {
		return nil, errs.NewWarn("alg required")
	}
	if err := CheckCount(req.Count); err != nil {
		return nil, err
	}
	if req.Skip < 0 || req.Skip > MaxSkip {
		return nil, errs.Warnf("skip must be in [0, %d], got %d", MaxSkip, req.Skip)
	}
	return req, nil
}

// ParseCount 解析 query 內的 n；空字串回傳 DefaultCount。
func ParseCount(s string) (int, error) {
	n, err := intParam(s, DefaultCount)
	if err != nil {
		return 0, errs.Wrap(err, "invalid n")
	}
	if err := CheckCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

// CheckCount 檢查 n 是否在 [1, MaxCount]。
func CheckCount(n int) error {
	if n < 1 || n > MaxCount {
		return errs.Warnf("n must be in [1, %d], got %d", MaxCount, n)
	}
	return nil
}

func intParam(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.NewWarn(err.Error())
	}
	return v, nil
}

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

// Package v1 提供 /v1 路由下的 HTTP handler。
package v1

import (
	"net/http"

	"github.com/zintix-labs/prnglab/dto"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/server/httperr"
)

// Algorithms 列出全部演算法名稱、種子數量與輸出單位。
func Algorithms(w http.ResponseWriter, r *http.Request) {
	httperr.JSON(w, http.StatusOK, dto.Algorithms())
}

// Stream 為無狀態取值：每次請求都以 (alg, seed) 新建一條流，丟棄 skip 個值後回傳 n 個。
//
// 同樣的參數永遠得到同樣的結果，適合用來比對其他實作的輸出。
func Stream(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeStreamRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	g, err := core.NewByName(req.Algorithm, req.Seed...)
	if err != nil {
		// 未知演算法 / 種子數量錯誤皆為 Warn，尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "build stream err"))
		return
	}
	g.Skip(req.Skip)

	resp := dto.StreamResult{
		Algorithm: g.Algorithm().String(),
		Seed:      req.Seed,
		Skip:      req.Skip,
		Count:     req.Count,
		Values:    g.Fill(make([]float64, req.Count)),
	}
	httperr.JSON(w, http.StatusOK, resp)
}

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

package v1

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/dto"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server/httperr"
	"github.com/zintix-labs/prnglab/server/netsvr"
	"github.com/zintix-labs/prnglab/server/svrcfg"
	"github.com/zintix-labs/prnglab/stats"
)

const (
	// MaxSampleTotal 單次抽樣 n*workers 的上限。
	MaxSampleTotal = 10_000_000
	// MaxWorkers 單次抽樣的 worker 上限。
	MaxWorkers = 16

	takeTimeout = 5 * time.Second
)

// ============================================================
// ** ProfileHandler **
// ============================================================

// ProfileHandler 服務已註冊的 profile：列舉、共用 session 取值、重設與抽樣。
type ProfileHandler struct {
	rt  *prnglab.Runtime
	lab *prnglab.Lab
	log *slog.Logger
}

func NewProfileHandler(sCfg *svrcfg.SvrCfg) (*ProfileHandler, error) {
	rt, err := sCfg.Lab.BuildRuntime()
	if err != nil {
		return nil, errs.Wrap(err, "build profile handler error")
	}
	return &ProfileHandler{rt: rt, lab: sCfg.Lab, log: sCfg.Log}, nil
}

// Runtime 回傳 handler 持有的 Runtime，供外層在關閉時呼叫 Close。
func (ph *ProfileHandler) Runtime() *prnglab.Runtime {
	return ph.rt
}

// List 回傳所有 profile 的摘要。
func (ph *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	sum, err := ph.lab.Summary()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	httperr.JSON(w, http.StatusOK, sum)
}

// Next 從 profile 的共用 session 取出接下來 n 個值（預設 1）。
//
// 所有請求共用同一條流：兩個客戶端各取 n 個，拿到的是不重疊的兩段。
func (ph *ProfileHandler) Next(w http.ResponseWriter, r *http.Request) {
	name := netsvr.Param(r, "name")
	n, err := dto.ParseCount(r.URL.Query().Get("n"))
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	// 請求解析完成，設置超時 context
	ctx, cancel := context.WithTimeout(r.Context(), takeTimeout)
	defer cancel()

	vals, err := ph.rt.Take(ctx, name, n)
	if err != nil {
		httperr.Log(ph.log, "take failed", err)
		httperr.Errs(w, err)
		return
	}
	s, err := ph.rt.Session(name)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	httperr.JSON(w, http.StatusOK, dto.ProfileValues{
		Profile: s.Name(),
		Count:   len(vals),
		Pulled:  s.Pulled(),
		Values:  vals,
	})
}

// Reset 把 profile 的共用 session 重設回起點（重新套用 skip）。
func (ph *ProfileHandler) Reset(w http.ResponseWriter, r *http.Request) {
	name := netsvr.Param(r, "name")
	ctx, cancel := context.WithTimeout(r.Context(), takeTimeout)
	defer cancel()
	if err := ph.rt.Reset(ctx, name); err != nil {
		httperr.Errs(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Sample 對 profile 做抽樣診斷；每次都新建流，不影響共用 session。
func (ph *ProfileHandler) Sample(w http.ResponseWriter, r *http.Request) {
	name := netsvr.Param(r, "name")
	n, workers, err := parseSampleArgs(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	sp, err := ph.lab.NewSampler(name)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ph.writeSample(w, sp, n, workers)
}

// SampleByCfg 以請求內附的 profile 設定（JSON）抽樣，不需事先註冊。
func (ph *ProfileHandler) SampleByCfg(w http.ResponseWriter, r *http.Request) {
	type sampleByCfgRequest struct {
		Count   int             `json:"n"`
		Workers int             `json:"workers"`
		Setting json.RawMessage `json:"cfg"`
	}
	// 1. decode request
	req := new(sampleByCfgRequest)
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil && err != io.EOF {
		httperr.Errs(w, errs.NewWarn("invalid json: "+err.Error()))
		return
	}
	if req.Workers == 0 {
		req.Workers = 1
	}
	// 2. valid
	if err := checkSample(req.Count, req.Workers); err != nil {
		httperr.Errs(w, err)
		return
	}
	if len(req.Setting) == 0 {
		httperr.Errs(w, errs.NewWarn("cfg is required"))
		return
	}
	// 3. sampler
	sp, err := prnglab.NewSamplerByJSON(req.Setting)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ph.writeSample(w, sp, req.Count, req.Workers)
}

func (ph *ProfileHandler) writeSample(w http.ResponseWriter, sp *prnglab.Sampler, n, workers int) {
	// 內部結構 不影響外部 也不被外部使用
	type sampleResponse struct {
		Stats    *stats.SampleReport `json:"stats"`
		UsedTime int64               `json:"used_ms"`
	}
	var (
		rep  *stats.SampleReport
		used time.Duration
		err  error
	)
	if workers == 1 {
		rep, used, err = sp.Sample(n, false)
	} else {
		rep, used, err = sp.SampleMP(n, workers, false)
	}
	if err != nil {
		// 這裡的錯誤來自 sampler，尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "sample err"))
		return
	}
	httperr.JSON(w, http.StatusOK, sampleResponse{Stats: rep, UsedTime: used.Milliseconds()})
}

func parseSampleArgs(r *http.Request) (n, workers int, err error) {
	q := r.URL.Query()
	if s := q.Get("n"); s != "" {
		if n, err = strconv.Atoi(s); err != nil {
			return 0, 0, errs.NewWarn("n must be integer")
		}
	} else {
		return 0, 0, errs.NewWarn("n is required")
	}
	workers = 1
	if s := q.Get("workers"); s != "" {
		if workers, err = strconv.Atoi(s); err != nil {
			return 0, 0, errs.NewWarn("workers must be integer")
		}
	}
	return n, workers, checkSample(n, workers)
}

func checkSample(n, workers int) error {
	if workers < 1 || workers > MaxWorkers {
		return errs.Warnf("workers must be between 1 to %d", MaxWorkers)
	}
	// workers >= 1，用除法比較避免 n*workers 溢位
	if n < 1 || n > MaxSampleTotal/workers {
		return errs.Warnf("n*workers must be between 1 to %d", MaxSampleTotal)
	}
	return nil
}

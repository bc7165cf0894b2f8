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

package api

import (
	"log/slog"
	"net/http"

	"github.com/zintix-labs/prnglab"
	v1 "github.com/zintix-labs/prnglab/server/api/v1"
	"github.com/zintix-labs/prnglab/server/httperr"
	"github.com/zintix-labs/prnglab/server/netsvr"
	"github.com/zintix-labs/prnglab/server/netsvr/middleware"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

// RegisterRoutes 註冊 middleware、主頁與 v1 api。
//
// 回傳的 Runtime 持有各 profile 的共用 session，呼叫端負責在關閉時 Close。
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) (*prnglab.Runtime, error) {
	registerMiddleware(svr, sCfg.Log) // 1. 註冊 middleware
	registerIndex(svr)                // 2. 註冊主頁
	return registerV1API(svr, sCfg)   // 3. 註冊 v1 api
}

// 註冊 middleware
func registerMiddleware(svr netsvr.NetRouter, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover)
	svr.Use(middleware.Compression)
}

// 路由一覽，主頁直接列出
var routes = []string{
	"GET  /v1/algorithms",
	"GET  /v1/stream?alg=&seed=&skip=&n=",
	"POST /v1/stream",
	"GET  /v1/profiles",
	"GET  /v1/profiles/{name}/next?n=",
	"POST /v1/profiles/{name}/reset",
	"GET  /v1/profiles/{name}/sample?n=&workers=",
	"POST /v1/samplebycfg",
}

// 註冊主頁
func registerIndex(svr netsvr.NetRouter) {
	svr.Get("/", func(w http.ResponseWriter, r *http.Request) {
		httperr.JSON(w, http.StatusOK, map[string]any{
			"name":   "prnglab",
			"routes": routes,
		})
	})
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) (*prnglab.Runtime, error) {
	p, err := v1.NewProfileHandler(sCfg)
	if err != nil {
		return nil, err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/algorithms", v1.Algorithms)
		vOne.Get("/stream", v1.Stream)
		vOne.Post("/stream", v1.Stream)

		vOne.Get("/profiles", p.List)
		vOne.Get("/profiles/{name}/next", p.Next)
		vOne.Post("/profiles/{name}/reset", p.Reset)
		vOne.Get("/profiles/{name}/sample", p.Sample)
		vOne.Post("/samplebycfg", p.SampleByCfg)
	})
	return p.Runtime(), nil
}

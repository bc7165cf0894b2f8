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

// Package server 組裝 prnglab 的 HTTP 服務：驗證設定、註冊路由並交給 app.App 管理生命週期。
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server/api"
	"github.com/zintix-labs/prnglab/server/app"
	"github.com/zintix-labs/prnglab/server/logger"
	"github.com/zintix-labs/prnglab/server/netsvr"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

// Run 是 server 套件的組裝器與啟動入口。
//
// 它負責：
//  1. 驗證 SvrCfg（包含 logger、Lab、Addr）。
//  2. 建立 HTTP server（netsvr）。
//  3. 註冊路由與 middleware（api.RegisterRoutes）。
//  4. 阻塞於 app.Run()，收到 SIGINT/SIGTERM 後優雅關閉並回傳停止原因。
//
// Run 不綁定任何檔案路徑或環境變數策略；所有依賴都透過 SvrCfg 注入。
func Run(sCfg *svrcfg.SvrCfg) error {
	if err := sCfg.Valid(); err != nil {
		// 防止外層傳入的 logger 不可用
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return RunWithSvr(context.Background(), sCfg, netsvr.NewChiServer(sCfg.Addr))
}

// RunWithSvr 與 Run 相同，但允許呼叫端注入自訂的 NetSvr 與外層 ctx。
//
//   - svr 必須非 nil；若是 ChiAdapter 會要求 Ready() 為 true。
//   - ctx 結束或收到 OS 信號時開始優雅關閉。
//   - 結束時關閉 Runtime；若 logger 是 AsyncHandler 也會一併 Close，確保 log 全部寫出。
func RunWithSvr(ctx context.Context, sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if err := sCfg.Valid(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		err := errs.NewFatal("svr is required")
		sCfg.Log.Error(err.Error())
		return err
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok && !s.Ready() {
		err := errs.NewFatal("default server is not ready")
		sCfg.Log.Error(err.Error())
		return err
	}

	// 註冊 Api
	rt, err := api.RegisterRoutes(svr, sCfg)
	if err != nil {
		sCfg.Log.Error("register routes failed", slog.Any("err", err))
		return err
	}
	defer rt.Close()
	if ah, ok := sCfg.Log.Handler().(*logger.AsyncHandler); ok {
		defer ah.Close()
	}

	// 運行
	a := app.NewWith(svr)
	sCfg.Log.Info("[prnglab] listening", slog.String("addr", svr.Address()), slog.Int("profiles", len(rt.Names())))
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.RunContext(ctx); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	sCfg.Log.Info("[prnglab] stopped")
	return nil
}

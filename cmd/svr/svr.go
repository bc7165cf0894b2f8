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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/profiles"
	"github.com/zintix-labs/prnglab/server"
	"github.com/zintix-labs/prnglab/server/logger"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

// lab server 入口：載入內嵌 profile（可再加上 -configs 目錄），在 -addr 上提供 HTTP API。
func main() {
	cfg, err := loadConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := server.Run(cfg); err != nil {
		os.Exit(1)
	}
}

type config struct {
	Addr    string
	LogMode string
	LogBuf  int
	Configs string
}

func loadConfigFromFlags() (*svrcfg.SvrCfg, error) {
	cfg := new(config)
	flag.StringVar(&cfg.Addr, "addr", svrcfg.DefaultAddr, "listen address, e.g. :5808")
	flag.StringVar(&cfg.LogMode, "log-mode", "dev", "log mode: dev|prod|silence")
	flag.IntVar(&cfg.LogBuf, "log-buf", 4096, "async log buffer size")
	flag.StringVar(&cfg.Configs, "configs", "", "extra profile directory added to the embedded ones")

	flag.Parse()

	mode, err := logger.ParseLogMode(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	log, _ := logger.NewAsync(cfg.LogBuf, mode)

	srcs := prnglab.Configs(profiles.FS)
	if cfg.Configs != "" {
		srcs = append(srcs, os.DirFS(cfg.Configs))
	}
	lab, err := prnglab.NewAuto(srcs)
	if err != nil {
		return nil, err
	}
	return &svrcfg.SvrCfg{
		Log:  log,
		Lab:  lab,
		Addr: cfg.Addr,
	}, nil
}

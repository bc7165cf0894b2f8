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

// Package perf 為 CLI 提供 pprof 包裝：執行一段工作並寫出對應的 profile 檔。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zintix-labs/prnglab/errs"
)

// DefaultDir pprof 檔案預設寫入路徑
const DefaultDir = "build/profiling"

// Modes 列出支援的 profiling 模式；空字串代表不做 profiling。
var Modes = []string{"", "cpu", "heap", "allocs"}

// RunPProf 根據 mode 決定執行哪種 Profiling，檔案寫到 dir（空字串使用 DefaultDir）。
//
// 抽樣熱路徑（core 的 step 函數）可以用 cpu 模式找，也可以拿來做 pgo 的 blueprint：
//
//	go run ./cmd/run -profile xoshiro -n 100000000 -p cpu
func RunPProf(exe func(), mode, dir string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	switch mode {
	case "":
		exe()
		return "", nil
	case "cpu":
		return PProfCPU(exe, dir)
	case "heap":
		return snapshot(exe, dir, "heap")
	case "allocs":
		return snapshot(exe, dir, "allocs")
	default:
		return "", errs.Warnf("unknown pprof mode %q (want cpu, heap or allocs)", mode)
	}
}

// PProfCPU 在 exe 執行期間開啟 CPU profiling，回傳寫出的檔案路徑。
func PProfCPU(exe func(), dir string) (string, error) {
	f, path, err := create(dir, "cpu")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return "", errs.Wrap(err, "failed to start cpu profile")
	}
	exe()
	pprof.StopCPUProfile()
	return path, nil
}

// snapshot 在 exe() 執行完後寫出一次 heap（in-use）或 allocs（累積配置）快照。
//
// heap 寫出前先呼叫 runtime.GC()，讓 live objects 貼近最新狀態。
func snapshot(exe func(), dir, kind string) (string, error) {
	exe()
	if kind == "heap" {
		runtime.GC()
	}
	prof := pprof.Lookup(kind)
	if prof == nil {
		return "", errs.NewFatal("pprof profile not found: " + kind)
	}
	f, path, err := create(dir, kind)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := prof.WriteTo(f, 0); err != nil {
		return "", errs.Wrap(err, "failed to write "+kind+" profile")
	}
	return path, nil
}

func create(dir, kind string) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", errs.Wrap(err, "failed to create pprof dir")
	}
	path := filepath.Join(dir, kind+".pprof")
	f, err := os.Create(path)
	if err != nil {
		return nil, "", errs.Wrap(err, "failed to create "+kind+".pprof")
	}
	return f, path, nil
}

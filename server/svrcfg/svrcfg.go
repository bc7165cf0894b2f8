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

package svrcfg

import (
	"log/slog"
	"strings"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/server/logger"
)

const DefaultAddr = ":5808"

type SvrCfg struct {
	Log  *slog.Logger
	Lab  *prnglab.Lab
	Addr string
}

// Valid 正規化設定並檢查必要依賴。
//   - Log 為 nil 時補上預設的 async logger。
//   - Addr 為空時使用 DefaultAddr；只給 port（例如 "8080"）時補上冒號。
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	sc.Addr = strings.TrimSpace(sc.Addr)
	if sc.Addr == "" {
		sc.Addr = DefaultAddr
	}
	if !strings.Contains(sc.Addr, ":") {
		sc.Addr = ":" + sc.Addr
	}
	if sc.Lab == nil {
		return errs.NewFatal("lab is required")
	}
	return nil
}

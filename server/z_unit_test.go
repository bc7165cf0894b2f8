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

package server

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/server/netsvr"
	"github.com/zintix-labs/prnglab/server/svrcfg"
)

type lockedBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func testLab(t *testing.T) *prnglab.Lab {
	t.Helper()
	lab, err := prnglab.NewAuto(prnglab.Configs(fstest.MapFS{
		"alpha.yaml": {Data: []byte("name: alpha\nalgorithm: mulberry32\nseed: [1]\n")},
	}))
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	return lab
}

func TestRunWithSvrStopsOnContext(t *testing.T) {
	buf := new(lockedBuffer)
	sCfg := &svrcfg.SvrCfg{Log: slog.New(slog.NewTextHandler(buf, nil)), Lab: testLab(t)}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := RunWithSvr(ctx, sCfg, netsvr.NewChiServer("127.0.0.1:0")); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[prnglab] listening") || !strings.Contains(out, "[prnglab] stopped") {
		t.Fatalf("missing lifecycle logs: %s", out)
	}
}

func TestRunWithSvrRejectsMissingLab(t *testing.T) {
	sCfg := &svrcfg.SvrCfg{Log: slog.New(slog.NewTextHandler(new(lockedBuffer), nil))}
	if err := RunWithSvr(context.Background(), sCfg, netsvr.NewChiServer(":0")); err == nil {
		t.Fatalf("missing lab must fail")
	}
}

func TestRunWithSvrRejectsNilServer(t *testing.T) {
	sCfg := &svrcfg.SvrCfg{Log: slog.New(slog.NewTextHandler(new(lockedBuffer), nil)), Lab: testLab(t)}
	if err := RunWithSvr(context.Background(), sCfg, nil); err == nil {
		t.Fatalf("nil server must fail")
	}
}

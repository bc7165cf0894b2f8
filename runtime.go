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

package prnglab

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zintix-labs/prnglab/errs"
)

// Runtime 為每個 profile 持有一個 Session，並提供關閉生命週期。
type Runtime struct {
	lab *Lab

	sessions map[string]*Session
	names    []string // 固定順序，用於列舉

	// lifecycle
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
	reason    atomic.Value // string
}

func (rt *Runtime) check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errs.NewWarn("take canceled/timeout: " + ctx.Err().Error())
	case <-rt.done:
		// done 為唯一真相；closed 只是方便快速讀取
		rt.closed.Store(true)
		return errs.NewFatal("runtime closed: " + rt.ClosedReason())
	default:
		return nil
	}
}

// Session 依 profile 名稱取得 Session。
func (rt *Runtime) Session(name string) (*Session, error) {
	if n, ok := rt.lab.EntryByName(name); ok {
		if s, ok := rt.sessions[n.Name]; ok {
			return s, nil
		}
	}
	return nil, errs.Wrapf(errs.ErrNotFound, "profile %q not found", name)
}

// Take 從 profile 的共用 Session 取出接下來 n 個值。
func (rt *Runtime) Take(ctx context.Context, name string, n int) ([]float64, error) {
	if err := rt.check(ctx); err != nil {
		return nil, err
	}
	s, err := rt.Session(name)
	if err != nil {
		return nil, err
	}
	return s.Take(n)
}

// Reset 把 profile 的 Session 重設回起點。
func (rt *Runtime) Reset(ctx context.Context, name string) error {
	if err := rt.check(ctx); err != nil {
		return err
	}
	s, err := rt.Session(name)
	if err != nil {
		return err
	}
	return s.Reset()
}

func (rt *Runtime) Names() []string {
	return append([]string(nil), rt.names...)
}

func (rt *Runtime) Lab() *Lab {
	return rt.lab
}

// Close transitions the runtime into a closed state. It is safe to call multiple times.
func (rt *Runtime) Close() {
	rt.closeWithReason("closed")
}

// closeWithReason closes the runtime and records the reason (written once).
func (rt *Runtime) closeWithReason(reason string) {
	rt.closeOnce.Do(func() {
		if reason == "" {
			reason = "closed"
		}
		rt.reason.Store(reason)
		rt.closed.Store(true)
		close(rt.done)
	})
}

// Closed reports whether the runtime has been closed.
func (rt *Runtime) Closed() bool {
	return rt.closed.Load()
}

func (rt *Runtime) ClosedReason() string {
	if v := rt.reason.Load(); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

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
	"sync"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/setting"
)

// MaxTake 單次 Take 可取出的最大數量。
const MaxTake = 100_000

// Session 封裝一條「可被多個 goroutine 共用」的具名亂數流。
//
// 並發語意：
//   - core.Generator 本身不加鎖；Session 以 mutex 保護它，使每個值只被取出一次且順序不變。
//   - Take(n) 在同一個臨界區內取出連續 n 個值，不會與其他呼叫交錯。
type Session struct {
	name string
	ss   *setting.StreamSetting
	g    *core.Generator
	mu   sync.Mutex
}

func newSession(ss *setting.StreamSetting) (*Session, error) {
	g, err := ss.NewGenerator()
	if err != nil {
		return nil, err
	}
	return &Session{name: ss.Name, ss: ss, g: g}, nil
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) Algorithm() core.Algorithm {
	return s.g.Algorithm()
}

// Next 取出下一個值。
func (s *Session) Next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Next()
}

// Take 取出接下來連續的 n 個值；n 必須在 [1, MaxTake]。
func (s *Session) Take(n int) ([]float64, error) {
	if n < 1 || n > MaxTake {
		return nil, errs.Warnf("take count must be in [1, %d], got %d", MaxTake, n)
	}
	out := make([]float64, n)
	s.mu.Lock()
	s.g.Fill(out)
	s.mu.Unlock()
	return out, nil
}

// Pulled 回傳自建立以來（含 Skip）已推進的步數。
func (s *Session) Pulled() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Pulled()
}

// Reset 把 Session 重設回 profile 的起點。
func (s *Session) Reset() error {
	g, err := s.ss.NewGenerator()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.g = g
	s.mu.Unlock()
	return nil
}

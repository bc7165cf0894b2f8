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
	"testing"
	"testing/fstest"

	"github.com/zintix-labs/prnglab"
)

func TestValid(t *testing.T) {
	sc := &SvrCfg{}
	if err := sc.Valid(); err == nil {
		t.Fatalf("missing lab must fail")
	}
	if sc.Log == nil {
		t.Fatalf("nil logger must be replaced by a default")
	}

	lab, err := prnglab.NewAuto(prnglab.Configs(fstest.MapFS{
		"a.yaml": {Data: []byte("name: a\nalgorithm: splitmix32\nseed: [1]\n")},
	}))
	if err != nil {
		t.Fatalf("lab: %v", err)
	}
	cases := map[string]string{"": DefaultAddr, "8080": ":8080", " 127.0.0.1:9000 ": "127.0.0.1:9000"}
	for in, want := range cases {
		sc := &SvrCfg{Lab: lab, Addr: in}
		if err := sc.Valid(); err != nil {
			t.Fatalf("valid: %v", err)
		}
		if sc.Addr != want {
			t.Fatalf("addr %q normalised to %q, want %q", in, sc.Addr, want)
		}
	}
}

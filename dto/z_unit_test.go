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

package dto

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zintix-labs/prnglab/errs"
	"github.com/zintix-labs/prnglab/seedfmt"
)

func TestDecodeStreamRequestGET(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/stream?alg=sfc32&seed=1,2,3,0x10&skip=5&n=7", nil)
	req, err := DecodeStreamRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Algorithm != "sfc32" || req.Skip != 5 || req.Count != 7 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if len(req.Seed) != 4 || req.Seed[3] != 16 {
		t.Fatalf("unexpected seed: %v", req.Seed)
	}
}

func TestDecodeStreamRequestDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/stream?alg=xorshift32&seed=9", nil)
	req, err := DecodeStreamRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Count != DefaultCount || req.Skip != 0 {
		t.Fatalf("unexpected defaults: %+v", req)
	}
}

func TestDecodeStreamRequestPOST(t *testing.T) {
	data := []byte(`{"alg":"tyche","seed":[1,2,3,4],"n":3}`)
	r := httptest.NewRequest(http.MethodPost, "/v1/stream", bytes.NewReader(data))
	req, err := DecodeStreamRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Algorithm != "tyche" || req.Count != 3 || len(req.Seed) != 4 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestDecodeStreamRequestErrors(t *testing.T) {
	gets := []string{
		"/v1/stream?seed=1",
		"/v1/stream?alg=sfc32",
		"/v1/stream?alg=sfc32&seed=x",
		"/v1/stream?alg=sfc32&seed=1&n=0",
		"/v1/stream?alg=sfc32&seed=1&n=100001",
		"/v1/stream?alg=sfc32&seed=1&skip=-1",
		"/v1/stream?alg=sfc32&seed=1&n=abc",
	}
	for _, u := range gets {
		_, err := DecodeStreamRequest(httptest.NewRequest(http.MethodGet, u, nil))
		if err == nil {
			t.Fatalf("%s: expected error", u)
		}
		if errs.Level(err) != errs.Warn {
			t.Fatalf("%s: request errors must be Warn, got %v", u, err)
		}
	}
	_, err := DecodeStreamRequest(httptest.NewRequest(http.MethodGet, "/v1/stream?alg=sfc32", nil))
	if !errors.Is(err, seedfmt.ErrInvalidSeed) {
		t.Fatalf("missing seed must be ErrInvalidSeed, got %v", err)
	}

	data := []byte(`{"alg":"tyche","seed":[1,2,3,4],"unknown":true}`)
	if _, err := DecodeStreamRequest(httptest.NewRequest(http.MethodPost, "/v1/stream", bytes.NewReader(data))); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if _, err := DecodeStreamRequest(httptest.NewRequest(http.MethodDelete, "/v1/stream", nil)); err == nil {
		t.Fatalf("expected error for method")
	}
}

func TestParseCount(t *testing.T) {
	if n, err := ParseCount(""); err != nil || n != DefaultCount {
		t.Fatalf("default: %d %v", n, err)
	}
	if n, err := ParseCount("42"); err != nil || n != 42 {
		t.Fatalf("42: %d %v", n, err)
	}
	for _, s := range []string{"0", "-3", "x", "100001"} {
		if _, err := ParseCount(s); err == nil {
			t.Fatalf("%q: expected error", s)
		}
	}
}

func TestAlgorithms(t *testing.T) {
	all := Algorithms()
	if len(all) != 17 {
		t.Fatalf("len = %d, want 17", len(all))
	}
	if all[0].Name != "xoroshiro64+" || all[0].Arity != 2 {
		t.Fatalf("unexpected first: %+v", all[0])
	}
	if all[13].Name != "lcg_v1" || all[13].Unit != "raw" {
		t.Fatalf("unexpected lcg_v1: %+v", all[13])
	}
}

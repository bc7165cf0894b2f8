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

package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapKeepsLevel(t *testing.T) {
	e := Wrapf(ErrInvalidSeedArity, "sfc32 needs %d seeds, got %d", 4, 1)
	if e.ErrLv != Warn {
		t.Fatalf("wrapped sentinel must stay Warn, got %s", ErrLv(e.ErrLv))
	}
	if !errors.Is(e, ErrInvalidSeedArity) {
		t.Fatalf("errors.Is must see the sentinel through Wrap")
	}
	outer := Wrap(e, "build stream err")
	if !errors.Is(outer, ErrInvalidSeedArity) || Level(outer) != Warn {
		t.Fatalf("double wrap lost sentinel or level: %v", outer)
	}
}

func TestWrapForeignIsFatal(t *testing.T) {
	e := Wrap(fmt.Errorf("disk full"), "write profile")
	if e.ErrLv != Fatal {
		t.Fatalf("foreign cause must be Fatal, got %s", ErrLv(e.ErrLv))
	}
	if !strings.Contains(e.Error(), "cause: disk full") {
		t.Fatalf("cause missing from message: %s", e.Error())
	}
}

func TestLevel(t *testing.T) {
	cases := []struct {
		err  error
		want ErrLevel
	}{
		{nil, None},
		{NewLog("x"), Log},
		{Warnf("n=%d", 0), Warn},
		{Fatalf("boom"), Fatal},
		{errors.New("plain"), Fatal},
		{fmt.Errorf("ctx: %w", ErrNotFound), Warn},
	}
	for i, c := range cases {
		if got := Level(c.err); got != c.want {
			t.Fatalf("case %d: Level = %d, want %d", i, got, c.want)
		}
	}
}

func TestErrorFormat(t *testing.T) {
	e := NewWithExtra(Warn, "bad seed", "word 3")
	if got, want := e.Error(), "errlv=warn bad seed | extra: word 3"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if _, ok := AsErr(errors.New("plain")); ok {
		t.Fatalf("AsErr must reject foreign errors")
	}
}

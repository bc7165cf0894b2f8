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
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zintix-labs/prnglab"
	"github.com/zintix-labs/prnglab/profiles"
	"github.com/zintix-labs/prnglab/sdk/core"
	"github.com/zintix-labs/prnglab/sdk/perf"
	"github.com/zintix-labs/prnglab/seedfmt"
	"github.com/zintix-labs/prnglab/setting"
	"github.com/zintix-labs/prnglab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cfg *config = new(config)

type config struct {
	alg       string
	seed      string
	profile   string
	configs   string
	n         int
	skip      int
	worker    int
	out       string
	pprofmode string
}

// 輸出格式
const (
	outValues  = "values"
	outReport  = "report"
	outJSON    = "json"
	outYAML    = "yaml"
	outProfile = "profile"
)

func bindVar() {
	flag.StringVar(&cfg.alg, "alg", "", "algorithm name, e.g. xoshiro128**, sfc32, lcg_v1")
	flag.StringVar(&cfg.seed, "seed", "", "seed words, e.g. 1,2,3,4 or 0x9e3779b9 (empty: random)")
	flag.StringVar(&cfg.profile, "profile", "", "registered profile name (exclusive with -alg)")
	flag.StringVar(&cfg.configs, "configs", "", "extra profile directory added to the embedded ones")
	flag.IntVar(&cfg.n, "n", 1_000_000, "values per worker")
	flag.IntVar(&cfg.skip, "skip", 0, "values discarded before output (with -alg)")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers (report/json/yaml)")
	flag.StringVar(&cfg.out, "out", outReport, "output: values|report|json|yaml|profile")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: "+strings.Join(perf.Modes[1:], ", "))

	flag.Parse()
}

// 這裡解析並分支要執行的輸出
func execute() {
	cfg.valid() // 基本檢查

	ss, err := cfg.setting()
	if err != nil {
		log.Fatal(err)
	}
	// 至此確保可執行
	if err := run(os.Stdout, ss); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, ss *setting.StreamSetting) error {
	switch cfg.out {
	case outValues:
		return writeValues(w, ss, cfg.n)
	case outProfile:
		raw, err := setting.EncodeYAML(ss)
		if err != nil {
			return err
		}
		_, err = w.Write(raw)
		return err
	}

	sp, err := prnglab.NewSamplerBySetting(ss)
	if err != nil {
		return err
	}
	report := cfg.out == outReport
	if report {
		green := "\033[1;32m"
		reset := "\033[0m"
		p := message.NewPrinter(language.English)
		p.Fprintf(w, "%s[WORKERS:%d] [PROFILE:%s] [ALG:%s] [SEED:%s] [N:%d]%s\n",
			green, cfg.worker, ss.Name, ss.Alg(), seedfmt.Format(ss.Seed), cfg.n*cfg.worker, reset)
	}

	var (
		st   *stats.SampleReport
		used time.Duration
	)
	if cfg.worker == 1 {
		st, used, err = sp.Sample(cfg.n, report)
	} else {
		st, used, err = sp.SampleMP(cfg.n, cfg.worker, report) // 併發
	}
	if err != nil {
		return err
	}
	switch cfg.out {
	case outJSON:
		return st.WriteWith(w, new(stats.JsonSampleReportRender))
	case outYAML:
		return st.WriteWith(w, new(stats.YAMLSampleReportRender))
	default:
		st.StdOut(used)
		return nil
	}
}

// writeValues 一行一個值，raw 單位的演算法輸出整數
func writeValues(w io.Writer, ss *setting.StreamSetting, n int) error {
	g, err := ss.NewGenerator()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	raw := g.Algorithm().Unit() == core.UnitRaw
	buf := make([]byte, 0, 32)
	for range n {
		v := g.Next()
		if raw {
			buf = strconv.AppendUint(buf[:0], uint64(v), 10)
		} else {
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// setting 依 flag 組出本次使用的 profile：-profile 取已註冊設定，否則以 -alg/-seed/-skip 臨時組裝。
func (cfg *config) setting() (*setting.StreamSetting, error) {
	if cfg.profile != "" {
		srcs := prnglab.Configs(profiles.FS)
		if cfg.configs != "" {
			srcs = append(srcs, os.DirFS(cfg.configs))
		}
		lab, err := prnglab.NewAuto(srcs)
		if err != nil {
			return nil, err
		}
		return lab.Setting(cfg.profile)
	}

	alg, err := core.ParseAlgorithm(cfg.alg)
	if err != nil {
		return nil, err
	}
	var seed []uint32
	if strings.TrimSpace(cfg.seed) == "" {
		seed = randomSeed(alg.Arity())
		fmt.Fprintf(os.Stderr, "random seed: %s\n", seedfmt.FormatHex(seed))
	} else if seed, err = seedfmt.Parse(cfg.seed); err != nil {
		return nil, err
	}
	ss := &setting.StreamSetting{
		Name:      "cli",
		Algorithm: alg.String(),
		Seed:      seed,
		Skip:      cfg.skip,
	}
	if err := ss.Init(); err != nil {
		return nil, err
	}
	return ss, nil
}

func randomSeed(arity int) []uint32 {
	b := make([]byte, 4*arity)
	if _, err := rand.Read(b); err != nil {
		log.Fatal(err)
	}
	seed := make([]uint32, arity)
	for i := range seed {
		seed[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return seed
}

func (cfg *config) valid() {
	// 工作協程檢查(併發數)
	if cfg.worker < 1 {
		log.Fatal("value err : workers must > 0")
	}
	if cfg.n < 1 {
		log.Fatal("value err : n must > 0")
	}
	if cfg.n > math.MaxInt/cfg.worker {
		log.Fatal("value err : n*worker overflows int")
	}
	if cfg.skip < 0 {
		log.Fatal("value err : skip must >= 0")
	}
	if cfg.profile != "" && cfg.alg != "" {
		log.Fatal("value err : -profile and -alg are exclusive")
	}
	if cfg.profile == "" && cfg.alg == "" {
		cfg.alg = core.Xoshiro128StarStar.String()
	}
	switch cfg.out {
	case outValues, outReport, outJSON, outYAML, outProfile:
	default:
		log.Fatal("value err : unknown -out " + cfg.out)
	}
}

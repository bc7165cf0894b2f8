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

package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var lang language.Tag = language.English

// SampleReport 亂數流抽樣診斷報告
//
// 只是健全性檢查（sanity check），不是隨機性認證。
type SampleReport struct {
	Summary    *SummaryReport    `json:"Summary"`
	Moment     *MomentReport     `json:"Moment"`
	Dist       *DistReport       `json:"Dist"`
	Uniformity *UniformityReport `json:"Uniformity"`
	isDone     bool
}

type SummaryReport struct {
	Profile    string  `json:"Profile"`
	Algorithm  string  `json:"Algorithm"`
	Unit       string  `json:"Unit"`
	Workers    int     `json:"Workers"`
	Count      int     `json:"Count"`
	Mean       float64 `json:"Mean"`
	Variance   float64 `json:"Variance"`
	Std        float64 `json:"Std"`
	Min        float64 `json:"Min"`
	Max        float64 `json:"Max"`
	SerialCorr float64 `json:"SerialCorr"`
}

// MomentReport 原始累計量
//
// 紀錄時只累加，Done() 時才換算成平均數與變異數
type MomentReport struct {
	Sum    float64 `json:"Sum"`
	SumSq  float64 `json:"SumSq"`  // 平方和
	LagSum float64 `json:"LagSum"` // 相鄰兩值乘積和
	Pairs  int     `json:"Pairs"`
}

// DistReport 區間落點統計
type DistReport struct {
	Bucket  []string  `json:"Bucket"`
	Collect []int     `json:"Collect"`
	Freq    []float64 `json:"Freq"`
}

// UniformityReport 對均勻分佈的卡方檢定
type UniformityReport struct {
	ChiSquare float64 `json:"ChiSquare"`
	DoF       int     `json:"DoF"`
	PValue    float64 `json:"PValue"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累計量轉換為最終統計結果並鎖定 isDone 標記。
func (s *SampleReport) Done() {
	if s.isDone {
		return
	}
	s.Summary.Mean = s.Mean()
	s.Summary.Variance = s.Variance()
	s.Summary.Std = math.Sqrt(s.Summary.Variance)
	s.Summary.SerialCorr = s.SerialCorr()

	n := float64(s.Summary.Count)
	s.Dist.Freq = make([]float64, len(s.Dist.Collect))
	if n > 0 {
		for i, c := range s.Dist.Collect {
			s.Dist.Freq[i] = float64(c) / n
		}
	}
	s.Uniformity = s.ChiSquare()
	s.isDone = true
}

// Mean 回傳樣本平均數
func (s *SampleReport) Mean() float64 {
	if s.Summary.Count == 0 {
		return 0
	}
	return s.Moment.Sum / float64(s.Summary.Count)
}

// Variance 回傳樣本（不偏）變異數
func (s *SampleReport) Variance() float64 {
	n := float64(s.Summary.Count)
	if n < 2 {
		return 0
	}
	v := (s.Moment.SumSq - s.Moment.Sum*s.Moment.Sum/n) / (n - 1)
	return max(v, 0)
}

// SerialCorr 回傳相鄰兩值的相關係數估計（lag-1）
func (s *SampleReport) SerialCorr() float64 {
	if s.Moment.Pairs == 0 {
		return 0
	}
	v := s.Variance()
	if v == 0 {
		return 0
	}
	m := s.Mean()
	return (s.Moment.LagSum/float64(s.Moment.Pairs) - m*m) / v
}

// ChiSquare 以等機率的期望次數計算卡方統計量與 p-value
func (s *SampleReport) ChiSquare() *UniformityReport {
	k := len(s.Dist.Collect)
	if k < 2 || s.Summary.Count == 0 {
		return &UniformityReport{PValue: 1}
	}
	obs := make([]float64, k)
	exp := make([]float64, k)
	e := float64(s.Summary.Count) / float64(k)
	for i, c := range s.Dist.Collect {
		obs[i] = float64(c)
		exp[i] = e
	}
	x2 := stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(k - 1)}
	return &UniformityReport{
		ChiSquare: x2,
		DoF:       k - 1,
		PValue:    dist.Survival(x2),
	}
}

func (s *SampleReport) WriteWith(w io.Writer, rep SampleReportRender) error {
	s.Done()
	return rep.Write(w, s)
}

// StdOut 把報告以表格印到標準輸出
func (s *SampleReport) StdOut(ut time.Duration) {
	s.Done()
	formatDuration(ut, s.Summary.Count)
	sk, sm := s.fmtBasic()
	fmt.Println(fmtTable(s.Summary.Profile, sk, sm))
	dk, dm := s.fmtDist()
	fmt.Println(fmtTable("Distribution", dk, dm))
}

// ============================================================
// ** 內部方法 **
// ============================================================

func formatDuration(d time.Duration, count int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	vps := int(float64(count) / sec)
	if sec < 60.0 {
		p.Printf("used: %.2f seconds\nvps : %d values/sec\n", sec, vps)
		return
	}
	sc := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		p.Printf("used: %dm %ds\nvps : %d values/sec\n", m, sc, vps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\nvps : %d values/sec\n", h, m, sc, vps)
}

func (s *SampleReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	basic := map[string]string{
		"Profile":     s.Summary.Profile,
		"Algorithm":   s.Summary.Algorithm,
		"Unit":        s.Summary.Unit,
		"Workers":     p.Sprintf("%d", s.Summary.Workers),
		"Count":       p.Sprintf("%d", s.Summary.Count),
		"Mean":        p.Sprintf("%.6f", s.Summary.Mean),
		"Variance":    p.Sprintf("%.6f", s.Summary.Variance),
		"STD":         p.Sprintf("%.6f", s.Summary.Std),
		"Min":         p.Sprintf("%.6f", s.Summary.Min),
		"Max":         p.Sprintf("%.6f", s.Summary.Max),
		"Serial Corr": p.Sprintf("%.6f", s.Summary.SerialCorr),
		"Chi-Square":  p.Sprintf("%.3f (dof %d)", s.Uniformity.ChiSquare, s.Uniformity.DoF),
		"P-Value":     p.Sprintf("%.4f", s.Uniformity.PValue),
	}
	keys := []string{"Profile", "Algorithm", "Unit", "Workers", "Count", "Mean", "Variance", "STD", "Min", "Max", "Serial Corr", "Chi-Square", "P-Value"}
	return keys, basic
}

func (s *SampleReport) fmtDist() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	m := make(map[string]string, len(s.Dist.Bucket))
	for i, b := range s.Dist.Bucket {
		m[b] = p.Sprintf("%d (%.3f%%)", s.Dist.Collect[i], 100.0*s.Dist.Freq[i])
	}
	return s.Dist.Bucket, m
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := runewidth.StringWidth(title)
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

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

import "fmt"

// Bucket 把 [0,1) 切成等寬區間。
type Bucket struct {
	n int
}

func NewBucket(n int) *Bucket {
	return &Bucket{n: max(n, 1)}
}

func (b *Bucket) Len() int {
	return b.n
}

// Index 回傳 v 落在哪個區間；超出範圍的值夾到兩端。
func (b *Bucket) Index(v float64) int {
	i := int(v * float64(b.n))
	if i < 0 {
		return 0
	}
	if i >= b.n {
		return b.n - 1
	}
	return i
}

// Labels 回傳 "[0.0,0.1)" 形式的區間標籤。
func (b *Bucket) Labels() []string {
	out := make([]string, b.n)
	w := 1.0 / float64(b.n)
	for i := range out {
		out[i] = fmt.Sprintf("[%.3g,%.3g)", float64(i)*w, float64(i+1)*w)
	}
	return out
}

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

package app

import "context"

// Component 是交給 App 管理的長生命週期元件，例如 HTTP server。
//
// Run 阻塞直到元件停止；被要求關閉而正常結束時應回傳 nil。
// Shutdown 必須讓進行中的 Run 返回，並在 ctx 期限內完成。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}

// Package profiles 內嵌一組預設的 profile 設定檔，供 CLI 與 server 直接使用。
package profiles

import (
	"embed"
)

// FS provides embedded default profile YAMLs for external usage.
//
//go:embed *.yaml
var FS embed.FS

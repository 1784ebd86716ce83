//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要先把根目录的 data/ 和 assets/ 复制到本目录：
//
//	make prepare-mobile
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/encounters.yaml data/prefabs.yaml data/resources.yaml data/scenes
var dataFS embed.FS

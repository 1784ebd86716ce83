//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	make build-android    # Android
//	make build-ios        # iOS (仅 macOS)
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/dkdead/pkg/app"
	"github.com/decker502/dkdead/pkg/embedded"
)

func init() {
	// dataFS 和 assetsFS 在 embed.go 中声明
	embedded.Init(dataFS, assetsFS)

	cfg := app.Config{
		Verbose: true,
		Scene:   app.DefaultScene,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/dkdead/pkg/app"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细日志")
	scene   = flag.String("scene", app.DefaultScene, "起始场景（Hallway / Window / Hole / Basement）")
	seed    = flag.Int64("seed", 0, "随机种子，0 表示使用当前时间")
	debug   = flag.Bool("debug", false, "显示出生点和遭遇战状态，E 键强制触发遭遇战")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS, assetsFS)

	game, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Scene:   *scene,
		Seed:    *seed,
		Debug:   *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "启动失败: %v\n", err)
		os.Exit(1)
	}
	defer game.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Donkey Kong is Dead")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one room of the game (e.g. Hallway, Basement).
// Entities of a scene live in the shared EntityManager; the scene itself only
// owns what is drawn behind them and any per-room logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被替换时调用
type Closer interface {
	Close()
}

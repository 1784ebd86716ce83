package systems

import (
	"math"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlayerMovementSystem 方向键 / WASD 移动玩家
// 玩家被限制在屏幕内
type PlayerMovementSystem struct {
	entityManager *ecs.EntityManager
}

// NewPlayerMovementSystem 创建玩家移动系统
func NewPlayerMovementSystem(em *ecs.EntityManager) *PlayerMovementSystem {
	return &PlayerMovementSystem{entityManager: em}
}

// Update 读取键盘并移动玩家
func (s *PlayerMovementSystem) Update(deltaTime float64) {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy++
	}
	s.Move(dx, dy, deltaTime)
}

// Move 按方向 (dx, dy) 移动玩家，方向会被归一化
func (s *PlayerMovementSystem) Move(dx, dy, deltaTime float64) {
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	dx, dy = dx/length, dy/length

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		half := config.PlayerSize / 2
		pos.X = clampRange(pos.X+dx*player.Speed*deltaTime, half, config.GameWindowWidth-half)
		pos.Y = clampRange(pos.Y+dy*player.Speed*deltaTime, half, config.GameWindowHeight-half)
	}
}

func clampRange(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

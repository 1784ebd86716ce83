package systems

import (
	"math"
	"testing"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
)

func TestPlayerMovement(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPlayerMovementSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: 100})
	pos := &components.PositionComponent{X: 400, Y: 300}
	ecs.AddComponent(em, id, pos)

	system.Move(1, 0, 0.5)
	if !almostEqual(pos.X, 450) || pos.Y != 300 {
		t.Errorf("Expected (450, 300), got (%.2f, %.2f)", pos.X, pos.Y)
	}

	// 斜向移动速度归一化
	system.Move(1, 1, 1)
	step := 100 / math.Sqrt2
	if !almostEqual(pos.X, 450+step) || !almostEqual(pos.Y, 300+step) {
		t.Errorf("Expected diagonal step %.2f, got (%.2f, %.2f)", step, pos.X, pos.Y)
	}

	// 无输入不移动
	system.Move(0, 0, 1)
	if !almostEqual(pos.X, 450+step) {
		t.Error("Player moved without input")
	}
}

func TestPlayerMovementClamped(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewPlayerMovementSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: 1000})
	pos := &components.PositionComponent{X: 20, Y: 20}
	ecs.AddComponent(em, id, pos)

	system.Move(-1, -1, 10)
	half := config.PlayerSize / 2
	if pos.X != half || pos.Y != half {
		t.Errorf("Expected clamp to (%.0f, %.0f), got (%.2f, %.2f)", half, half, pos.X, pos.Y)
	}

	system.Move(1, 1, 10)
	if pos.X != config.GameWindowWidth-half || pos.Y != config.GameWindowHeight-half {
		t.Errorf("Expected clamp to bottom-right, got (%.2f, %.2f)", pos.X, pos.Y)
	}
}

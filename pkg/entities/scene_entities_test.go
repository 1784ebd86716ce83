package entities

import (
	"testing"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
)

func TestNewSpawnPointEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	disabled := false

	tests := []struct {
		name        string
		cfg         config.SpawnPointConfig
		wantEnabled bool
	}{
		{"默认启用", config.SpawnPointConfig{X: 10, Y: 20}, true},
		{"显式禁用", config.SpawnPointConfig{X: 10, Y: 20, Enabled: &disabled}, false},
		{"带允许列表", config.SpawnPointConfig{AllowedKinds: []string{"DonkeyKong"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewSpawnPointEntity(em, tt.cfg, "Hallway")
			sp, ok := ecs.GetComponent[*components.SpawnPointComponent](em, id)
			if !ok {
				t.Fatal("Expected SpawnPointComponent")
			}
			if sp.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", sp.Enabled, tt.wantEnabled)
			}
			if len(sp.AllowedKinds) != len(tt.cfg.AllowedKinds) {
				t.Errorf("AllowedKinds = %v, want %v", sp.AllowedKinds, tt.cfg.AllowedKinds)
			}
			member, ok := ecs.GetComponent[*components.SceneMemberComponent](em, id)
			if !ok || member.SceneID != "Hallway" {
				t.Errorf("Expected scene member Hallway, got %+v", member)
			}
		})
	}
}

// TestNewButtonEntityCenter 按钮配置使用左上角坐标，实体位置为中心点
func TestNewButtonEntityCenter(t *testing.T) {
	em := ecs.NewEntityManager()
	clicked := false

	id := NewButtonEntity(em, config.ButtonConfig{
		Label: "Window", Target: "Window", X: 100, Y: 50, Width: 120, Height: 32,
	}, "Hallway", func() { clicked = true })

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 160 || pos.Y != 66 {
		t.Errorf("Expected center (160, 66), got (%.1f, %.1f)", pos.X, pos.Y)
	}

	button, ok := ecs.GetComponent[*components.ButtonComponent](em, id)
	if !ok {
		t.Fatal("Expected ButtonComponent")
	}
	if !button.Enabled || button.State != components.UINormal {
		t.Errorf("Unexpected initial button state: %+v", button)
	}
	button.OnClick()
	if !clicked {
		t.Error("Expected OnClick to be wired")
	}
}

func TestNewPlayerEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	id := NewPlayerEntity(em, config.PlayerSpawn{X: 1, Y: 2, Speed: 150}, "Basement")

	player, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
	if !ok || player.Speed != 150 {
		t.Errorf("Expected player speed 150, got %+v", player)
	}
	if !ecs.HasComponent[*components.SpriteComponent](em, id) {
		t.Error("Expected player sprite")
	}
}

func TestNewPrefabEntity(t *testing.T) {
	em := ecs.NewEntityManager()

	if _, err := NewPrefabEntity(em, nil, 0, 0, 0, ""); err == nil {
		t.Error("Expected error for nil prefab")
	}
	if _, err := NewPrefabEntity(em, &config.PrefabConfig{ID: "bad", Color: "red"}, 0, 0, 0, ""); err == nil {
		t.Error("Expected error for invalid color")
	}

	id, err := NewPrefabEntity(em, testPrefabs()["barrel"], 5, 6, 45, "Hole")
	if err != nil {
		t.Fatalf("NewPrefabEntity error: %v", err)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.Rotation != 45 {
		t.Errorf("Expected rotation 45, got %.1f", pos.Rotation)
	}
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	if sprite.Color.R != 0xa0 || sprite.Color.G != 0x52 || sprite.Color.B != 0x2d {
		t.Errorf("Unexpected color %+v", sprite.Color)
	}
}

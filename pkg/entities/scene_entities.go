package entities

import (
	"image/color"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
)

// NewSpawnPointEntity 创建遭遇战出生点
func NewSpawnPointEntity(em *ecs.EntityManager, cfg config.SpawnPointConfig, sceneID string) ecs.EntityID {
	gizmo, err := config.ParseHexColor(cfg.GizmoColor)
	if err != nil {
		gizmo = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	}

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: cfg.X, Y: cfg.Y})
	ecs.AddComponent(em, entity, &components.SpawnPointComponent{
		Enabled:      cfg.IsEnabled(),
		AllowedKinds: append([]string(nil), cfg.AllowedKinds...),
		GizmoColor:   gizmo,
	})
	ecs.AddComponent(em, entity, &components.SceneMemberComponent{SceneID: sceneID})
	return entity
}

// NewPlayerEntity 创建玩家
func NewPlayerEntity(em *ecs.EntityManager, spawn config.PlayerSpawn, sceneID string) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: spawn.X, Y: spawn.Y})
	ecs.AddComponent(em, entity, &components.PlayerComponent{Speed: spawn.Speed})
	ecs.AddComponent(em, entity, &components.SpriteComponent{
		Width:  config.PlayerSize,
		Height: config.PlayerSize,
		Color:  color.RGBA{R: 0x40, G: 0xa0, B: 0xff, A: 0xff},
		Layer:  2,
	})
	ecs.AddComponent(em, entity, &components.SceneMemberComponent{SceneID: sceneID})
	return entity
}

// NewButtonEntity 创建导航按钮
// 按钮坐标为左上角，与 PositionComponent 的中心点约定不同，这里换算成中心点
func NewButtonEntity(em *ecs.EntityManager, cfg config.ButtonConfig, sceneID string, onClick func()) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: cfg.X + cfg.Width/2,
		Y: cfg.Y + cfg.Height/2,
	})
	ecs.AddComponent(em, entity, &components.ButtonComponent{
		Label:   cfg.Label,
		Target:  cfg.Target,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Enabled: true,
		State:   components.UINormal,
		OnClick: onClick,
	})
	ecs.AddComponent(em, entity, &components.SceneMemberComponent{SceneID: sceneID})
	return entity
}

// NewPrefabSpawnerEntity 创建预制体生成器
func NewPrefabSpawnerEntity(em *ecs.EntityManager, cfg config.PrefabSpawnerConfig, sceneID string) ecs.EntityID {
	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PrefabSpawnerComponent{
		Prefab:        cfg.Prefab,
		X:             cfg.X,
		Y:             cfg.Y,
		MinInterval:   cfg.MinInterval,
		MaxInterval:   cfg.MaxInterval,
		DestroyDelay:  cfg.DestroyDelay,
		Rotation:      string(cfg.Rotation),
		FixedRotation: cfg.FixedRotation,
		MinRotation:   cfg.MinRotation,
		MaxRotation:   cfg.MaxRotation,
	})
	ecs.AddComponent(em, entity, &components.SceneMemberComponent{SceneID: sceneID})
	return entity
}

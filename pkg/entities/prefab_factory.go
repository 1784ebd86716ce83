package entities

import (
	"fmt"
	"log"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
)

// NewPrefabEntity 根据预制体模板创建实体
//
// 参数：
//   - em: 实体管理器
//   - prefab: 预制体模板
//   - x, y: 中心坐标
//   - rotation: 角度
//   - sceneID: 所属场景，为空表示不随场景卸载
//
// 返回：
//   - 实体ID
//   - 错误信息（模板为空或颜色非法）
func NewPrefabEntity(em *ecs.EntityManager, prefab *config.PrefabConfig, x, y, rotation float64, sceneID string) (ecs.EntityID, error) {
	if prefab == nil {
		return ecs.InvalidEntity, fmt.Errorf("prefab is nil")
	}
	c, err := config.ParseHexColor(prefab.Color)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("prefab %s: %w", prefab.ID, err)
	}

	entity := em.CreateEntity()
	ecs.AddComponent(em, entity, &components.PositionComponent{X: x, Y: y, Rotation: rotation})
	ecs.AddComponent(em, entity, &components.SpriteComponent{
		Width:  prefab.Width,
		Height: prefab.Height,
		Color:  c,
		Label:  prefab.ID,
		Layer:  1,
	})
	if sceneID != "" {
		ecs.AddComponent(em, entity, &components.SceneMemberComponent{SceneID: sceneID})
	}

	log.Printf("[PrefabFactory] Created prefab %s (entity %d) at (%.1f, %.1f)", prefab.ID, entity, x, y)
	return entity, nil
}

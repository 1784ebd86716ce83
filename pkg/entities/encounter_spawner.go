package entities

import (
	"log"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/encounter"
)

// EncounterSpawner 把遭遇战敌人实例化为 ECS 实体
// 敌人不带 SceneMemberComponent，因此切换场景时不会被场景卸载清理
type EncounterSpawner struct {
	em      *ecs.EntityManager
	prefabs map[string]*config.PrefabConfig
}

// NewEncounterSpawner 创建遭遇战实体生成器
func NewEncounterSpawner(em *ecs.EntityManager, prefabs map[string]*config.PrefabConfig) *EncounterSpawner {
	return &EncounterSpawner{em: em, prefabs: prefabs}
}

// Instantiate 生成敌人，失败时返回 ecs.InvalidEntity
func (s *EncounterSpawner) Instantiate(kind encounter.SpawnableKind, pos encounter.Position) ecs.EntityID {
	prefabID := kind.Prefab
	if prefabID == "" {
		prefabID = kind.ID
	}
	prefab, ok := s.prefabs[prefabID]
	if !ok {
		log.Printf("[EncounterSpawner] Warning: prefab %q for enemy %q not found", prefabID, kind.ID)
		return ecs.InvalidEntity
	}

	entity, err := NewPrefabEntity(s.em, prefab, pos.X, pos.Y, 0, "")
	if err != nil {
		log.Printf("[EncounterSpawner] Warning: failed to create enemy %q: %v", kind.ID, err)
		return ecs.InvalidEntity
	}
	ecs.AddComponent(s.em, entity, &components.EncounterComponent{Kind: kind.ID, Prefab: prefabID})
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.em, entity); ok {
		sprite.Layer = 3
	}
	return entity
}

// Destroy 标记敌人实体删除，实体已不存在时忽略
func (s *EncounterSpawner) Destroy(id ecs.EntityID) {
	if id == ecs.InvalidEntity || !s.em.Exists(id) {
		return
	}
	s.em.DestroyEntity(id)
}

package systems

import (
	"log"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/encounter"
	"github.com/decker502/dkdead/pkg/entities"
)

// PrefabSpawnerSystem 按随机间隔生成预制体
// 生成物挂上 LifetimeComponent，由 LifetimeSystem 到期销毁
type PrefabSpawnerSystem struct {
	entityManager *ecs.EntityManager
	prefabs       map[string]*config.PrefabConfig
	rng           encounter.Random
}

// NewPrefabSpawnerSystem 创建预制体生成系统
func NewPrefabSpawnerSystem(em *ecs.EntityManager, prefabs map[string]*config.PrefabConfig, rng encounter.Random) *PrefabSpawnerSystem {
	return &PrefabSpawnerSystem{
		entityManager: em,
		prefabs:       prefabs,
		rng:           rng,
	}
}

// Update 推进所有生成器的计时
func (s *PrefabSpawnerSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.PrefabSpawnerComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		spawner, _ := ecs.GetComponent[*components.PrefabSpawnerComponent](s.entityManager, id)

		if !spawner.Armed {
			spawner.NextWait = s.rng.Range(spawner.MinInterval, spawner.MaxInterval)
			spawner.Timer = 0
			spawner.Armed = true
		}

		spawner.Timer += deltaTime
		if spawner.Timer < spawner.NextWait {
			continue
		}

		spawner.Armed = false
		sceneID := ""
		if member, ok := ecs.GetComponent[*components.SceneMemberComponent](s.entityManager, id); ok {
			sceneID = member.SceneID
		}
		s.spawn(spawner, sceneID)
	}
}

func (s *PrefabSpawnerSystem) spawn(spawner *components.PrefabSpawnerComponent, sceneID string) {
	prefab, ok := s.prefabs[spawner.Prefab]
	if !ok {
		log.Printf("[PrefabSpawnerSystem] Warning: no prefab %q to spawn", spawner.Prefab)
		return
	}

	entity, err := entities.NewPrefabEntity(s.entityManager, prefab, spawner.X, spawner.Y, s.rotation(spawner), sceneID)
	if err != nil {
		log.Printf("[PrefabSpawnerSystem] Warning: failed to spawn %q: %v", spawner.Prefab, err)
		return
	}
	ecs.AddComponent(s.entityManager, entity, &components.LifetimeComponent{
		DestroyDelay:         spawner.DestroyDelay,
		DestroyWithoutTarget: true,
	})
}

// rotation 按旋转方式计算生成角度
func (s *PrefabSpawnerSystem) rotation(spawner *components.PrefabSpawnerComponent) float64 {
	switch config.RotationType(spawner.Rotation) {
	case config.RotationFixed:
		return spawner.FixedRotation
	case config.RotationRandom:
		return s.rng.Range(0, 360)
	case config.RotationRandomRange:
		return s.rng.Range(spawner.MinRotation, spawner.MaxRotation)
	default:
		return 0
	}
}

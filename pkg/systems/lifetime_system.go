package systems

import (
	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/encounter"
)

// LifetimeObserverKey 生命周期系统在场景宿主中的观察者 key
const LifetimeObserverKey = "lifetime-system"

// LifetimeSystem 定时销毁带 LifetimeComponent 的实体
// 目标为玩家（PlayerComponent），场景加载后重新检查目标是否在场
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 推进倒计时并销毁到期实体
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok || lifetime.IsExpired {
			continue
		}

		if !lifetime.Checked {
			s.check(lifetime)
			lifetime.Checked = true
		}

		if !lifetime.Started {
			continue
		}
		lifetime.Elapsed += deltaTime

		if (lifetime.TargetInScene || lifetime.DestroyWithoutTarget) && lifetime.Elapsed >= lifetime.DestroyDelay {
			lifetime.IsExpired = true
			s.entityManager.DestroyEntity(id)
		}
	}
}

// OnSceneLoaded 场景加载后重新检查目标
func (s *LifetimeSystem) OnSceneLoaded(event encounter.SceneLoadEvent) {
	for _, id := range ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager) {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		s.check(lifetime)
		lifetime.Checked = true
	}
}

func (s *LifetimeSystem) check(lifetime *components.LifetimeComponent) {
	if lifetime.DestroyWithoutTarget && !lifetime.Started {
		lifetime.Started = true
		lifetime.Elapsed = 0
		return
	}

	wasInScene := lifetime.TargetInScene
	lifetime.TargetInScene = s.targetPresent()

	// 目标刚进入场景，重新开始倒计时
	if !wasInScene && lifetime.TargetInScene {
		lifetime.Started = true
		lifetime.Elapsed = 0
	}
}

func (s *LifetimeSystem) targetPresent() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.PlayerComponent](s.entityManager) {
		if !s.entityManager.IsMarkedForDestroy(id) {
			return true
		}
	}
	return false
}

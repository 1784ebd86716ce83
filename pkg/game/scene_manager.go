package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/encounter"
	"github.com/hajimehoshi/ebiten/v2"
)

// ErrObserverExists 同一个 key 已注册观察者
var ErrObserverExists = errors.New("scene observer already registered")

// SceneFactory 场景工厂函数类型
// 在 em 中创建属于 sceneID 的实体，并返回场景对象
type SceneFactory func(sceneID string) (Scene, error)

type sceneObserverEntry struct {
	key      string
	observer encounter.SceneObserver
}

// SceneManager 管理当前场景，同时作为遭遇调度器的场景宿主
//
// 职责：
//   - 通过工厂创建场景，single 模式下销毁上一个场景的实体
//   - 维护跨场景持久的 EntityManager
//   - 场景加载完成后按注册顺序通知观察者
//   - 为调度器提供当前场景的出生点
type SceneManager struct {
	entityManager  *ecs.EntityManager
	sceneFactory   SceneFactory
	currentScene   Scene
	currentSceneID string
	loadedScenes   map[string]bool // 当前已加载的场景（含 additive）

	observers []sceneObserverEntry
}

// NewSceneManager creates a SceneManager over the given world.
// The manager starts with no active scene; use LoadScene to set the initial scene.
func NewSceneManager(em *ecs.EntityManager) *SceneManager {
	return &SceneManager{
		entityManager: em,
		loadedScenes:  make(map[string]bool),
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// EntityManager 返回持久的实体管理器
func (sm *SceneManager) EntityManager() *ecs.EntityManager {
	return sm.entityManager
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentSceneID 返回当前场景ID（additive 加载不会改变它）
func (sm *SceneManager) CurrentSceneID() string {
	return sm.currentSceneID
}

// IsSceneLoaded 场景是否已加载
func (sm *SceneManager) IsSceneLoaded(sceneID string) bool {
	return sm.loadedScenes[sceneID]
}

// LoadScene 加载场景
//
// single 模式：新场景创建成功后销毁之前所有场景的成员实体，并切换当前场景
// additive 模式：只创建新场景的实体，当前场景不变
//
// 加载完成后通知所有观察者
func (sm *SceneManager) LoadScene(sceneID string, mode encounter.LoadMode) error {
	log.Printf("[SceneManager] 加载场景: %s (%s)", sceneID, mode)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	// 先记录旧场景实体，避免重新加载同一场景时误删新实体
	var previousMembers []ecs.EntityID
	if mode == encounter.LoadModeSingle {
		previousMembers = ecs.GetEntitiesWith1[*components.SceneMemberComponent](sm.entityManager)
	}

	scene, err := sm.sceneFactory(sceneID)
	if err != nil {
		return fmt.Errorf("failed to load scene %s: %w", sceneID, err)
	}

	switch mode {
	case encounter.LoadModeAdditive:
		sm.loadedScenes[sceneID] = true
		if sm.currentScene == nil {
			sm.currentScene = scene
			sm.currentSceneID = sceneID
		}
	default:
		for _, id := range previousMembers {
			sm.entityManager.DestroyEntity(id)
		}
		sm.entityManager.RemoveMarkedEntities()

		if closer, ok := sm.currentScene.(Closer); ok {
			closer.Close()
		}
		sm.currentScene = scene
		sm.currentSceneID = sceneID
		sm.loadedScenes = map[string]bool{sceneID: true}
	}

	log.Printf("[SceneManager] 成功切换到场景: %s (销毁旧实体 %d 个)", sm.currentSceneID, len(previousMembers))

	// 复制一份，观察者在回调中注销自己时不影响遍历
	observers := append([]sceneObserverEntry(nil), sm.observers...)
	event := encounter.SceneLoadEvent{SceneID: sceneID, Mode: mode}
	for _, entry := range observers {
		entry.observer.OnSceneLoaded(event)
	}
	return nil
}

// AddSceneObserver 注册场景加载观察者
// 返回的 remove 函数可重复调用
func (sm *SceneManager) AddSceneObserver(key string, observer encounter.SceneObserver) (func(), error) {
	for _, entry := range sm.observers {
		if entry.key == key {
			return nil, fmt.Errorf("%w: %s", ErrObserverExists, key)
		}
	}
	sm.observers = append(sm.observers, sceneObserverEntry{key: key, observer: observer})

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		sm.removeObserver(key)
	}, nil
}

func (sm *SceneManager) removeObserver(key string) {
	for i, entry := range sm.observers {
		if entry.key == key {
			sm.observers = append(sm.observers[:i], sm.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount 已注册的观察者数量
func (sm *SceneManager) ObserverCount() int {
	return len(sm.observers)
}

// FindSpawnLocations 返回所有已加载场景中的出生点（按实体ID排序）
func (sm *SceneManager) FindSpawnLocations() []encounter.SpawnLocation {
	em := sm.entityManager
	ids := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.SpawnPointComponent,
		*components.SceneMemberComponent,
	](em)

	locations := make([]encounter.SpawnLocation, 0, len(ids))
	for _, id := range ids {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		member, _ := ecs.GetComponent[*components.SceneMemberComponent](em, id)
		if !sm.loadedScenes[member.SceneID] {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		sp, _ := ecs.GetComponent[*components.SpawnPointComponent](em, id)
		locations = append(locations, encounter.SpawnLocation{
			Position:     encounter.Position{X: pos.X, Y: pos.Y},
			Enabled:      sp.Enabled,
			AllowedKinds: sp.AllowedKinds,
		})
	}
	return locations
}

// FindPlayer 返回玩家位置
func (sm *SceneManager) FindPlayer() (encounter.Position, bool) {
	em := sm.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		return encounter.Position{X: pos.X, Y: pos.Y}, true
	}
	return encounter.Position{}, false
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

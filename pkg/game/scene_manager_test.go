package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/encounter"
	"github.com/hajimehoshi/ebiten/v2"
)

// stubScene 测试用场景
type stubScene struct {
	id      string
	updates int
	closed  bool
}

func (s *stubScene) Update(deltaTime float64) { s.updates++ }
func (s *stubScene) Draw(screen *ebiten.Image) {}
func (s *stubScene) Close() { s.closed = true }

// recordingObserver 记录收到的加载事件
type recordingObserver struct {
	name   string
	events []encounter.SceneLoadEvent
	log    *[]string
}

func (o *recordingObserver) OnSceneLoaded(event encounter.SceneLoadEvent) {
	o.events = append(o.events, event)
	if o.log != nil {
		*o.log = append(*o.log, o.name)
	}
}

// newTestSceneManager 每个场景创建一个出生点和一个普通实体
func newTestSceneManager() (*SceneManager, map[string]*stubScene) {
	em := ecs.NewEntityManager()
	sm := NewSceneManager(em)
	built := make(map[string]*stubScene)

	sm.SetSceneFactory(func(sceneID string) (Scene, error) {
		if sceneID == "Missing" {
			return nil, fmt.Errorf("unknown scene %s", sceneID)
		}
		sp := em.CreateEntity()
		ecs.AddComponent(em, sp, &components.PositionComponent{X: 10, Y: 20})
		ecs.AddComponent(em, sp, &components.SpawnPointComponent{Enabled: true})
		ecs.AddComponent(em, sp, &components.SceneMemberComponent{SceneID: sceneID})

		scene := &stubScene{id: sceneID}
		built[sceneID] = scene
		return scene, nil
	})
	return sm, built
}

func TestLoadSceneSingle(t *testing.T) {
	sm, built := newTestSceneManager()
	em := sm.EntityManager()

	// 不属于任何场景的实体（如遭遇战敌人）跨场景保留
	persistent := em.CreateEntity()
	ecs.AddComponent(em, persistent, &components.EncounterComponent{Kind: "DonkeyKong"})

	if err := sm.LoadScene("Hallway", encounter.LoadModeSingle); err != nil {
		t.Fatalf("LoadScene error: %v", err)
	}
	if sm.CurrentSceneID() != "Hallway" {
		t.Errorf("CurrentSceneID = %q, want Hallway", sm.CurrentSceneID())
	}
	if got := len(sm.FindSpawnLocations()); got != 1 {
		t.Fatalf("Expected 1 spawn location, got %d", got)
	}

	if err := sm.LoadScene("Window", encounter.LoadModeSingle); err != nil {
		t.Fatalf("LoadScene error: %v", err)
	}
	if !built["Hallway"].closed {
		t.Error("Expected previous scene to be closed")
	}
	locations := sm.FindSpawnLocations()
	if len(locations) != 1 {
		t.Fatalf("Expected old spawn points removed, got %d locations", len(locations))
	}
	if !em.Exists(persistent) {
		t.Error("Entities without SceneMemberComponent must survive scene loads")
	}
}

// TestReloadSameScene 重新加载同一场景时只删除旧实体
func TestReloadSameScene(t *testing.T) {
	sm, _ := newTestSceneManager()
	_ = sm.LoadScene("Hallway", encounter.LoadModeSingle)
	_ = sm.LoadScene("Hallway", encounter.LoadModeSingle)

	if got := len(sm.FindSpawnLocations()); got != 1 {
		t.Errorf("Expected exactly 1 spawn location after reload, got %d", got)
	}
}

// TestLoadSceneAdditive additive 加载保留当前场景
func TestLoadSceneAdditive(t *testing.T) {
	sm, _ := newTestSceneManager()
	_ = sm.LoadScene("Hallway", encounter.LoadModeSingle)

	if err := sm.LoadScene("Basement", encounter.LoadModeAdditive); err != nil {
		t.Fatalf("LoadScene error: %v", err)
	}
	if sm.CurrentSceneID() != "Hallway" {
		t.Errorf("Additive load must not change the current scene, got %q", sm.CurrentSceneID())
	}
	if !sm.IsSceneLoaded("Basement") || !sm.IsSceneLoaded("Hallway") {
		t.Error("Expected both scenes loaded")
	}
	if got := len(sm.FindSpawnLocations()); got != 2 {
		t.Errorf("Expected spawn points from both scenes, got %d", got)
	}

	// single 加载清理所有已加载场景
	_ = sm.LoadScene("Hole", encounter.LoadModeSingle)
	if sm.IsSceneLoaded("Basement") {
		t.Error("Single load should unload additive scenes")
	}
	if got := len(sm.FindSpawnLocations()); got != 1 {
		t.Errorf("Expected 1 spawn location, got %d", got)
	}
}

// TestLoadSceneFactoryError 工厂失败时保持当前场景
func TestLoadSceneFactoryError(t *testing.T) {
	sm, _ := newTestSceneManager()
	_ = sm.LoadScene("Hallway", encounter.LoadModeSingle)

	if err := sm.LoadScene("Missing", encounter.LoadModeSingle); err == nil {
		t.Fatal("Expected error for missing scene")
	}
	if sm.CurrentSceneID() != "Hallway" {
		t.Errorf("Current scene changed after failed load: %q", sm.CurrentSceneID())
	}
	if got := len(sm.FindSpawnLocations()); got != 1 {
		t.Errorf("Spawn points of current scene should survive a failed load, got %d", got)
	}
}

func TestLoadSceneWithoutFactory(t *testing.T) {
	sm := NewSceneManager(ecs.NewEntityManager())
	if err := sm.LoadScene("Hallway", encounter.LoadModeSingle); err == nil {
		t.Error("Expected error when factory is not set")
	}
}

// TestSceneObservers 观察者按注册顺序收到通知，重复 key 被拒绝
func TestSceneObservers(t *testing.T) {
	sm, _ := newTestSceneManager()
	var order []string

	first := &recordingObserver{name: "first", log: &order}
	second := &recordingObserver{name: "second", log: &order}

	removeFirst, err := sm.AddSceneObserver("a", first)
	if err != nil {
		t.Fatalf("AddSceneObserver error: %v", err)
	}
	if _, err := sm.AddSceneObserver("b", second); err != nil {
		t.Fatalf("AddSceneObserver error: %v", err)
	}
	if _, err := sm.AddSceneObserver("a", second); !errors.Is(err, ErrObserverExists) {
		t.Errorf("Expected ErrObserverExists, got %v", err)
	}

	_ = sm.LoadScene("Hallway", encounter.LoadModeSingle)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("Unexpected notification order: %v", order)
	}
	if first.events[0].SceneID != "Hallway" || first.events[0].Mode != encounter.LoadModeSingle {
		t.Errorf("Unexpected event: %+v", first.events[0])
	}

	removeFirst()
	removeFirst()
	if sm.ObserverCount() != 1 {
		t.Errorf("Expected 1 observer after removal, got %d", sm.ObserverCount())
	}

	// 注销后 key 可以重新使用
	if _, err := sm.AddSceneObserver("a", first); err != nil {
		t.Errorf("Expected key to be reusable after removal: %v", err)
	}
}

// TestSceneObserverRemovesItself 回调中注销自己不影响其他观察者
func TestSceneObserverRemovesItself(t *testing.T) {
	sm, _ := newTestSceneManager()
	late := &recordingObserver{name: "late"}

	var remove func()
	self := &selfRemovingObserver{remove: func() { remove() }}
	remove, _ = sm.AddSceneObserver("self", self)
	_, _ = sm.AddSceneObserver("late", late)

	_ = sm.LoadScene("Hallway", encounter.LoadModeSingle)
	if len(late.events) != 1 {
		t.Errorf("Expected late observer notified once, got %d", len(late.events))
	}
	if sm.ObserverCount() != 1 {
		t.Errorf("Expected 1 observer, got %d", sm.ObserverCount())
	}
}

type selfRemovingObserver struct {
	remove func()
}

func (o *selfRemovingObserver) OnSceneLoaded(event encounter.SceneLoadEvent) {
	o.remove()
}

// TestFindSpawnLocationsFields 出生点字段映射
func TestFindSpawnLocationsFields(t *testing.T) {
	em := ecs.NewEntityManager()
	sm := NewSceneManager(em)
	sm.SetSceneFactory(func(sceneID string) (Scene, error) {
		id := em.CreateEntity()
		ecs.AddComponent(em, id, &components.PositionComponent{X: 3, Y: 4})
		ecs.AddComponent(em, id, &components.SpawnPointComponent{Enabled: false, AllowedKinds: []string{"DonkeyKong"}})
		ecs.AddComponent(em, id, &components.SceneMemberComponent{SceneID: sceneID})
		return &stubScene{id: sceneID}, nil
	})
	_ = sm.LoadScene("Hole", encounter.LoadModeSingle)

	locations := sm.FindSpawnLocations()
	if len(locations) != 1 {
		t.Fatalf("Expected 1 location, got %d", len(locations))
	}
	loc := locations[0]
	if loc.Position != (encounter.Position{X: 3, Y: 4}) || loc.Enabled || len(loc.AllowedKinds) != 1 {
		t.Errorf("Unexpected location: %+v", loc)
	}
}

func TestFindPlayer(t *testing.T) {
	em := ecs.NewEntityManager()
	sm := NewSceneManager(em)

	if _, ok := sm.FindPlayer(); ok {
		t.Error("Expected no player")
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 7, Y: 8})
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: 100})

	pos, ok := sm.FindPlayer()
	if !ok || pos.X != 7 || pos.Y != 8 {
		t.Errorf("FindPlayer = %+v, %v", pos, ok)
	}
}

func TestSceneManagerUpdateDelegates(t *testing.T) {
	sm, built := newTestSceneManager()
	sm.Update(1.0 / 60)
	_ = sm.LoadScene("Hallway", encounter.LoadModeSingle)
	sm.Update(1.0 / 60)
	if built["Hallway"].updates != 1 {
		t.Errorf("Expected 1 update, got %d", built["Hallway"].updates)
	}
}

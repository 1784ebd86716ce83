package encounter

import "github.com/decker502/dkdead/pkg/ecs"

// LoadMode 场景加载方式
type LoadMode int

const (
	// LoadModeSingle 替换当前场景
	LoadModeSingle LoadMode = iota
	// LoadModeAdditive 叠加到当前场景
	LoadModeAdditive
)

// String 返回加载方式名称
func (m LoadMode) String() string {
	switch m {
	case LoadModeSingle:
		return "single"
	case LoadModeAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// SceneLoadEvent 场景加载完成通知
type SceneLoadEvent struct {
	SceneID string
	Mode    LoadMode
}

// SceneObserver 接收场景加载通知
type SceneObserver interface {
	OnSceneLoaded(event SceneLoadEvent)
}

// SceneHost 场景宿主
// 同一个 key 只允许注册一个观察者，重复注册返回错误
type SceneHost interface {
	CurrentSceneID() string
	FindSpawnLocations() []SpawnLocation
	AddSceneObserver(key string, observer SceneObserver) (remove func(), err error)
}

// EntitySpawner 负责实例化和销毁遭遇战实体
// Instantiate 返回 ecs.InvalidEntity 表示失败
type EntitySpawner interface {
	Instantiate(kind SpawnableKind, pos Position) ecs.EntityID
	Destroy(id ecs.EntityID)
}

// PlayerLocator 查找玩家位置，仅用于移动门槛判定
type PlayerLocator interface {
	FindPlayer() (Position, bool)
}

// SoundPlayer 播放单次音效
type SoundPlayer interface {
	PlayOneShot(clipID string, volume, pitch float64) bool
}

package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/entities"
	"github.com/decker502/dkdead/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RoomScene 一个房间（Hallway / Window / Hole / Basement）
// 实体（出生点、玩家、按钮、生成器）创建在共享的 EntityManager 中，
// 场景本身只负责背景和房间名
type RoomScene struct {
	config     *config.SceneConfig
	background color.RGBA
}

// NewRoomScene 根据场景配置创建房间并生成其实体
//
// 参数：
//   - em: 共享的实体管理器
//   - cfg: 场景配置
//   - prefabs: 预制体表（用于检查生成器引用）
//   - navigate: 按钮点击时调用，参数为目标场景ID
func NewRoomScene(em *ecs.EntityManager, cfg *config.SceneConfig, prefabs map[string]*config.PrefabConfig, navigate func(target string)) (*RoomScene, error) {
	background, err := config.ParseHexColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", cfg.ID, err)
	}

	for _, sp := range cfg.SpawnPoints {
		entities.NewSpawnPointEntity(em, sp, cfg.ID)
	}

	if cfg.Player != nil {
		entities.NewPlayerEntity(em, *cfg.Player, cfg.ID)
	}

	for _, b := range cfg.Buttons {
		target := b.Target
		entities.NewButtonEntity(em, b, cfg.ID, func() {
			log.Printf("[RoomScene] %s button clicked", target)
			if navigate != nil {
				navigate(target)
			}
		})
	}

	for _, p := range cfg.PrefabSpawners {
		if _, ok := prefabs[p.Prefab]; !ok {
			log.Printf("[RoomScene] Warning: scene %s spawner references unknown prefab %q", cfg.ID, p.Prefab)
		}
		entities.NewPrefabSpawnerEntity(em, p, cfg.ID)
	}

	log.Printf("[RoomScene] Built %s: %d spawn points, %d buttons, %d prefab spawners",
		cfg.ID, len(cfg.SpawnPoints), len(cfg.Buttons), len(cfg.PrefabSpawners))

	return &RoomScene{
		config:     cfg,
		background: background,
	}, nil
}

// ID 场景ID
func (s *RoomScene) ID() string {
	return s.config.ID
}

// Update 房间本身没有逐帧逻辑，实体由系统驱动
func (s *RoomScene) Update(deltaTime float64) {}

// Draw 绘制背景和房间名
func (s *RoomScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)
	ebitenutil.DebugPrintAt(screen, s.config.Name, 10, 10)
}

// NewRoomSceneFactory 创建场景工厂
// 按钮指向不存在的场景时只记录警告，点击后由场景管理器报告错误
func NewRoomSceneFactory(em *ecs.EntityManager, scenes map[string]*config.SceneConfig, prefabs map[string]*config.PrefabConfig, navigate func(target string)) game.SceneFactory {
	for id, cfg := range scenes {
		for _, b := range cfg.Buttons {
			if _, ok := scenes[b.Target]; !ok {
				log.Printf("[RoomScene] Warning: scene %s has a button to missing scene %q", id, b.Target)
			}
		}
	}

	return func(sceneID string) (game.Scene, error) {
		cfg, ok := scenes[sceneID]
		if !ok {
			return nil, fmt.Errorf("scene %q not found", sceneID)
		}
		return NewRoomScene(em, cfg, prefabs, navigate)
	}
}

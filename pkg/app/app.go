// Package app 组装游戏：加载配置、创建管理器和系统，并实现 ebiten.Game 接口
//
// 调用 NewApp 之前必须先调用 embedded.Init() 初始化嵌入资源。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/embedded"
	"github.com/decker502/dkdead/pkg/encounter"
	"github.com/decker502/dkdead/pkg/entities"
	"github.com/decker502/dkdead/pkg/game"
	"github.com/decker502/dkdead/pkg/scenes"
	"github.com/decker502/dkdead/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 数据文件路径（相对于嵌入的 data/ 目录）
const (
	EncounterConfigPath = "data/encounters.yaml"
	PrefabConfigPath    = "data/prefabs.yaml"
	ResourceConfigPath  = "data/resources.yaml"
	SceneConfigGlob     = "data/scenes/*.yaml"

	// DefaultScene 未指定 --scene 时的起始房间
	DefaultScene = "Hallway"

	storageAppName = "dkdead"
	sampleRate     = 48000
	fadeDuration   = 1.5
	deltaTime      = 1.0 / 60.0
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 起始场景ID，为空时使用 DefaultScene
	Scene string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Debug 显示出生点和遭遇战状态，并允许 E 键强制触发遭遇战
	Debug bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg Config

	entityManager   *ecs.EntityManager
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	audioManager    *game.AudioManager

	scheduler      *encounter.Scheduler
	transition     *systems.SceneTransitionSystem
	buttons        *systems.ButtonSystem
	playerMovement *systems.PlayerMovementSystem
	prefabSpawner  *systems.PrefabSpawnerSystem
	lifetime       *systems.LifetimeSystem
	render         *systems.RenderSystem
	buttonRender   *systems.ButtonRenderSystem
	removeLifetime func()
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	encounterConfig, err := config.LoadEncounterConfig(EncounterConfigPath)
	if err != nil {
		return nil, fmt.Errorf("遭遇配置加载失败: %w", err)
	}
	prefabs, err := config.LoadPrefabConfigs(PrefabConfigPath)
	if err != nil {
		return nil, fmt.Errorf("预制体配置加载失败: %w", err)
	}
	sceneFiles, err := embedded.Glob(SceneConfigGlob)
	if err != nil {
		return nil, fmt.Errorf("场景列表读取失败: %w", err)
	}
	sceneConfigs, err := config.LoadSceneConfigs(sceneFiles)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded %d scenes, %d prefabs, %d enemies", len(sceneConfigs), len(prefabs), len(encounterConfig.Enemies))

	resourceManager := game.NewResourceManager(audio.NewContext(sampleRate))
	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	font, err := resourceManager.LoadFont(14)
	if err != nil {
		log.Printf("[App] Warning: font unavailable, labels disabled: %v", err)
	}

	storage, err := game.OpenStorage(storageAppName)
	if err != nil {
		log.Printf("[App] Warning: %v (settings will not persist)", err)
	}
	settingsManager := game.NewSettingsManager(storage)
	audioManager := game.NewAudioManager(resourceManager, settingsManager)

	em := ecs.NewEntityManager()
	sceneManager := game.NewSceneManager(em)
	rng := encounter.NewRandom(cfg.Seed)

	a := &App{
		cfg:             cfg,
		entityManager:   em,
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		transition:      systems.NewSceneTransitionSystem(sceneManager, fadeDuration),
		buttons:         systems.NewButtonSystem(em),
		playerMovement:  systems.NewPlayerMovementSystem(em),
		prefabSpawner:   systems.NewPrefabSpawnerSystem(em, prefabs, rng),
		lifetime:        systems.NewLifetimeSystem(em),
		render:          systems.NewRenderSystem(em, font),
		buttonRender:    systems.NewButtonRenderSystem(em, font),
	}
	a.render.ShowSpawnPoints = cfg.Debug || settingsManager.GetSettings().ShowSpawnPoints

	sceneManager.SetSceneFactory(scenes.NewRoomSceneFactory(em, sceneConfigs, prefabs, func(target string) {
		a.transition.RequestTransition(target)
	}))

	if a.removeLifetime, err = sceneManager.AddSceneObserver(systems.LifetimeObserverKey, a.lifetime); err != nil {
		return nil, fmt.Errorf("生命周期系统注册失败: %w", err)
	}

	var music encounter.VolumeChannel
	if encounterConfig.Music != "" {
		channel, err := audioManager.PlayMusic(encounterConfig.Music)
		if err != nil {
			log.Printf("[App] Warning: background music unavailable: %v", err)
		} else {
			music = channel
		}
	}

	a.scheduler, err = encounter.NewScheduler(encounterConfig, encounter.Dependencies{
		Host:               sceneManager,
		Spawner:            entities.NewEncounterSpawner(em, prefabs),
		Player:             sceneManager,
		Sound:              audioManager,
		Music:              music,
		Random:             rng,
		NominalMusicVolume: audioManager.NominalMusicVolume,
	})
	if err != nil {
		return nil, fmt.Errorf("遭遇调度器创建失败: %w", err)
	}

	startScene := cfg.Scene
	if startScene == "" {
		startScene = DefaultScene
	}
	if err := sceneManager.LoadScene(startScene, encounter.LoadModeSingle); err != nil {
		a.Close()
		return nil, fmt.Errorf("起始场景加载失败: %w", err)
	}

	log.Printf("[App] Started in %s (seed=%d, debug=%v)", startScene, cfg.Seed, cfg.Debug)
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleHotkeys()

	a.buttons.Update(deltaTime)
	a.playerMovement.Update(deltaTime)
	a.transition.Update(deltaTime)
	a.sceneManager.Update(deltaTime)
	a.prefabSpawner.Update(deltaTime)
	a.lifetime.Update(deltaTime)
	a.scheduler.Update(deltaTime)
	a.audioManager.Update()

	a.entityManager.RemoveMarkedEntities()
	return nil
}

// handleHotkeys F11 全屏，M/N 开关音乐/音效，G 出生点标记，E 强制遭遇战（调试）
func (a *App) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		enabled := a.settingsManager.ToggleMusic()
		log.Printf("[App] Music enabled: %v", enabled)
		a.scheduler.RefreshMusicVolume()
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		log.Printf("[App] Sound enabled: %v", a.settingsManager.ToggleSound())
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		a.render.ShowSpawnPoints = a.settingsManager.ToggleSpawnPoints() || a.cfg.Debug
		changed = true
	}
	if changed {
		if err := a.settingsManager.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}

	if a.cfg.Debug && inpututil.IsKeyJustPressed(ebiten.KeyE) {
		a.scheduler.TriggerEncounter()
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	a.render.Draw(screen)
	a.buttonRender.Draw(screen)
	if a.cfg.Debug {
		a.drawDebug(screen)
	}
	a.transition.Draw(screen)
}

func (a *App) drawDebug(screen *ebiten.Image) {
	status := fmt.Sprintf("encounter: %s  t=%.1f", a.scheduler.State(), a.scheduler.Now())
	if active, ok := a.scheduler.ActiveEncounter(); ok {
		status += fmt.Sprintf("  %s in %s, %.1fs left", active.Kind.ID, active.SceneID, a.scheduler.RemainingTime())
	}
	ebitenutil.DebugPrintAt(screen, status, 10, config.GameWindowHeight-20)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 注销观察者并保存设置
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Close()
	}
	if a.removeLifetime != nil {
		a.removeLifetime()
	}
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// SceneManager 返回场景管理器
func (a *App) SceneManager() *game.SceneManager {
	return a.sceneManager
}

// Scheduler 返回遭遇调度器
func (a *App) Scheduler() *encounter.Scheduler {
	return a.scheduler
}

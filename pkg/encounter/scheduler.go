package encounter

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
)

// SchedulerObserverKey 调度器在场景宿主中注册的观察者 key
// 宿主对同一个 key 只接受一次注册，以此保证整个进程只有一个调度器
const SchedulerObserverKey = "encounter-scheduler"

// ErrSchedulerExists 场景宿主已持有一个调度器
var ErrSchedulerExists = errors.New("encounter scheduler already exists")

// State 调度器状态
type State int

const (
	// StateIdle 没有遭遇战，计时器运行中
	StateIdle State = iota
	// StateActive 遭遇战进行中，消失倒计时运行中
	StateActive
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// ActiveEncounter 当前遭遇战
type ActiveEncounter struct {
	Handle    ecs.EntityID
	Kind      SpawnableKind
	Position  Position
	SpawnedAt float64 // 生成（或最近一次重置倒计时）的调度器时间
	SceneID   string  // 记录的场景
}

// Dependencies 调度器依赖的外部协作者
// Host 和 Spawner 必填，其余可为 nil
type Dependencies struct {
	Host    SceneHost
	Spawner EntitySpawner
	Player  PlayerLocator
	Sound   SoundPlayer
	Music   VolumeChannel
	Random  Random

	// NominalMusicVolume 遭遇战结束后音乐恢复到的音量（通常来自玩家设置）
	NominalMusicVolume func() float64
}

// Scheduler 随机遭遇调度器
//
// 职责：
//   - 定时掷骰决定是否触发遭遇战
//   - 按权重选择敌人种类，按出生点允许列表选择位置
//   - 管理唯一的激活遭遇战及其消失倒计时
//   - 生成/结束时驱动背景音乐渐变
//
// 所有方法都在游戏主循环线程中调用，不需要加锁。
type Scheduler struct {
	cfg     *config.EncounterConfig
	catalog *Catalog

	host    SceneHost
	spawner EntitySpawner
	player  PlayerLocator
	sound   SoundPlayer
	music   VolumeChannel
	rng     Random
	nominal func() float64

	crossfader *Crossfader

	now                float64 // 调度器时间（秒），由 Update 累加
	checkTimer         float64 // 距上次检查经过的时间
	active             *ActiveEncounter
	lastPlayerPosition Position

	removeObserver func()
	closed         bool
}

// NewScheduler 创建调度器并注册到场景宿主
//
// 参数：
//   - cfg: 遭遇配置（构造时读取，之后不再修改）
//   - deps: 外部协作者
//
// 返回：
//   - *Scheduler: 调度器实例
//   - error: 配置缺失，或宿主中已存在调度器（ErrSchedulerExists）
func NewScheduler(cfg *config.EncounterConfig, deps Dependencies) (*Scheduler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("encounter config is required")
	}
	if deps.Host == nil {
		return nil, fmt.Errorf("scene host is required")
	}
	if deps.Spawner == nil {
		return nil, fmt.Errorf("entity spawner is required")
	}

	rng := deps.Random
	if rng == nil {
		rng = NewRandom(0)
	}
	nominal := deps.NominalMusicVolume
	if nominal == nil {
		nominal = func() float64 { return 1.0 }
	}

	s := &Scheduler{
		cfg:        cfg,
		catalog:    NewCatalogFromConfig(cfg.Enemies),
		host:       deps.Host,
		spawner:    deps.Spawner,
		player:     deps.Player,
		sound:      deps.Sound,
		music:      deps.Music,
		rng:        rng,
		nominal:    nominal,
		crossfader: NewCrossfader(),
	}

	remove, err := deps.Host.AddSceneObserver(SchedulerObserverKey, s)
	if err != nil {
		// 重复构造：自行销毁，不影响已存在的实例
		s.closed = true
		log.Printf("[EncounterScheduler] Duplicate scheduler rejected: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrSchedulerExists, err)
	}
	s.removeObserver = remove

	log.Printf("[EncounterScheduler] Initialized: chance=%.1f%%, interval=%.1fs, despawn=%.1fs, policy=%s, enemies=%d",
		cfg.EncounterChance, cfg.CheckInterval, cfg.DespawnTime, cfg.SceneChangePolicy, s.catalog.Len())
	return s, nil
}

// Close 注销场景观察者，之后的 Update/OnSceneLoaded/EndEncounter 均为空操作
// 可重复调用
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.removeObserver != nil {
		s.removeObserver()
		s.removeObserver = nil
	}
	log.Printf("[EncounterScheduler] Closed")
}

// Update 推进调度器时间
// 每帧调用一次，deltaTime 为距上一帧的秒数
func (s *Scheduler) Update(deltaTime float64) {
	if s.closed {
		return
	}

	s.now += deltaTime
	s.crossfader.Update(deltaTime)

	// 每帧检查消失倒计时和场景变化
	if s.active != nil {
		s.pollActive()
	}

	s.checkTimer += deltaTime
	if s.checkTimer < s.cfg.CheckInterval {
		return
	}
	s.checkTimer -= s.cfg.CheckInterval
	if s.checkTimer >= s.cfg.CheckInterval {
		// 单帧跨越多个周期时只检查一次
		s.checkTimer = 0
	}

	if s.active == nil && s.rollEncounter() {
		s.tryStartEncounter()
	}
}

// OnSceneLoaded 场景加载通知
//   - 空闲时立即掷骰一次，不等待定时器
//   - 激活时若场景变化，按策略重置倒计时或结束遭遇战
func (s *Scheduler) OnSceneLoaded(event SceneLoadEvent) {
	if s.closed {
		return
	}

	sceneID := event.SceneID
	if event.Mode == LoadModeAdditive {
		// 叠加加载不改变当前场景
		sceneID = s.host.CurrentSceneID()
	}

	if s.active != nil {
		if sceneID != s.active.SceneID {
			s.handleSceneChange(sceneID)
		}
		return
	}

	if s.rollEncounter() {
		s.tryStartEncounter()
	}
}

// EndEncounter 结束当前遭遇战：销毁实体、清除状态、恢复音乐
// 没有遭遇战或调度器已关闭时为空操作
func (s *Scheduler) EndEncounter() {
	if s.closed || s.active == nil {
		return
	}

	ended := s.active
	s.active = nil
	s.spawner.Destroy(ended.Handle)
	log.Printf("[EncounterScheduler] Encounter ended: %s (entity %d, lasted %.2fs)",
		ended.Kind.ID, ended.Handle, s.now-ended.SpawnedAt)

	s.fadeMusic(s.nominal())
}

// RefreshMusicVolume 音乐开关或音量设置改变后调用
// 空闲时立即切到新的正常音量，并取代进行中的恢复渐变；
// 遭遇战期间音乐保持压低，结束时会恢复到届时的正常音量
func (s *Scheduler) RefreshMusicVolume() {
	if s.closed || s.music == nil || s.active != nil {
		return
	}
	s.crossfader.Fade(s.music, s.nominal(), 0)
}

// TriggerEncounter 跳过概率判定，立即尝试生成遭遇战
// 已有遭遇战时会先将其销毁
func (s *Scheduler) TriggerEncounter() bool {
	if s.closed {
		return false
	}
	return s.tryStartEncounter()
}

// IsEncounterActive 是否有遭遇战进行中
func (s *Scheduler) IsEncounterActive() bool {
	return s.active != nil
}

// State 当前状态
func (s *Scheduler) State() State {
	if s.active != nil {
		return StateActive
	}
	return StateIdle
}

// ActiveEncounter 返回当前遭遇战的副本
func (s *Scheduler) ActiveEncounter() (ActiveEncounter, bool) {
	if s.active == nil {
		return ActiveEncounter{}, false
	}
	return *s.active, true
}

// Now 调度器时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// RemainingTime 当前遭遇战剩余时间，没有遭遇战时返回 0
func (s *Scheduler) RemainingTime() float64 {
	if s.active == nil {
		return 0
	}
	remaining := s.cfg.DespawnTime - (s.now - s.active.SpawnedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// pollActive 检查场景变化和消失倒计时
func (s *Scheduler) pollActive() {
	if current := s.host.CurrentSceneID(); current != s.active.SceneID {
		s.handleSceneChange(current)
		if s.active == nil {
			return
		}
	}

	if s.now-s.active.SpawnedAt >= s.cfg.DespawnTime {
		log.Printf("[EncounterScheduler] Despawn timer expired for %s", s.active.Kind.ID)
		s.EndEncounter()
	}
}

// handleSceneChange 激活期间进入了新场景
func (s *Scheduler) handleSceneChange(sceneID string) {
	switch s.cfg.SceneChangePolicy {
	case config.SceneChangeDestroy:
		log.Printf("[EncounterScheduler] Scene changed %s -> %s, ending encounter", s.active.SceneID, sceneID)
		s.EndEncounter()
	default:
		log.Printf("[EncounterScheduler] Scene changed %s -> %s, despawn timer reset", s.active.SceneID, sceneID)
		s.active.SpawnedAt = s.now
		s.active.SceneID = sceneID
	}
}

// rollEncounter 概率判定
// 开启移动门槛时，无论结果如何都会记录玩家位置
func (s *Scheduler) rollEncounter() bool {
	if s.catalog.Len() == 0 {
		return false
	}

	if s.cfg.MinimumPlayerMovement > 0 {
		current := Position{}
		if s.player != nil {
			if pos, ok := s.player.FindPlayer(); ok {
				current = pos
			}
		}
		moved := current.DistanceTo(s.lastPlayerPosition)
		s.lastPlayerPosition = current
		if moved < s.cfg.MinimumPlayerMovement {
			return false
		}
	}

	return s.rng.Float64n(100) < s.cfg.EncounterChance
}

// tryStartEncounter 选择敌人和出生点并生成
// 任何一步失败都只记录日志，保持空闲状态等待下一次机会
func (s *Scheduler) tryStartEncounter() bool {
	locations := s.host.FindSpawnLocations()
	if len(locations) == 0 {
		log.Printf("[EncounterScheduler] WARNING: No spawn points found in scene %s", s.host.CurrentSceneID())
		return false
	}

	kind, ok := s.catalog.PickWeighted(s.rng)
	if !ok {
		log.Printf("[EncounterScheduler] WARNING: No enemy could be selected (catalog empty or total weight 0)")
		return false
	}

	candidates := FilterAccepting(locations, kind.ID)
	selected := candidates[s.rng.IntN(len(candidates))]

	return s.spawnEncounter(kind, selected.Position)
}

// spawnEncounter 生成遭遇战实体并开始倒计时
func (s *Scheduler) spawnEncounter(kind SpawnableKind, pos Position) bool {
	replaced := false
	if s.active != nil {
		log.Printf("[EncounterScheduler] Replacing active encounter %s (entity %d)", s.active.Kind.ID, s.active.Handle)
		s.spawner.Destroy(s.active.Handle)
		s.active = nil
		replaced = true
	}

	handle := s.spawner.Instantiate(kind, pos)
	if handle == ecs.InvalidEntity {
		log.Printf("[EncounterScheduler] WARNING: Failed to instantiate %s (prefab %s)", kind.ID, kind.Prefab)
		if replaced {
			s.fadeMusic(s.nominal())
		}
		return false
	}

	s.active = &ActiveEncounter{
		Handle:    handle,
		Kind:      kind,
		Position:  pos,
		SpawnedAt: s.now,
		SceneID:   s.host.CurrentSceneID(),
	}
	log.Printf("[EncounterScheduler] Spawned encounter %s at (%.1f, %.1f) in scene %s",
		kind.ID, pos.X, pos.Y, s.active.SceneID)

	s.playSpawnSound()
	s.fadeMusic(s.cfg.EncounterMusicVolume)
	return true
}

// playSpawnSound 随机播放一个出现音效，音高带随机抖动
func (s *Scheduler) playSpawnSound() {
	if s.sound == nil || len(s.cfg.SpawnSounds) == 0 {
		log.Printf("[EncounterScheduler] No spawn sound configured")
		return
	}

	clip := s.cfg.SpawnSounds[s.rng.IntN(len(s.cfg.SpawnSounds))]
	jitter := s.cfg.SpawnPitchJitter
	pitch := s.cfg.SpawnSoundPitch + s.rng.Range(-jitter, jitter)

	if !s.sound.PlayOneShot(clip, s.cfg.SpawnSoundVolume, pitch) {
		log.Printf("[EncounterScheduler] WARNING: Spawn sound %s could not be played", clip)
	}
}

// fadeMusic 背景音乐渐变到目标音量
func (s *Scheduler) fadeMusic(target float64) {
	if s.music == nil {
		return
	}
	s.crossfader.Fade(s.music, target, s.cfg.MusicFadeDuration)
}

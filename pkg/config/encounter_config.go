package config

import (
	"fmt"
	"os"

	"github.com/decker502/dkdead/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// SceneChangePolicy 遭遇战激活期间发生场景切换时的处理策略
type SceneChangePolicy string

const (
	// SceneChangeResetTimer 遭遇战跟随玩家进入新场景，消失倒计时重新开始（默认）
	SceneChangeResetTimer SceneChangePolicy = "reset"
	// SceneChangeDestroy 任何场景切换都立即结束遭遇战
	SceneChangeDestroy SceneChangePolicy = "destroy"
)

// EncounterConfig 随机遭遇配置
// 所有参数在构造调度器时一次性读取，运行期间不再修改
type EncounterConfig struct {
	// 触发概率
	EncounterChance float64 `yaml:"encounterChance"` // 每次检查的触发概率（百分比 0~100）
	CheckInterval   float64 `yaml:"checkInterval"`   // 检查间隔（秒）

	// 移动门槛：玩家自上次检查以来至少移动这么远才允许掷骰，0 表示关闭
	MinimumPlayerMovement float64 `yaml:"minimumPlayerMovement"`

	// 生命周期
	DespawnTime       float64           `yaml:"despawnTime"`       // 遭遇战持续时间（秒）
	SceneChangePolicy SceneChangePolicy `yaml:"sceneChangePolicy"` // "reset" 或 "destroy"

	// 敌人目录（权重即相对出现概率）
	Enemies []EncounterEnemy `yaml:"enemies"`

	// 出现音效
	SpawnSounds      []string `yaml:"spawnSounds"`      // 音效资源ID，随机选一个播放
	SpawnSoundVolume float64  `yaml:"spawnSoundVolume"` // 音效音量 0.0 ~ 1.0
	SpawnSoundPitch  float64  `yaml:"spawnSoundPitch"`  // 基准音高
	SpawnPitchJitter float64  `yaml:"spawnPitchJitter"` // 音高随机抖动幅度（基准 ± 抖动）

	// 背景音乐
	Music                string  `yaml:"music"`                // 背景音乐资源ID
	MusicFadeDuration    float64 `yaml:"musicFadeDuration"`    // 音乐渐变时长（秒）
	EncounterMusicVolume float64 `yaml:"encounterMusicVolume"` // 遭遇战期间的音乐音量
}

// EncounterEnemy 可生成的敌人
type EncounterEnemy struct {
	ID          string  `yaml:"id"`          // 敌人种类ID（与出生点允许列表匹配）
	Prefab      string  `yaml:"prefab"`      // 预制体ID，为空时与 ID 相同
	SpawnChance float64 `yaml:"spawnChance"` // 权重（0 表示永不出现）
}

// DefaultEncounterConfig 返回默认遭遇配置
func DefaultEncounterConfig() *EncounterConfig {
	return &EncounterConfig{
		EncounterChance:       15,
		CheckInterval:         5,
		MinimumPlayerMovement: 0,
		DespawnTime:           10,
		SceneChangePolicy:     SceneChangeResetTimer,
		SpawnSoundVolume:      1.0,
		SpawnSoundPitch:       1.0,
		SpawnPitchJitter:      0.05,
		MusicFadeDuration:     1.0,
		EncounterMusicVolume:  0,
	}
}

// LoadEncounterConfig 从 YAML 文件加载遭遇配置
// 优先从嵌入资源读取，未初始化嵌入资源时回退到磁盘
func LoadEncounterConfig(path string) (*EncounterConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encounter config file %s: %w", path, err)
	}

	cfg, err := ParseEncounterConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid encounter config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseEncounterConfig 解析 YAML 数据
// 未出现在 YAML 中的字段保留默认值
func ParseEncounterConfig(data []byte) (*EncounterConfig, error) {
	cfg := DefaultEncounterConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse encounter config YAML: %w", err)
	}

	applyEncounterDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEncounterDefaults 补全可选字段
func applyEncounterDefaults(cfg *EncounterConfig) {
	if cfg.SceneChangePolicy == "" {
		cfg.SceneChangePolicy = SceneChangeResetTimer
	}
	for i := range cfg.Enemies {
		if cfg.Enemies[i].Prefab == "" {
			cfg.Enemies[i].Prefab = cfg.Enemies[i].ID
		}
	}
}

// Validate 校验配置取值范围
func (c *EncounterConfig) Validate() error {
	if c.EncounterChance < 0 || c.EncounterChance > 100 {
		return fmt.Errorf("encounterChance must be within [0, 100], got %.2f", c.EncounterChance)
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("checkInterval must be positive, got %.2f", c.CheckInterval)
	}
	if c.MinimumPlayerMovement < 0 {
		return fmt.Errorf("minimumPlayerMovement must not be negative, got %.2f", c.MinimumPlayerMovement)
	}
	if c.DespawnTime <= 0 {
		return fmt.Errorf("despawnTime must be positive, got %.2f", c.DespawnTime)
	}
	switch c.SceneChangePolicy {
	case SceneChangeResetTimer, SceneChangeDestroy:
	default:
		return fmt.Errorf("unknown sceneChangePolicy %q (want %q or %q)",
			c.SceneChangePolicy, SceneChangeResetTimer, SceneChangeDestroy)
	}
	if c.MusicFadeDuration < 0 {
		return fmt.Errorf("musicFadeDuration must not be negative, got %.2f", c.MusicFadeDuration)
	}
	if c.SpawnPitchJitter < 0 {
		return fmt.Errorf("spawnPitchJitter must not be negative, got %.2f", c.SpawnPitchJitter)
	}

	seen := make(map[string]bool, len(c.Enemies))
	for i, enemy := range c.Enemies {
		if enemy.ID == "" {
			return fmt.Errorf("enemies[%d]: id is required", i)
		}
		if seen[enemy.ID] {
			return fmt.Errorf("enemies[%d]: duplicate id %q", i, enemy.ID)
		}
		seen[enemy.ID] = true
		if enemy.SpawnChance < 0 || enemy.SpawnChance > 100 {
			return fmt.Errorf("enemies[%d] (%s): spawnChance must be within [0, 100], got %.2f",
				i, enemy.ID, enemy.SpawnChance)
		}
	}
	return nil
}

// readConfigFile 读取配置文件
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

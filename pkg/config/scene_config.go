package config

import (
	"fmt"
	"image/color"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RotationType 预制体生成时的旋转方式
type RotationType string

const (
	RotationFixed       RotationType = "fixed"       // 固定角度
	RotationRandom      RotationType = "random"      // 0~360 随机
	RotationRandomRange RotationType = "randomRange" // 在 [min, max] 内随机
)

// SceneConfig 单个场景（房间）的配置
type SceneConfig struct {
	ID         string `yaml:"id"`         // 场景ID，如 "Hallway"
	Name       string `yaml:"name"`       // 显示名称
	Background string `yaml:"background"` // 背景色 "#RRGGBB"

	Player *PlayerSpawn `yaml:"player"` // 玩家初始位置，为空表示场景中没有玩家

	SpawnPoints    []SpawnPointConfig    `yaml:"spawnPoints"`
	Buttons        []ButtonConfig        `yaml:"buttons"`
	PrefabSpawners []PrefabSpawnerConfig `yaml:"prefabSpawners"`
}

// PlayerSpawn 玩家出生位置
type PlayerSpawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Speed float64 `yaml:"speed"` // 移动速度（像素/秒）
}

// SpawnPointConfig 遭遇战出生点
type SpawnPointConfig struct {
	X            float64  `yaml:"x"`
	Y            float64  `yaml:"y"`
	Enabled      *bool    `yaml:"enabled"`      // 缺省为 true
	AllowedKinds []string `yaml:"allowedKinds"` // 为空表示接受所有敌人
	GizmoColor   string   `yaml:"gizmoColor"`   // 调试标记颜色，缺省黄色
}

// IsEnabled 出生点是否启用（缺省启用）
func (s SpawnPointConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// ButtonConfig 导航按钮
type ButtonConfig struct {
	Label  string  `yaml:"label"`
	Target string  `yaml:"target"` // 点击后跳转的场景ID
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PrefabSpawnerConfig 定时随机生成预制体
type PrefabSpawnerConfig struct {
	Prefab        string       `yaml:"prefab"`
	X             float64      `yaml:"x"`
	Y             float64      `yaml:"y"`
	MinInterval   float64      `yaml:"minInterval"`
	MaxInterval   float64      `yaml:"maxInterval"`
	DestroyDelay  float64      `yaml:"destroyDelay"`
	Rotation      RotationType `yaml:"rotation"`
	FixedRotation float64      `yaml:"fixedRotation"` // 角度
	MinRotation   float64      `yaml:"minRotation"`
	MaxRotation   float64      `yaml:"maxRotation"`
}

// ParseSceneConfig 解析单个场景 YAML
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config YAML: %w", err)
	}

	applySceneDefaults(&cfg)

	if err := validateSceneConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSceneConfig 从文件加载场景配置
func LoadSceneConfig(filePath string) (*SceneConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config file %s: %w", filePath, err)
	}
	cfg, err := ParseSceneConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid scene config in %s: %w", filePath, err)
	}
	return cfg, nil
}

// LoadSceneConfigs 加载目录下所有场景配置
// 返回：场景ID -> 配置
func LoadSceneConfigs(files []string) (map[string]*SceneConfig, error) {
	scenes := make(map[string]*SceneConfig, len(files))
	for _, file := range files {
		if path.Ext(file) != ".yaml" {
			continue
		}
		cfg, err := LoadSceneConfig(file)
		if err != nil {
			return nil, err
		}
		if _, dup := scenes[cfg.ID]; dup {
			return nil, fmt.Errorf("duplicate scene id %q in %s", cfg.ID, file)
		}
		scenes[cfg.ID] = cfg
	}
	return scenes, nil
}

func applySceneDefaults(cfg *SceneConfig) {
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	if cfg.Background == "" {
		cfg.Background = "#202020"
	}
	if cfg.Player != nil && cfg.Player.Speed == 0 {
		cfg.Player.Speed = 120
	}
	for i := range cfg.SpawnPoints {
		if cfg.SpawnPoints[i].GizmoColor == "" {
			cfg.SpawnPoints[i].GizmoColor = "#ffff00"
		}
	}
	for i := range cfg.Buttons {
		b := &cfg.Buttons[i]
		if b.Width == 0 {
			b.Width = 120
		}
		if b.Height == 0 {
			b.Height = 32
		}
		if b.Label == "" {
			b.Label = b.Target
		}
	}
	for i := range cfg.PrefabSpawners {
		p := &cfg.PrefabSpawners[i]
		if p.Rotation == "" {
			p.Rotation = RotationFixed
		}
		if p.MinInterval == 0 && p.MaxInterval == 0 {
			p.MinInterval, p.MaxInterval = 5, 10
		}
		if p.DestroyDelay == 0 {
			p.DestroyDelay = 5
		}
		if p.Rotation == RotationRandomRange && p.MinRotation == 0 && p.MaxRotation == 0 {
			p.MaxRotation = 360
		}
	}
}

func validateSceneConfig(cfg *SceneConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("scene id is required")
	}
	if _, err := ParseHexColor(cfg.Background); err != nil {
		return fmt.Errorf("scene %s: %w", cfg.ID, err)
	}
	for i, sp := range cfg.SpawnPoints {
		if _, err := ParseHexColor(sp.GizmoColor); err != nil {
			return fmt.Errorf("scene %s: spawnPoints[%d]: %w", cfg.ID, i, err)
		}
	}
	for i, b := range cfg.Buttons {
		if b.Target == "" {
			return fmt.Errorf("scene %s: buttons[%d]: target is required", cfg.ID, i)
		}
	}
	for i, p := range cfg.PrefabSpawners {
		if p.MinInterval < 0 || p.MaxInterval < p.MinInterval {
			return fmt.Errorf("scene %s: prefabSpawners[%d]: invalid interval [%.2f, %.2f]",
				cfg.ID, i, p.MinInterval, p.MaxInterval)
		}
		switch p.Rotation {
		case RotationFixed, RotationRandom, RotationRandomRange:
		default:
			return fmt.Errorf("scene %s: prefabSpawners[%d]: unknown rotation %q", cfg.ID, i, p.Rotation)
		}
	}
	return nil
}

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA" 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

package game

import (
	"fmt"
	"log"

	"github.com/decker502/dkdead/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家设置
type GameSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"`  // 音乐音量 0.0 ~ 1.0
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	MusicEnabled bool    `yaml:"musicEnabled"` // 音乐开关
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// ShowSpawnPoints 绘制出生点标记（调试用）
	ShowSpawnPoints bool `yaml:"showSpawnPoints"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MusicVolume:  0.7,
		SoundVolume:  0.8,
		MusicEnabled: true,
		SoundEnabled: true,
	}
}

// SettingsManager 负责设置的加载、保存
// gdata 不可用时退化为仅内存设置
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *GameSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "player"
)

// OpenStorage 打开跨平台存储目录
func OpenStorage(appName string) (*gdata.Manager, error) {
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[SettingsManager] Warning: %v", err)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage for %s: %w", appName, err)
	}
	return m, nil
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不是致命错误，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// 文件中缺失的字段保留默认值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded (music %.2f, sound %.2f)", loaded.MusicVolume, loaded.SoundVolume)
	return nil
}

// Save 保存设置到 gdata，降级模式下什么也不做
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[SettingsManager] Settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetMusicVolume 设置音乐音量（仅修改内存，需调用 Save 持久化）
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSoundVolume 设置音效音量（仅修改内存，需调用 Save 持久化）
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// ToggleMusic 切换音乐开关，返回新状态
func (sm *SettingsManager) ToggleMusic() bool {
	sm.settings.MusicEnabled = !sm.settings.MusicEnabled
	return sm.settings.MusicEnabled
}

// ToggleSound 切换音效开关，返回新状态
func (sm *SettingsManager) ToggleSound() bool {
	sm.settings.SoundEnabled = !sm.settings.SoundEnabled
	return sm.settings.SoundEnabled
}

// ToggleSpawnPoints 切换出生点标记显示，返回新状态
func (sm *SettingsManager) ToggleSpawnPoints() bool {
	sm.settings.ShowSpawnPoints = !sm.settings.ShowSpawnPoints
	return sm.settings.ShowSpawnPoints
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

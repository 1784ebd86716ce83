package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PrefabConfig 预制体（可实例化的实体模板）
// 遭遇战敌人和场景装饰物共用同一份模板表
type PrefabConfig struct {
	ID     string  `yaml:"id"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"` // "#RRGGBB"
}

// prefabFile prefabs.yaml 顶层结构
type prefabFile struct {
	Prefabs []PrefabConfig `yaml:"prefabs"`
}

// ParsePrefabConfigs 解析预制体表
// 返回：预制体ID -> 配置
func ParsePrefabConfigs(data []byte) (map[string]*PrefabConfig, error) {
	var file prefabFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prefab config YAML: %w", err)
	}

	prefabs := make(map[string]*PrefabConfig, len(file.Prefabs))
	for i := range file.Prefabs {
		p := file.Prefabs[i]
		if p.ID == "" {
			return nil, fmt.Errorf("prefabs[%d]: id is required", i)
		}
		if _, dup := prefabs[p.ID]; dup {
			return nil, fmt.Errorf("prefabs[%d]: duplicate id %q", i, p.ID)
		}
		if p.Width <= 0 {
			p.Width = DefaultPrefabSize
		}
		if p.Height <= 0 {
			p.Height = DefaultPrefabSize
		}
		if p.Color == "" {
			p.Color = "#c0c0c0"
		}
		if _, err := ParseHexColor(p.Color); err != nil {
			return nil, fmt.Errorf("prefabs[%d] (%s): %w", i, p.ID, err)
		}
		prefabs[p.ID] = &p
	}
	return prefabs, nil
}

// LoadPrefabConfigs 从文件加载预制体表
func LoadPrefabConfigs(filePath string) (map[string]*PrefabConfig, error) {
	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read prefab config file %s: %w", filePath, err)
	}
	prefabs, err := ParsePrefabConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("invalid prefab config in %s: %w", filePath, err)
	}
	return prefabs, nil
}

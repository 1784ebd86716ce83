package encounter

import "github.com/decker502/dkdead/pkg/config"

// SpawnableKind 可生成的敌人种类及其权重
type SpawnableKind struct {
	ID     string  // 种类ID，与出生点允许列表匹配
	Prefab string  // 实例化时使用的预制体
	Weight float64 // 相对出现概率，0 表示永不出现
}

// Catalog 带权重的敌人目录
// 条目顺序决定了相同随机数下的选择结果
type Catalog struct {
	entries []SpawnableKind
}

// NewCatalog 创建敌人目录
func NewCatalog(entries ...SpawnableKind) *Catalog {
	return &Catalog{entries: append([]SpawnableKind(nil), entries...)}
}

// NewCatalogFromConfig 根据配置中的敌人列表创建目录
func NewCatalogFromConfig(enemies []config.EncounterEnemy) *Catalog {
	entries := make([]SpawnableKind, 0, len(enemies))
	for _, e := range enemies {
		prefab := e.Prefab
		if prefab == "" {
			prefab = e.ID
		}
		entries = append(entries, SpawnableKind{ID: e.ID, Prefab: prefab, Weight: e.SpawnChance})
	}
	return &Catalog{entries: entries}
}

// Len 条目数量
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries 返回条目副本
func (c *Catalog) Entries() []SpawnableKind {
	return append([]SpawnableKind(nil), c.entries...)
}

// TotalWeight 所有非负权重之和（负权重按 0 计算）
func (c *Catalog) TotalWeight() float64 {
	total := 0.0
	for _, e := range c.entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// PickWeighted 轮盘赌选择
// 目录为空或总权重为 0 时返回 false
func (c *Catalog) PickWeighted(rng Random) (SpawnableKind, bool) {
	total := c.TotalWeight()
	if total <= 0 {
		return SpawnableKind{}, false
	}
	return c.pick(rng.Float64n(total), total)
}

// PickWithDraw 使用给定的随机数 r ∈ [0, total) 做选择
// 返回第一个累积权重 >= r 的条目；权重为 0 的条目不会被选中
func (c *Catalog) PickWithDraw(r float64) (SpawnableKind, bool) {
	return c.pick(r, c.TotalWeight())
}

// pick 使用已算好的总权重做一次轮盘赌
func (c *Catalog) pick(r, total float64) (SpawnableKind, bool) {
	if total <= 0 {
		return SpawnableKind{}, false
	}

	cumulative := 0.0
	var last SpawnableKind
	found := false
	for _, e := range c.entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		last, found = e, true
		if cumulative >= r {
			return e, true
		}
	}

	// r 超出总权重（浮点误差），返回最后一个有效条目
	return last, found
}

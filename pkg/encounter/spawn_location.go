package encounter

import "math"

// Position 世界坐标
type Position struct {
	X, Y float64
}

// DistanceTo 两点之间的欧氏距离
func (p Position) DistanceTo(other Position) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// SpawnLocation 遭遇战出生点
// 出生点属于场景，每次加载场景都会重新收集，不会跨场景保留
type SpawnLocation struct {
	Position     Position
	Enabled      bool
	AllowedKinds []string // 为空表示接受所有敌人种类
}

// Accepts 判断出生点是否接受指定敌人种类
//   - 禁用的出生点不接受任何种类
//   - 允许列表为空时接受所有种类
//   - 否则仅接受列表中的种类
func (s SpawnLocation) Accepts(kind string) bool {
	if !s.Enabled {
		return false
	}
	if len(s.AllowedKinds) == 0 {
		return true
	}
	for _, allowed := range s.AllowedKinds {
		if allowed == kind {
			return true
		}
	}
	return false
}

// FilterAccepting 过滤出接受指定种类的出生点
// 没有任何出生点接受时回退到全部出生点：不会仅因为没有显式允许而放弃生成
func FilterAccepting(locations []SpawnLocation, kind string) []SpawnLocation {
	eligible := make([]SpawnLocation, 0, len(locations))
	for _, loc := range locations {
		if loc.Accepts(kind) {
			eligible = append(eligible, loc)
		}
	}
	if len(eligible) == 0 {
		return locations
	}
	return eligible
}

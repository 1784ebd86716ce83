package components

// PositionComponent 世界坐标（实体中心点）
type PositionComponent struct {
	X, Y     float64
	Rotation float64 // 角度
}

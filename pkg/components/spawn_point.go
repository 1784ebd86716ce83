package components

import "image/color"

// SpawnPointComponent 遭遇战出生点
// 与 PositionComponent 和 SceneMemberComponent 一起使用
type SpawnPointComponent struct {
	Enabled      bool
	AllowedKinds []string // 为空表示接受所有敌人
	GizmoColor   color.RGBA
}

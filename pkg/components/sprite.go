package components

import "image/color"

// SpriteComponent 实体的视觉表现
// 游戏使用纯色方块绘制，Label 为可选的调试文字
type SpriteComponent struct {
	Width  float64
	Height float64
	Color  color.RGBA
	Label  string
	Layer  int // 绘制层级，数值大的后绘制
}

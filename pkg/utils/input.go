// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 当前帧的指针状态（鼠标或触摸）
type Pointer struct {
	X, Y     int
	Pressed  bool // 按住中
	Released bool // 本帧刚释放
}

// PointerTracker 统一鼠标和触摸输入
// 触摸释放的那一帧已经拿不到触摸坐标，因此记录最后一次触摸位置
type PointerTracker struct {
	lastTouchX, lastTouchY int
}

// Poll 读取本帧指针状态，每帧调用一次
// 有活动触摸时优先使用触摸
func (p *PointerTracker) Poll() Pointer {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		p.lastTouchX, p.lastTouchY = x, y
		return Pointer{X: x, Y: y, Pressed: true}
	}

	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		return Pointer{X: p.lastTouchX, Y: p.lastTouchY, Released: true}
	}

	x, y := ebiten.CursorPosition()
	return Pointer{
		X:        x,
		Y:        y,
		Pressed:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

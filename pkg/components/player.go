package components

// PlayerComponent 玩家标记
// 定时销毁的"目标"与遭遇战的移动门槛都通过它查找玩家
type PlayerComponent struct {
	Speed float64 // 像素/秒
}

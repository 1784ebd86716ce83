package components

// LifetimeComponent 定时销毁组件
// 用于自动清理生成出来的临时实体（如预制体生成器产出的物体）
//
// 两种模式：
//   - DestroyWithoutTarget: 第一次检查时立即开始倒计时
//   - 否则仅当场景中存在目标（玩家）时才倒计时
//
// 每次检查时若目标刚进入场景，倒计时重新开始
type LifetimeComponent struct {
	DestroyDelay         float64 // 延迟(秒)
	DestroyWithoutTarget bool    // 没有目标也销毁

	Checked       bool    // 是否已做过首次检查
	TargetInScene bool    // 上一次检查时目标是否在场景中
	Started       bool    // 倒计时是否已开始
	Elapsed       float64 // 倒计时开始后经过的时间(秒)
	IsExpired     bool
}

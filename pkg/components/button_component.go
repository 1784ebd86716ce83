package components

// ButtonComponent 导航按钮组件
// 纯数据组件：尺寸、文字、状态、点击回调
type ButtonComponent struct {
	// Label 按钮上显示的文字
	Label string
	// Target 点击后跳转的场景ID
	Target string

	Width  float64
	Height float64

	// Enabled 禁用时不响应交互
	Enabled bool
	// State 当前交互状态（由 ButtonSystem 更新）
	State UIState

	// OnClick 鼠标在按钮内释放时触发
	OnClick func()
}

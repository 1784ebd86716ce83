package components

// UIState 表示可交互 UI 元素的状态
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the mouse cursor is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being clicked.
	UIClicked
	// UIDisabled indicates the UI element does not respond to input.
	UIDisabled
)

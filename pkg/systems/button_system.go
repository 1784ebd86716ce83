package systems

import (
	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/decker502/dkdead/pkg/utils"
)

// ButtonSystem 按钮交互系统
//
// 职责：
//   - 检测鼠标悬停（更新按钮状态为 UIHovered）
//   - 鼠标或触摸在按钮内释放时触发 OnClick
//   - 禁用的按钮不响应交互
type ButtonSystem struct {
	entityManager *ecs.EntityManager
	pointer       utils.PointerTracker
}

// NewButtonSystem 创建按钮交互系统
func NewButtonSystem(em *ecs.EntityManager) *ButtonSystem {
	return &ButtonSystem{
		entityManager: em,
	}
}

// Update 读取指针状态并更新按钮
func (s *ButtonSystem) Update(deltaTime float64) {
	p := s.pointer.Poll()
	s.UpdateWithInput(float64(p.X), float64(p.Y), p.Pressed, p.Released)
}

// UpdateWithInput 使用给定的鼠标状态更新按钮
func (s *ButtonSystem) UpdateWithInput(mouseX, mouseY float64, pressed, released bool) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)

	var clicked []func()
	for _, entityID := range entities {
		if s.entityManager.IsMarkedForDestroy(entityID) {
			continue
		}
		button, _ := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if !button.Enabled {
			button.State = components.UIDisabled
			continue
		}

		if !isInsideRect(mouseX, mouseY, pos.X, pos.Y, button.Width, button.Height) {
			button.State = components.UINormal
			continue
		}

		switch {
		case pressed:
			button.State = components.UIClicked
		case released:
			button.State = components.UIHovered
			if button.OnClick != nil {
				clicked = append(clicked, button.OnClick)
			}
		default:
			button.State = components.UIHovered
		}
	}

	// 回调可能触发场景切换并销毁按钮，放到遍历结束后执行
	for _, onClick := range clicked {
		onClick()
	}
}

// isInsideRect 点是否在以 (cx, cy) 为中心的矩形内
func isInsideRect(x, y, cx, cy, width, height float64) bool {
	return x >= cx-width/2 &&
		x <= cx+width/2 &&
		y >= cy-height/2 &&
		y <= cy+height/2
}

package systems

import (
	"image/color"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	buttonNormalColor   = color.RGBA{R: 0x50, G: 0x50, B: 0x60, A: 0xff}
	buttonHoveredColor  = color.RGBA{R: 0x70, G: 0x70, B: 0x90, A: 0xff}
	buttonClickedColor  = color.RGBA{R: 0x30, G: 0x30, B: 0x40, A: 0xff}
	buttonDisabledColor = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0x80}
	buttonShadowColor   = color.RGBA{A: 180}
)

// ButtonRenderSystem 按钮渲染系统
// 按钮画成纯色矩形，颜色随状态变化，文字居中并带阴影
type ButtonRenderSystem struct {
	entityManager *ecs.EntityManager
	font          *text.GoTextFace // 为 nil 时只画背景
}

// NewButtonRenderSystem 创建按钮渲染系统
func NewButtonRenderSystem(em *ecs.EntityManager, font *text.GoTextFace) *ButtonRenderSystem {
	return &ButtonRenderSystem{
		entityManager: em,
		font:          font,
	}
}

// Draw 渲染所有按钮
func (s *ButtonRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.ButtonComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		s.DrawButton(screen, entityID)
	}
}

// DrawButton 渲染单个按钮实体
func (s *ButtonRenderSystem) DrawButton(screen *ebiten.Image, entityID ecs.EntityID) {
	button, ok := ecs.GetComponent[*components.ButtonComponent](s.entityManager, entityID)
	if !ok {
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
	if !ok {
		return
	}

	// 位置是按钮中心
	x := float32(pos.X - button.Width/2)
	y := float32(pos.Y - button.Height/2)
	w, h := float32(button.Width), float32(button.Height)
	vector.DrawFilledRect(screen, x, y, w, h, buttonColor(button.State), false)
	vector.StrokeRect(screen, x, y, w, h, 1, color.White, false)

	s.drawButtonText(screen, button.Label, pos.X, pos.Y)
}

// drawButtonText 以 (centerX, centerY) 为中心绘制文字，先画阴影
func (s *ButtonRenderSystem) drawButtonText(screen *ebiten.Image, label string, centerX, centerY float64) {
	if label == "" || s.font == nil {
		return
	}

	const shadowOffset = 2.0
	// 文字与阴影整体居中
	centerY -= shadowOffset / 2

	shadowOp := &text.DrawOptions{}
	shadowOp.LayoutOptions.PrimaryAlign = text.AlignCenter
	shadowOp.LayoutOptions.SecondaryAlign = text.AlignCenter
	shadowOp.GeoM.Translate(centerX+shadowOffset, centerY+shadowOffset)
	shadowOp.ColorScale.ScaleWithColor(buttonShadowColor)
	text.Draw(screen, label, s.font, shadowOp)

	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(centerX, centerY)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, label, s.font, op)
}

func buttonColor(state components.UIState) color.RGBA {
	switch state {
	case components.UIHovered:
		return buttonHoveredColor
	case components.UIClicked:
		return buttonClickedColor
	case components.UIDisabled:
		return buttonDisabledColor
	default:
		return buttonNormalColor
	}
}

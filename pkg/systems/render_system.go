package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/decker502/dkdead/pkg/components"
	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// RenderSystem 绘制方块精灵和出生点标记
// 按钮由 ButtonRenderSystem 绘制
type RenderSystem struct {
	entityManager *ecs.EntityManager
	font          *text.GoTextFace // 为 nil 时不绘制文字

	// ShowSpawnPoints 为 true 时绘制出生点（启用为圆圈，禁用为方框）
	ShowSpawnPoints bool
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, font *text.GoTextFace) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		font:          font,
	}
}

// Draw 绘制所有可见实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, id := range s.sortedSprites() {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.drawSprite(screen, sprite, pos)
	}

	if s.ShowSpawnPoints {
		s.drawSpawnPoints(screen)
	}

}

// sortedSprites 按层级、实体ID排序的精灵实体
func (s *RenderSystem) sortedSprites() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager)
	layers := make(map[ecs.EntityID]int, len(ids))
	for _, id := range ids {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		layers[id] = sprite.Layer
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return layers[ids[i]] < layers[ids[j]]
	})
	return ids
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, sprite *components.SpriteComponent, pos *components.PositionComponent) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sprite.Width, sprite.Height)
	op.GeoM.Translate(-sprite.Width/2, -sprite.Height/2)
	op.GeoM.Rotate(pos.Rotation * math.Pi / 180)
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(sprite.Color)
	screen.DrawImage(whiteSubImage, op)

	if sprite.Label != "" {
		s.drawLabel(screen, sprite.Label, pos.X, pos.Y-sprite.Height/2-10, color.White)
	}
}

func (s *RenderSystem) drawSpawnPoints(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.SpawnPointComponent, *components.PositionComponent](s.entityManager)
	for _, id := range ids {
		sp, _ := ecs.GetComponent[*components.SpawnPointComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		x, y := float32(pos.X), float32(pos.Y)
		size := float32(config.SpawnGizmoSize)

		if sp.Enabled {
			vector.StrokeCircle(screen, x, y, size, 2, sp.GizmoColor, true)
		} else {
			vector.StrokeRect(screen, x-size, y-size, size*2, size*2, 2, sp.GizmoColor, false)
		}
	}
}

// drawLabel 以 (x, y) 为中心绘制文字
func (s *RenderSystem) drawLabel(screen *ebiten.Image, label string, x, y float64, clr color.Color) {
	if s.font == nil || label == "" {
		return
	}
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, label, s.font, op)
}

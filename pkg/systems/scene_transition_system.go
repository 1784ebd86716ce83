package systems

import (
	"image/color"
	"log"

	"github.com/decker502/dkdead/pkg/config"
	"github.com/decker502/dkdead/pkg/encounter"
	"github.com/decker502/dkdead/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SceneLoader 加载场景（由 game.SceneManager 实现）
type SceneLoader interface {
	LoadScene(sceneID string, mode encounter.LoadMode) error
}

// transitionPhase 场景过渡阶段
type transitionPhase int

const (
	transitionIdle transitionPhase = iota
	transitionFadingOut
	transitionFadingIn
)

// SceneTransitionSystem 场景切换淡入淡出
// 画面先在 fadeDuration 内变黑（三次方缓入缓出），加载场景，再在同样时长内恢复
// 过渡期间的新请求被忽略
type SceneTransitionSystem struct {
	loader       SceneLoader
	fadeDuration float64

	phase   transitionPhase
	elapsed float64
	alpha   float64
	target  string
}

// NewSceneTransitionSystem 创建场景过渡系统
func NewSceneTransitionSystem(loader SceneLoader, fadeDuration float64) *SceneTransitionSystem {
	return &SceneTransitionSystem{
		loader:       loader,
		fadeDuration: fadeDuration,
	}
}

// RequestTransition 请求切换到指定场景
// 返回 false 表示正在过渡中，请求被忽略
func (s *SceneTransitionSystem) RequestTransition(sceneID string) bool {
	if s.phase != transitionIdle {
		log.Printf("[SceneTransitionSystem] Ignoring transition to %s: already transitioning to %s", sceneID, s.target)
		return false
	}
	log.Printf("[SceneTransitionSystem] Transition to %s", sceneID)

	s.target = sceneID
	s.elapsed = 0
	if s.fadeDuration <= 0 {
		s.load()
		return true
	}
	s.phase = transitionFadingOut
	return true
}

// IsTransitioning 是否正在过渡
func (s *SceneTransitionSystem) IsTransitioning() bool {
	return s.phase != transitionIdle
}

// Alpha 黑色遮罩当前不透明度 0~1
func (s *SceneTransitionSystem) Alpha() float64 {
	return s.alpha
}

// Update 推进淡入淡出
func (s *SceneTransitionSystem) Update(deltaTime float64) {
	switch s.phase {
	case transitionFadingOut:
		s.elapsed += deltaTime
		s.alpha = utils.EaseInOutCubic(s.elapsed / s.fadeDuration)
		if s.elapsed >= s.fadeDuration {
			s.alpha = 1
			s.load()
			s.phase = transitionFadingIn
			s.elapsed = 0
		}
	case transitionFadingIn:
		s.elapsed += deltaTime
		s.alpha = 1 - utils.EaseInOutCubic(s.elapsed/s.fadeDuration)
		if s.elapsed >= s.fadeDuration {
			s.alpha = 0
			s.phase = transitionIdle
			s.target = ""
		}
	}
}

func (s *SceneTransitionSystem) load() {
	if err := s.loader.LoadScene(s.target, encounter.LoadModeSingle); err != nil {
		log.Printf("[SceneTransitionSystem] Error: %v", err)
	}
}

// Draw 绘制黑色遮罩
func (s *SceneTransitionSystem) Draw(screen *ebiten.Image) {
	if s.alpha <= 0 {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight,
		color.NRGBA{A: uint8(s.alpha * 255)}, false)
}

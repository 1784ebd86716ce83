package config

// 布局配置常量
// 所有坐标使用"世界坐标系"（相对于窗口左上角，场景不滚动）
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// SpawnGizmoSize 调试模式下出生点标记的半径
	SpawnGizmoSize = 8.0

	// PlayerSize 玩家方块边长
	PlayerSize = 24.0

	// DefaultPrefabSize 未配置尺寸的预制体边长
	DefaultPrefabSize = 32.0
)

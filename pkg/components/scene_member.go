package components

// SceneMemberComponent 标记实体属于某个场景
// 场景以 single 模式卸载时，带此组件的实体会被一起销毁；
// 没有此组件的实体（如遭遇战敌人）跨场景保留
type SceneMemberComponent struct {
	SceneID string
}

package components

// EncounterComponent 标记遭遇战生成的敌人
type EncounterComponent struct {
	Kind   string
	Prefab string
}

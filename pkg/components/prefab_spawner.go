package components

// PrefabSpawnerComponent 定时随机生成预制体
type PrefabSpawnerComponent struct {
	Prefab string
	X, Y   float64

	MinInterval  float64
	MaxInterval  float64
	DestroyDelay float64

	Rotation      string // fixed / random / randomRange
	FixedRotation float64
	MinRotation   float64
	MaxRotation   float64

	// 运行时状态
	Armed    bool    // 本轮等待时长是否已抽取
	Timer    float64 // 本轮已等待的时间
	NextWait float64 // 本轮等待时长
}

package encounter

import (
	"math/rand"
	"time"
)

// Random 随机数来源
// 测试中可注入固定序列以获得确定性结果
type Random interface {
	// Float64n 返回 [0, n) 内的均匀随机实数
	Float64n(n float64) float64
	// IntN 返回 [0, n) 内的均匀随机整数
	IntN(n int) int
	// Range 返回 [min, max) 内的均匀随机实数
	Range(min, max float64) float64
}

// seededRandom 基于 math/rand 的可设种子实现
type seededRandom struct {
	r *rand.Rand
}

// NewRandom 创建随机数来源
// seed 为 0 时使用当前时间作为种子
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seededRandom{r: rand.New(rand.NewSource(seed))}
}

func (s *seededRandom) Float64n(n float64) float64 {
	if n <= 0 {
		return 0
	}
	return s.r.Float64() * n
}

func (s *seededRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *seededRandom) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.r.Float64()*(max-min)
}

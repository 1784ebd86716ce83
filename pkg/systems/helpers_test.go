package systems

import (
	"math"

	"github.com/decker502/dkdead/pkg/encounter"
)

// fixedRandom 测试用随机源：Range 依次返回队列中的值，队列为空时返回 min
type fixedRandom struct {
	ranges []float64
	calls  [][2]float64
}

func (r *fixedRandom) Float64n(n float64) float64 { return 0 }
func (r *fixedRandom) IntN(n int) int { return 0 }
func (r *fixedRandom) Range(min, max float64) float64 {
	r.calls = append(r.calls, [2]float64{min, max})
	if len(r.ranges) == 0 {
		return min
	}
	v := r.ranges[0]
	r.ranges = r.ranges[1:]
	return v
}

var _ encounter.Random = (*fixedRandom)(nil)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// 计时框架：对依赖式访存循环做多次计时，取中位数作为单点延迟估计。
package timing

import (
	"go.uber.org/atomic"
	"sort"
	"time"
)

// AccessFunc 执行count次依赖式访存，返回最后读到的值。
type AccessFunc func(count int) uint64

type Measurer interface {
	// Measure 测量access每次访存的平均耗时，单位纳秒。
	// totalAccesses需足够大，使测量区间比计时器分辨率高出数个数量级。
	Measure(access AccessFunc, totalAccesses int) float64
}

// 计时结束后存放最后访问到的值，阻止编译器消去访存循环
var chaseSink = atomic.NewUint64(0)

func NewMeasurer(trials, warmupAccesses int) Measurer {
	if trials < 1 {
		trials = 1
	}
	return &measurer{trials: trials, warmup: warmupAccesses}
}

type measurer struct {
	trials int
	warmup int
}

var _ Measurer = &measurer{}

// 测量期间若进程被调度器换出，该轮样本会整体偏高。这里不检测此类干扰，
// 只依靠多轮测量加中位数聚合来抵抗离群值，是已知的局限而非缺陷。
func (m *measurer) Measure(access AccessFunc, totalAccesses int) float64 {
	samples := make([]float64, 0, m.trials)
	for t := 0; t < m.trials; t++ {
		// 预热：不计时地走一遍环，填充缓存层次并稳定分支与预取状态
		chaseSink.Store(access(m.warmup))

		start := time.Now()
		last := access(totalAccesses)
		elapsed := time.Since(start)
		chaseSink.Store(last)

		samples = append(samples, float64(elapsed.Nanoseconds())/float64(totalAccesses))
	}
	return Aggregate(samples)
}

// Aggregate 把多轮样本归并为一个标量。奇数个取中位数；
// 偶数个取中间两个元素的平均值，对单个偏低的离群值有平滑作用。
// 结果只依赖样本的多重集合，与样本顺序无关。
func Aggregate(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

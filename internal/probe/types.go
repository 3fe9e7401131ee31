// 三个独立的扫描过程：容量扫描、相联度扫描、行大小扫描。
// 每个扫描按参数升序逐点构造工作集并测量，最后把点序列交给跳变检测得到边界。
package probe

import (
	"github.com/packagewjx/cacheprobe/internal/detector"
	"github.com/packagewjx/cacheprobe/internal/timing"
	"github.com/packagewjx/cacheprobe/internal/workingset"
)

// Termination 记录边界值由哪条路径得出
type Termination string

var (
	// 主检测算法确认的跳变
	TerminationDetector Termination = "detector"
	// 相联度扫描的辅助性提前终止规则，见AssocProbeConfig.EarlyExitFactor
	TerminationEarlyExit Termination = "earlyexit"
	// 未检测到边界
	TerminationNone Termination = "none"
)

type Result struct {
	Points      []detector.Point
	Boundary    uint64 // 0表示未能检测
	Termination Termination
}

type Prober interface {
	Probe() *Result
}

// 测量函数作为字段注入，测试可替换为合成延迟函数
type measureFunc func(set *workingset.Set, totalAccesses int) float64

func realMeasure(m timing.Measurer) measureFunc {
	return func(set *workingset.Set, totalAccesses int) float64 {
		return m.Measure(set.Traverse, totalAccesses)
	}
}

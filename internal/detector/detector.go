// 跳变检测：在按参数升序排列的延迟序列中定位延迟陡升的位置，
// 推断缓存容量、相联度或行大小所在的边界。
package detector

import (
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/packagewjx/cacheprobe/internal/timing"
)

// Point 一次测量结果。Param为被扫描的参数值（字节数或路数），
// Latency为每次访存的纳秒数。序列顺序即扫描顺序，对检测有意义。
type Point struct {
	Param   uint64
	Latency float64
}

type BoundaryDetector interface {
	// Detect 返回推断出的边界参数值，0表示未能检测到
	Detect(points []Point) uint64
}

// NewConfirmedJumpDetector 严格检测：跳变需同时大幅超过基线、明显超过前一点，
// 且后续若干点持续维持高位才被确认，单点噪声尖峰会被拒绝。
// 确认后返回跳变前一点的参数值，即仍处于快区间的最后一点。
// 点数不足以支撑确认窗口，或没有被确认的跳变时，返回0而不是猜测值。
func NewConfirmedJumpDetector(config *core.DetectorConfig) BoundaryDetector {
	return &confirmedJumpDetector{config: config}
}

// NewRelaxedDetector 宽松检测：基线只取第一个点，阈值更低，无确认窗口，
// 命中时返回该点自身的参数值。找不到跳变时退回整个序列中延迟最大的点，
// 保证总有非零答案。这是以精度换取总能给值的后备策略，不是错误路径。
func NewRelaxedDetector(config *core.DetectorConfig) BoundaryDetector {
	return &relaxedDetector{config: config}
}

type confirmedJumpDetector struct {
	config *core.DetectorConfig
}

var _ BoundaryDetector = &confirmedJumpDetector{}

func (d *confirmedJumpDetector) Detect(points []Point) uint64 {
	cfg := d.config
	if len(points) < 2 {
		return 0
	}

	// 基线取前若干个点的中位数，假定它们都落在快区间内
	n := cfg.BaselinePoints
	if n > len(points) {
		n = len(points)
	}
	head := make([]float64, n)
	for i := 0; i < n; i++ {
		head[i] = points[i].Latency
	}
	baseline := timing.Aggregate(head)

	for i := 1; i < len(points); i++ {
		if points[i].Latency <= baseline*cfg.JumpRatio ||
			points[i].Latency <= points[i-1].Latency*cfg.StepRatio {
			continue
		}
		// 候选跳变，检查后续窗口是否持续高位
		if i+cfg.ConfirmWindow >= len(points) {
			// 剩余点数不足以确认，按未检测处理
			return 0
		}
		confirmed := true
		for j := i + 1; j <= i+cfg.ConfirmWindow; j++ {
			if points[j].Latency <= baseline*cfg.ConfirmRatio {
				confirmed = false
				break
			}
		}
		if confirmed {
			return points[i-1].Param
		}
	}
	return 0
}

type relaxedDetector struct {
	config *core.DetectorConfig
}

var _ BoundaryDetector = &relaxedDetector{}

func (d *relaxedDetector) Detect(points []Point) uint64 {
	if len(points) == 0 {
		return 0
	}
	cfg := d.config
	baseline := points[0].Latency
	for i := 1; i < len(points); i++ {
		if points[i].Latency > baseline*cfg.RelaxedJumpRatio &&
			points[i].Latency > points[i-1].Latency*cfg.RelaxedStepRatio {
			return points[i].Param
		}
	}

	// 没有合格的跳变时，退回延迟最大的点
	max := 0
	for i := 1; i < len(points); i++ {
		if points[i].Latency > points[max].Latency {
			max = i
		}
	}
	return points[max].Param
}

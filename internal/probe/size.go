package probe

import (
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/packagewjx/cacheprobe/internal/detector"
	"github.com/packagewjx/cacheprobe/internal/timing"
	"github.com/packagewjx/cacheprobe/internal/workingset"
	"log"
	"os"
)

// NewSizeProber 容量扫描。工作集大小在预期包含L1的千字节区间内细粒度递增，
// 越过该区间后逐渐放粗，兼顾分辨率与总耗时。使用严格检测，
// 宁可报告未检测到，也不给出可能错误的容量值。
func NewSizeProber(config *core.Config) Prober {
	return &sizeProber{
		config:   config,
		measure:  realMeasure(timing.NewMeasurer(config.Measure.Trials, config.Measure.WarmupAccesses)),
		detector: detector.NewConfirmedJumpDetector(&config.Detector),
		logger:   log.New(os.Stdout, "SizeProbe: ", log.LstdFlags|log.Lmsgprefix),
	}
}

type sizeProber struct {
	config   *core.Config
	measure  measureFunc
	detector detector.BoundaryDetector
	logger   *log.Logger
}

var _ Prober = &sizeProber{}

// 手工调校的分段网格
func (p *sizeProber) grid() []int {
	cfg := &p.config.Size
	sizes := make([]int, 0, 32)
	for s := cfg.MinSize; s <= cfg.FineMax; s += cfg.FineStep {
		sizes = append(sizes, s)
	}
	for s := cfg.FineMax + cfg.MidStep; s <= cfg.MidMax; s += cfg.MidStep {
		sizes = append(sizes, s)
	}
	for s := cfg.MidMax + cfg.CoarseStep; s <= cfg.MaxSize; s += cfg.CoarseStep {
		sizes = append(sizes, s)
	}
	return sizes
}

func (p *sizeProber) Probe() *Result {
	cfg := p.config
	points := make([]detector.Point, 0, 32)
	for _, size := range p.grid() {
		set, err := workingset.NewSizeSet(size, cfg.Size.LineStride, cfg.Seed)
		if err != nil {
			p.logger.Printf("构造 %d 字节工作集失败，跳过该参数：%v", size, err)
			continue
		}
		latency := p.measure(set, cfg.Measure.TotalAccesses)
		p.logger.Printf("工作集 %d KiB，平均访存延迟 %.3f ns", size/1024, latency)
		points = append(points, detector.Point{Param: uint64(size), Latency: latency})
	}

	result := &Result{Points: points, Termination: TerminationNone}
	if boundary := p.detector.Detect(points); boundary != 0 {
		result.Boundary = boundary
		result.Termination = TerminationDetector
	}
	return result
}

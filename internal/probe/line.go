package probe

import (
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/packagewjx/cacheprobe/internal/detector"
	"github.com/packagewjx/cacheprobe/internal/timing"
	"github.com/packagewjx/cacheprobe/internal/workingset"
	"log"
	"os"
)

// NewLineProber 行大小扫描。步长按2的幂从小于任何实际行大小扫到远超行大小，
// 缓冲区远大于L1容量，每次访问都要落到更慢的存储层次，
// 测到的差异来自步长（空间局部性）而非容量。步长曲线噪声较大，
// 使用宽松检测，保证总能给出一个答案。
func NewLineProber(config *core.Config) Prober {
	return &lineProber{
		config:   config,
		measure:  realMeasure(timing.NewMeasurer(config.Measure.Trials, config.Measure.WarmupAccesses)),
		detector: detector.NewRelaxedDetector(&config.Detector),
		logger:   log.New(os.Stdout, "LineProbe: ", log.LstdFlags|log.Lmsgprefix),
	}
}

type lineProber struct {
	config   *core.Config
	measure  measureFunc
	detector detector.BoundaryDetector
	logger   *log.Logger
}

var _ Prober = &lineProber{}

func (p *lineProber) Probe() *Result {
	cfg := p.config
	points := make([]detector.Point, 0, 16)
	for stride := cfg.Line.MinStride; stride <= cfg.Line.MaxStride; stride *= 2 {
		set, err := workingset.NewStrideSet(cfg.Line.BufferSize, stride, cfg.Seed)
		if err != nil {
			p.logger.Printf("构造步长 %d 工作集失败，跳过该参数：%v", stride, err)
			continue
		}
		latency := p.measure(set, cfg.Measure.TotalAccesses)
		p.logger.Printf("步长 %d 字节，平均访存延迟 %.3f ns", stride, latency)
		points = append(points, detector.Point{Param: uint64(stride), Latency: latency})
	}

	result := &Result{Points: points, Termination: TerminationNone}
	if boundary := p.detector.Detect(points); boundary != 0 {
		result.Boundary = boundary
		result.Termination = TerminationDetector
	}
	return result
}

package probe

import (
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/packagewjx/cacheprobe/internal/detector"
	"github.com/packagewjx/cacheprobe/internal/timing"
	"github.com/packagewjx/cacheprobe/internal/workingset"
	"log"
	"os"
)

// NewAssocProber 相联度扫描。候选路数从1递增到上限，每个候选构造
// 若干个以页大小整数倍间隔的地址，使它们映射到同一缓存组。
// 候选路数一旦超过实际相联度，同组地址互相逐出，延迟陡升。
func NewAssocProber(pageSize int, config *core.Config) Prober {
	return &assocProber{
		config:   config,
		stride:   pageSize * config.Assoc.PagesPerWay,
		measure:  realMeasure(timing.NewMeasurer(config.Measure.Trials, config.Measure.WarmupAccesses)),
		detector: detector.NewConfirmedJumpDetector(&config.Detector),
		logger:   log.New(os.Stdout, "AssocProbe: ", log.LstdFlags|log.Lmsgprefix),
	}
}

type assocProber struct {
	config   *core.Config
	stride   int
	measure  measureFunc
	detector detector.BoundaryDetector
	logger   *log.Logger
}

var _ Prober = &assocProber{}

func (p *assocProber) Probe() *Result {
	cfg := p.config
	points := make([]detector.Point, 0, cfg.Assoc.MaxWays)
	for ways := 1; ways <= cfg.Assoc.MaxWays; ways++ {
		set, err := workingset.NewAssocSet(ways, p.stride, cfg.Seed)
		if err != nil {
			p.logger.Printf("构造 %d 路工作集失败，跳过该参数：%v", ways, err)
			continue
		}
		latency := p.measure(set, cfg.Measure.TotalAccesses)
		p.logger.Printf("候选 %d 路，平均访存延迟 %.3f ns", ways, latency)
		points = append(points, detector.Point{Param: uint64(ways), Latency: latency})

		// 辅助性提前终止：延迟超过路数的若干倍即认为已明显变慢，直接报告前一路数。
		// 纳秒与路数不是同单位量，这只是粗略信号，与主检测算法是两回事。
		if ways > 1 && latency > cfg.Assoc.EarlyExitFactor*float64(ways) {
			p.logger.Printf("延迟超过 %.0f×%d，提前终止扫描", cfg.Assoc.EarlyExitFactor, ways)
			return &Result{
				Points:      points,
				Boundary:    uint64(ways - 1),
				Termination: TerminationEarlyExit,
			}
		}
	}

	result := &Result{Points: points, Termination: TerminationNone}
	if boundary := p.detector.Detect(points); boundary != 0 {
		result.Boundary = boundary
		result.Termination = TerminationDetector
	}
	return result
}

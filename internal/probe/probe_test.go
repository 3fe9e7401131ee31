package probe

import (
	"bytes"
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/packagewjx/cacheprobe/internal/workingset"
	"github.com/stretchr/testify/assert"
	"log"
	"strings"
	"testing"
)

func testConfig() *core.Config {
	config := *core.RootConfig
	// 缩小行扫描缓冲区，测试里只做分配不做真实测量
	config.Line.BufferSize = 1024 * 1024
	return &config
}

func assertAscending(t *testing.T, result *Result) {
	for i := 1; i < len(result.Points); i++ {
		assert.Less(t, result.Points[i-1].Param, result.Points[i].Param)
	}
}

// 合成延迟：32KiB以内1ns，以外4ns，容量扫描应报告32KiB边界
func TestSizeProbeSyntheticBoundary(t *testing.T) {
	p := NewSizeProber(testConfig())
	// hack
	p.(*sizeProber).measure = func(set *workingset.Set, totalAccesses int) float64 {
		if set.SizeBytes() <= 32*1024 {
			return 1
		}
		return 4
	}
	p.(*sizeProber).logger = log.New(&bytes.Buffer{}, "", 0)

	result := p.Probe()
	assert.Equal(t, uint64(32*1024), result.Boundary)
	assert.Equal(t, TerminationDetector, result.Termination)
	assertAscending(t, result)
}

func TestSizeProbeFlatNotDetected(t *testing.T) {
	p := NewSizeProber(testConfig())
	// hack
	p.(*sizeProber).measure = func(set *workingset.Set, totalAccesses int) float64 {
		return 1
	}
	p.(*sizeProber).logger = log.New(&bytes.Buffer{}, "", 0)

	result := p.Probe()
	assert.Equal(t, uint64(0), result.Boundary)
	assert.Equal(t, TerminationNone, result.Termination)
}

// 容量网格必须覆盖32KiB这一常见L1容量点
func TestSizeGridContains32KiB(t *testing.T) {
	p := NewSizeProber(testConfig()).(*sizeProber)
	found := false
	for _, size := range p.grid() {
		if size == 32*1024 {
			found = true
		}
	}
	assert.True(t, found)
}

// 合成延迟在8路之后线性增长，提前终止规则应在第9路触发并报告8路，
// 不会扫描到32路上限
func TestAssocProbeEarlyExit(t *testing.T) {
	p := NewAssocProber(4096, testConfig())
	buf := &bytes.Buffer{}
	// hack
	p.(*assocProber).measure = func(set *workingset.Set, totalAccesses int) float64 {
		if set.Units() <= 8 {
			return 1
		}
		return 3 * float64(set.Units())
	}
	p.(*assocProber).logger = log.New(buf, "", 0)

	result := p.Probe()
	assert.Equal(t, uint64(8), result.Boundary)
	assert.Equal(t, TerminationEarlyExit, result.Termination)
	assert.Equal(t, 9, len(result.Points))
	assert.NotEqual(t, -1, strings.Index(buf.String(), "提前终止"))
}

// 升幅不足以触发提前终止时，由主检测算法给出边界
func TestAssocProbeDetectorPath(t *testing.T) {
	p := NewAssocProber(4096, testConfig())
	// hack
	p.(*assocProber).measure = func(set *workingset.Set, totalAccesses int) float64 {
		if set.Units() <= 8 {
			return 1
		}
		return 1.6
	}
	p.(*assocProber).logger = log.New(&bytes.Buffer{}, "", 0)

	result := p.Probe()
	assert.Equal(t, uint64(8), result.Boundary)
	assert.Equal(t, TerminationDetector, result.Termination)
	assert.Equal(t, 32, len(result.Points))
	assertAscending(t, result)
}

func TestLineProbeRelaxedBoundary(t *testing.T) {
	p := NewLineProber(testConfig())
	// hack
	p.(*lineProber).measure = func(set *workingset.Set, totalAccesses int) float64 {
		if set.StrideBytes() >= 128 {
			return 4
		}
		return 1
	}
	p.(*lineProber).logger = log.New(&bytes.Buffer{}, "", 0)

	result := p.Probe()
	assert.Equal(t, uint64(128), result.Boundary)
	assert.Equal(t, TerminationDetector, result.Termination)
	assertAscending(t, result)
}

// 平坦曲线下宽松检测仍给出最大延迟点，行扫描总有答案
func TestLineProbeFlatStillAnswers(t *testing.T) {
	p := NewLineProber(testConfig())
	// hack
	p.(*lineProber).measure = func(set *workingset.Set, totalAccesses int) float64 {
		if set.StrideBytes() == 64 {
			return 1.1
		}
		return 1
	}
	p.(*lineProber).logger = log.New(&bytes.Buffer{}, "", 0)

	result := p.Probe()
	assert.Equal(t, uint64(64), result.Boundary)
}

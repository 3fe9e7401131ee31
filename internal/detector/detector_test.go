package detector

import (
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/stretchr/testify/assert"
	"testing"
)

func testConfig() *core.DetectorConfig {
	config := core.RootConfig.Detector
	return &config
}

// 参数取等差序列，只为让边界值可辨认
func makePoints(latencies ...float64) []Point {
	points := make([]Point, len(latencies))
	for i, l := range latencies {
		points[i] = Point{Param: uint64((i + 1) * 4096), Latency: l}
	}
	return points
}

func TestConfirmedFlatSequence(t *testing.T) {
	d := NewConfirmedJumpDetector(testConfig())
	points := makePoints(1.0, 1.02, 0.98, 1.01, 1.0, 0.99, 1.03, 1.0, 1.01, 0.97)
	assert.Equal(t, uint64(0), d.Detect(points))
}

func TestConfirmedSustainedJump(t *testing.T) {
	d := NewConfirmedJumpDetector(testConfig())
	// 下标0到5平坦，6之后持续升高到1.5倍以上，边界应为下标5的参数
	points := makePoints(1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.5, 1.5, 1.5, 1.5)
	assert.Equal(t, points[5].Param, d.Detect(points))
}

// 单点尖峰不满足确认窗口，不能当作跳变
func TestConfirmedRejectsSpike(t *testing.T) {
	d := NewConfirmedJumpDetector(testConfig())
	points := makePoints(1.0, 1.0, 1.0, 1.6, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0)
	assert.Equal(t, uint64(0), d.Detect(points))
}

// 剩余点数不足以支撑确认窗口时报告未检测，而不是给猜测值
func TestConfirmedTooShort(t *testing.T) {
	d := NewConfirmedJumpDetector(testConfig())
	points := makePoints(1.0, 1.0, 1.0, 1.5)
	assert.Equal(t, uint64(0), d.Detect(points))

	assert.Equal(t, uint64(0), d.Detect(nil))
	assert.Equal(t, uint64(0), d.Detect(makePoints(1.0)))
}

func TestRelaxedJumpReturnsOwnParam(t *testing.T) {
	d := NewRelaxedDetector(testConfig())
	points := makePoints(1.0, 1.1, 1.5, 1.6)
	// 宽松检测返回跳变点自身的参数，不是前一点
	assert.Equal(t, points[2].Param, d.Detect(points))
}

func TestRelaxedFallbackToMax(t *testing.T) {
	d := NewRelaxedDetector(testConfig())
	// 缓慢爬升，无合格跳变，退回延迟最大的点
	points := makePoints(1.0, 1.2, 1.25, 1.28)
	assert.Equal(t, points[3].Param, d.Detect(points))
}

func TestRelaxedFlatSequence(t *testing.T) {
	d := NewRelaxedDetector(testConfig())
	points := makePoints(1.0, 1.01, 1.03, 1.0)
	// 平坦序列退回（平凡的）最大延迟点
	assert.Equal(t, points[2].Param, d.Detect(points))
}

func TestRelaxedEmpty(t *testing.T) {
	d := NewRelaxedDetector(testConfig())
	assert.Equal(t, uint64(0), d.Detect(nil))
}

// 两种策略对相同输入都必须是确定的
func TestDeterministic(t *testing.T) {
	points := makePoints(1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.5, 1.5, 1.5, 1.5)
	strict := NewConfirmedJumpDetector(testConfig())
	relaxed := NewRelaxedDetector(testConfig())
	for i := 0; i < 5; i++ {
		assert.Equal(t, points[5].Param, strict.Detect(points))
		assert.Equal(t, points[6].Param, relaxed.Detect(points))
	}
}

package core

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"reflect"
	"strings"
)

// 顶层公共Config
type Config struct {
	Measure  MeasureConfig
	Size     SizeProbeConfig
	Assoc    AssocProbeConfig
	Line     LineProbeConfig
	Detector DetectorConfig
	Seed     int64 // 随机环构造的种子，固定以保证两次运行结果可复现
}

type MeasureConfig struct {
	Trials         int // 每个参数值的测量次数，取中位数
	TotalAccesses  int // 单次计时的访存次数，需远大于计时器分辨率对应的访存数
	WarmupAccesses int // 计时前的预热访存次数，不计入耗时
}

type SizeProbeConfig struct {
	LineStride int // 近似一个缓存行的步长，保证每次访问只触碰一行
	MinSize    int
	FineMax    int // 此大小以下使用FineStep，L1预期所在的区间
	FineStep   int
	MidMax     int
	MidStep    int
	MaxSize    int
	CoarseStep int
}

type AssocProbeConfig struct {
	MaxWays     int // 候选路数上限
	PagesPerWay int // 同组地址之间相隔的页数
	// 提前终止的粗略判断系数，比较的是纳秒数与路数，并非同单位量。
	// 这只是辅助性启发式规则，与DetectorConfig的主检测算法无关。
	EarlyExitFactor float64
}

type LineProbeConfig struct {
	MinStride  int // 需覆盖小于缓存行的步长，该区间延迟应平坦
	MaxStride  int
	BufferSize int // 远大于L1容量，使每次访问都落到更慢的存储层次
}

// 跳变检测的全部阈值。均为固定配置值，不从数据方差推导。
type DetectorConfig struct {
	BaselinePoints   int     // 严格检测基线取前若干个点的中位数
	JumpRatio        float64 // 相对基线的跳变倍数
	StepRatio        float64 // 相对前一点的跳变倍数
	ConfirmWindow    int     // 跳变后需要持续升高的点数
	ConfirmRatio     float64 // 确认窗口内相对基线的放宽倍数
	RelaxedJumpRatio float64
	RelaxedStepRatio float64
}

var RootConfig = &Config{
	Measure: MeasureConfig{
		Trials:         5,
		TotalAccesses:  1 << 21,
		WarmupAccesses: 1 << 17,
	},
	Size: SizeProbeConfig{
		LineStride: 64,
		MinSize:    4 * 1024,
		FineMax:    64 * 1024,
		FineStep:   4 * 1024,
		MidMax:     256 * 1024,
		MidStep:    32 * 1024,
		MaxSize:    2 * 1024 * 1024,
		CoarseStep: 256 * 1024,
	},
	Assoc: AssocProbeConfig{
		MaxWays:         32,
		PagesPerWay:     8,
		EarlyExitFactor: 2,
	},
	Line: LineProbeConfig{
		MinStride:  4,
		MaxStride:  4096,
		BufferSize: 8 * 1024 * 1024,
	},
	Detector: DetectorConfig{
		BaselinePoints:   8,
		JumpRatio:        1.35,
		StepRatio:        1.18,
		ConfirmWindow:    3,
		ConfirmRatio:     1.25,
		RelaxedJumpRatio: 1.30,
		RelaxedStepRatio: 1.15,
	},
	Seed: 20200828,
}

func checkNotZero(val reflect.Value, path []string) error {
	switch val.Kind() {
	case reflect.String:
		return nil
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			err := checkNotZero(val.Field(i), append(path, typ.Field(i).Name))
			if err != nil {
				return err
			}
		}
	case reflect.Float64:
		if val.Float() == 0 {
			return fmt.Errorf("字段 %s 为0", strings.Join(path, "."))
		}
	case reflect.Int, reflect.Int64:
		if val.Int() == 0 {
			return fmt.Errorf("字段 %s 为0", strings.Join(path, "."))
		}
	default:
		panic(fmt.Sprintf("没有遇到的类型 %s", val.Kind()))
	}
	return nil
}

func (config *Config) Check() error {
	// 检查不能为0的字段
	if err := checkNotZero(reflect.ValueOf(*config), []string{}); err != nil {
		return err
	}

	if config.Size.MinSize%config.Size.LineStride != 0 {
		return fmt.Errorf("Size.MinSize 必须为 Size.LineStride 的倍数")
	}
	if config.Line.MinStride > config.Line.MaxStride {
		return fmt.Errorf("Line.MinStride 不能大于 Line.MaxStride")
	}
	return nil
}

func (config *Config) String() string {
	marshal, _ := yaml.Marshal(config)
	return string(marshal)
}

// 构造测量用的工作集。工作集是一块连续缓冲区，内部以下标链接成单个随机环，
// 计时循环沿环做指针追逐，下一次访问的地址依赖上一次读到的值，
// 硬件预取器与分支预测无法利用访问模式走捷径。
package workingset

import (
	"fmt"
	"math/rand"
)

const elemSize = 4 // 缓冲区以int32为单位

// 单次分配的上限。探测开始前应根据机器实际内存调用SetAllocLimit调整。
var allocLimit = 1 << 30

func SetAllocLimit(bytes int) {
	if bytes > 0 {
		allocLimit = bytes
	}
}

// Set 为一次测量独占的工作集。环覆盖所有活跃槽位恰好一次，
// 不存在子环，也不存在环外的活跃槽位。
type Set struct {
	arena       []int32
	start       int32
	sizeBytes   int
	strideBytes int
	units       int
}

func (s *Set) SizeBytes() int   { return s.sizeBytes }
func (s *Set) StrideBytes() int { return s.strideBytes }
func (s *Set) Units() int       { return s.units }

// Traverse 沿环访问count次，返回最后读到的值。
// 返回值必须被调用方消费，否则整个循环可能被编译器消去。
func (s *Set) Traverse(count int) uint64 {
	idx := s.start
	for i := 0; i < count; i++ {
		idx = s.arena[idx]
	}
	return uint64(idx)
}

// NewSizeSet 构造容量探测工作集：活跃槽位以lineStride字节间隔分布在
// sizeBytes大小的缓冲区内，每次访问只触碰一个缓存行。
func NewSizeSet(sizeBytes, lineStride int, seed int64) (*Set, error) {
	if lineStride <= 0 || lineStride%elemSize != 0 {
		return nil, fmt.Errorf("行步长 %d 非法，必须为%d的正倍数", lineStride, elemSize)
	}
	if sizeBytes < lineStride {
		return nil, fmt.Errorf("工作集大小 %d 小于行步长 %d", sizeBytes, lineStride)
	}
	return newSet(sizeBytes, lineStride, sizeBytes/lineStride, seed)
}

// NewAssocSet 构造相联度探测工作集：ways个槽位以strideBytes间隔分布。
// strideBytes取页大小的倍数时，低位组选择位相同，所有槽位落入同一缓存组。
// 缓冲区大小为(ways+1)个步长，避免首尾槽位平凡重叠。
func NewAssocSet(ways, strideBytes int, seed int64) (*Set, error) {
	if ways < 1 {
		return nil, fmt.Errorf("路数 %d 非法", ways)
	}
	if strideBytes <= 0 || strideBytes%elemSize != 0 {
		return nil, fmt.Errorf("步长 %d 非法，必须为%d的正倍数", strideBytes, elemSize)
	}
	return newSet((ways+1)*strideBytes, strideBytes, ways, seed)
}

// NewStrideSet 构造行大小探测工作集：在bufferBytes大小的缓冲区内，
// 活跃槽位以被扫描的strideBytes间隔分布。缓冲区应远大于L1容量，
// 使测量反映步长带来的空间局部性差异而非容量效应。
func NewStrideSet(bufferBytes, strideBytes int, seed int64) (*Set, error) {
	if strideBytes <= 0 || strideBytes%elemSize != 0 {
		return nil, fmt.Errorf("步长 %d 非法，必须为%d的正倍数", strideBytes, elemSize)
	}
	if bufferBytes < strideBytes {
		return nil, fmt.Errorf("缓冲区 %d 小于步长 %d", bufferBytes, strideBytes)
	}
	return newSet(bufferBytes, strideBytes, bufferBytes/strideBytes, seed)
}

func newSet(totalBytes, strideBytes, units int, seed int64) (*Set, error) {
	if totalBytes > allocLimit {
		return nil, fmt.Errorf("申请 %d 字节超过上限 %d", totalBytes, allocLimit)
	}
	s := &Set{
		arena:       make([]int32, totalBytes/elemSize),
		sizeBytes:   totalBytes,
		strideBytes: strideBytes,
		units:       units,
	}
	s.start = linkCycle(s.arena, strideBytes/elemSize, units, rand.New(rand.NewSource(seed)))
	return s, nil
}

// linkCycle 把units个活跃槽位按均匀随机排列连成单个环：
// perm[k]指向perm[k+1]，末尾指回perm[0]，保证每个槽位在回到起点前恰好被访问一次。
// 返回环的起始下标。
func linkCycle(arena []int32, strideElems, units int, rng *rand.Rand) int32 {
	perm := rng.Perm(units)
	for k := 0; k < units; k++ {
		arena[perm[k]*strideElems] = int32(perm[(k+1)%units] * strideElems)
	}
	return int32(perm[0] * strideElems)
}

// 采集探测所需的主机环境信息。页大小用于相联度探测的步长与缓冲区对齐，
// 内存总量用于限制工作集的最大分配，其余字段仅用于报告。
package hostinfo

import (
	ps "github.com/keybase/go-ps"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"os"
)

type HostInfo struct {
	PageSize     int    // 内存页大小，字节
	CPUModel     string
	LogicalCores int
	TotalMemory  uint64 // 物理内存总量，字节
	ProcessCount int    // 当前进程数。进程多的机器计时噪声大，测量结果仅供参考
}

func Collect() (*HostInfo, error) {
	info := &HostInfo{PageSize: os.Getpagesize()}

	cpuInfo, err := cpu.Info()
	if err != nil {
		return nil, errors.Wrap(err, "获取CPU信息出错")
	}
	if len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}
	counts, err := cpu.Counts(true)
	if err != nil {
		return nil, errors.Wrap(err, "获取CPU核数出错")
	}
	info.LogicalCores = counts

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, errors.Wrap(err, "获取内存信息出错")
	}
	info.TotalMemory = vm.Total

	processes, err := ps.Processes()
	if err != nil {
		return nil, errors.Wrap(err, "获取进程列表出错")
	}
	info.ProcessCount = len(processes)

	return info, nil
}

/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/packagewjx/cacheprobe/internal/detector"
	"github.com/packagewjx/cacheprobe/internal/hostinfo"
	"github.com/packagewjx/cacheprobe/internal/probe"
	"github.com/packagewjx/cacheprobe/internal/workingset"
	"github.com/pkg/errors"
	"os"
	"strconv"
)

// 探测前的公共准备：检查配置、采集主机信息、设定工作集分配上限
func prepare() (*hostinfo.HostInfo, error) {
	if err := core.RootConfig.Check(); err != nil {
		return nil, errors.Wrap(err, "配置检查不通过")
	}
	host, err := hostinfo.Collect()
	if err != nil {
		return nil, errors.Wrap(err, "采集主机信息出错")
	}
	// 工作集最多占用四分之一物理内存
	workingset.SetAllocLimit(int(host.TotalMemory / 4))
	return host, nil
}

func writePointsCsv(points []detector.Point, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "创建输出文件出错")
	}
	defer func() {
		_ = f.Close()
	}()
	writer := csv.NewWriter(f)
	for _, p := range points {
		err := writer.Write([]string{strconv.FormatUint(p.Param, 10),
			strconv.FormatFloat(p.Latency, 'f', 3, 64)})
		if err != nil {
			return errors.Wrap(err, "打印输出内容出错")
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatBoundary(result *probe.Result, render func(boundary uint64) string) string {
	if result.Boundary == 0 {
		return "未能可靠检测"
	}
	text := render(result.Boundary)
	if result.Termination == probe.TerminationEarlyExit {
		text += "（由提前终止规则得出）"
	}
	return text
}

func renderKiB(boundary uint64) string {
	return fmt.Sprintf("%d KiB", boundary/1024)
}

func renderWays(boundary uint64) string {
	return fmt.Sprintf("%d 路", boundary)
}

func renderBytes(boundary uint64) string {
	return fmt.Sprintf("%d 字节", boundary)
}

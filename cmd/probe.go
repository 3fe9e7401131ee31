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
	"fmt"
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/packagewjx/cacheprobe/internal/probe"
	"github.com/spf13/cobra"
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "依次执行容量、相联度、行大小三个探测并输出报告",
	Long: `按顺序单线程执行三个扫描，每个扫描结束后输出其点序列的推断结果。
某项结果为"未能可靠检测"不算失败，只表示该延迟曲线上没有可确认的跳变。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := prepare()
		if err != nil {
			return err
		}
		fmt.Printf("CPU: %s，逻辑核 %d 个，页大小 %d 字节，当前进程 %d 个\n",
			host.CPUModel, host.LogicalCores, host.PageSize, host.ProcessCount)

		sizeResult := probe.NewSizeProber(core.RootConfig).Probe()
		assocResult := probe.NewAssocProber(host.PageSize, core.RootConfig).Probe()
		lineResult := probe.NewLineProber(core.RootConfig).Probe()

		fmt.Println()
		fmt.Printf("L1数据缓存容量: %s\n", formatBoundary(sizeResult, renderKiB))
		fmt.Printf("组相联度: %s\n", formatBoundary(assocResult, renderWays))
		fmt.Printf("缓存行大小: %s\n", formatBoundary(lineResult, renderBytes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

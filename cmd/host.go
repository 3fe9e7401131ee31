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
	"github.com/packagewjx/cacheprobe/internal/hostinfo"
	"github.com/spf13/cobra"
)

// hostCmd represents the host command
var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "输出探测所处的主机环境信息",
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := hostinfo.Collect()
		if err != nil {
			return err
		}
		fmt.Printf("CPU型号: %s\n", host.CPUModel)
		fmt.Printf("逻辑核数: %d\n", host.LogicalCores)
		fmt.Printf("页大小: %d 字节\n", host.PageSize)
		fmt.Printf("物理内存: %d MiB\n", host.TotalMemory/1024/1024)
		fmt.Printf("当前进程数: %d\n", host.ProcessCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hostCmd)
}

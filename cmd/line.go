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

var lineOutFile string

// lineCmd represents the line command
var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "仅执行缓存行大小扫描",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := prepare(); err != nil {
			return err
		}
		result := probe.NewLineProber(core.RootConfig).Probe()
		if lineOutFile != "" {
			if err := writePointsCsv(result.Points, lineOutFile); err != nil {
				return err
			}
		}
		fmt.Printf("缓存行大小: %s\n", formatBoundary(result, renderBytes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lineCmd)

	lineCmd.Flags().StringVarP(&lineOutFile, "out", "o", "", "点序列CSV输出路径")
}

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

var assocOutFile string

// assocCmd represents the assoc command
var assocCmd = &cobra.Command{
	Use:   "assoc",
	Short: "仅执行组相联度扫描",
	RunE: func(cmd *cobra.Command, args []string) error {
		host, err := prepare()
		if err != nil {
			return err
		}
		result := probe.NewAssocProber(host.PageSize, core.RootConfig).Probe()
		if assocOutFile != "" {
			if err := writePointsCsv(result.Points, assocOutFile); err != nil {
				return err
			}
		}
		fmt.Printf("组相联度: %s\n", formatBoundary(result, renderWays))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assocCmd)

	assocCmd.Flags().StringVarP(&assocOutFile, "out", "o", "", "点序列CSV输出路径")
}

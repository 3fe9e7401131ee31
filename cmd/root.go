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
	"github.com/fsnotify/fsnotify"
	"github.com/packagewjx/cacheprobe/internal/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"os"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cacheprobe",
	Short: "通过计时推断L1数据缓存参数",
	Long: `本程序不读取任何硬件描述信息，仅通过对受控访存模式的计时，
推断处理器L1数据缓存的容量、组相联度与缓存行大小。
完整探测需要数秒到数十秒，期间请保持机器空闲，
后台负载会直接污染延迟读数。虚拟机或被降频的机器上结果不保证准确。`,
}

func init() {
	cobra.OnInitialize(readConfig)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func readConfig() {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/cacheprobe")
	}

	err := viper.ReadInConfig()
	if err != nil {
		// 没有配置文件时使用默认配置
		return
	}
	err = viper.UnmarshalExact(core.RootConfig)
	if err != nil {
		log.Println("读取配置出错", err)
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(in fsnotify.Event) {
		if in.Op == fsnotify.Write {
			log.Printf("配置文件已更改，正在重新读取")
			_ = viper.ReadInConfig()
			_ = viper.UnmarshalExact(core.RootConfig)
		}
	})
}

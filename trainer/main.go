package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/common/log"
	"github.com/e0087/matiate/common/metrics"
	"github.com/e0087/matiate/trainer/app"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	seed       int64
	kanCount   int
	riichi     bool
	withMetric bool
)

var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "trainer 听牌练习",
	Long:  `trainer 听牌练习：看牌河，在和了牌被打出时选择荣和或自摸`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			config.InitConfig(configFile)
		}
		conf := config.Current()
		log.InitLog(conf.AppName, resolveLogLevel(logLevel, cmd.Flags().Changed("logLevel"), conf))
		if conf.Log.Path != "" {
			f, err := os.OpenFile(conf.Log.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("打开日志文件失败: %w", err)
			}
			defer f.Close()
			log.SetOutput(f)
		} else {
			// 牌桌占用标准输出
			log.SetOutput(os.Stderr)
		}
		log.Debug("配置文件: %+v", conf)

		if withMetric {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务退出: %v", err)
				}
			}()
		}

		opts := app.Options{Seed: seed, Kan: kanCount}
		if !cmd.Flags().Changed("seed") {
			opts.Seed = time.Now().UnixNano()
		}
		if cmd.Flags().Changed("riichi") {
			opts.Riichi = &riichi
		}
		log.Info("随机种子: %d", opts.Seed)
		return app.Run(context.Background(), opts)
	},
}

// resolveLogLevel 命令行显式指定时优先，否则取配置文件中的级别
func resolveLogLevel(flag string, changed bool, conf *config.Config) string {
	if changed || conf.Log.Level == "" {
		return flag
	}
	return conf.Log.Level
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "resource", "", "resource file, defaults are used when empty")
	rootCmd.Flags().StringVar(&logLevel, "logLevel", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed, a time based seed is used when omitted")
	rootCmd.Flags().IntVar(&kanCount, "kan", -1, "concealed kan count 0-4, random when negative")
	rootCmd.Flags().BoolVar(&riichi, "riichi", false, "force riichi on or off, random when omitted")
	rootCmd.Flags().BoolVar(&withMetric, "metrics", false, "serve statsviz on metricPort")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %#v", err)
		os.Exit(1)
	}
}

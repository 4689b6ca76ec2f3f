package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/e0087/matiate/common/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	AppName    string     `mapstructure:"appName"`
	Log        LogConf    `mapstructure:"log"`
	MetricPort int        `mapstructure:"metricPort"`
	Puzzle     PuzzleConf `mapstructure:"puzzle"`
	Cache      CacheConf  `mapstructure:"cache"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// CacheConf 求值器结果缓存（ristretto）
type CacheConf struct {
	MaxCost    int64 `mapstructure:"maxCost"`    // 最多缓存条目数，每条 cost 为 1
	TTLSeconds int   `mapstructure:"ttlSeconds"` // 0 表示不过期
}

var (
	mu        sync.RWMutex
	listeners []func(*Config)
)

// Default 返回全部默认值组成的配置
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		// 默认值是常量，解析失败只可能是结构体标签写错
		panic(fmt.Errorf("解析默认配置出错, err:%v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "trainer")
	v.SetDefault("log.level", "info")
	v.SetDefault("metricPort", 0)
	v.SetDefault("cache.maxCost", 1<<16)
	v.SetDefault("cache.ttlSeconds", 600)

	d := DefaultPuzzleConf()
	v.SetDefault("puzzle.maxDiscards", d.MaxDiscards)
	v.SetDefault("puzzle.wallCount", d.WallCount)
	v.SetDefault("puzzle.totalTurns", d.TotalTurns)
	v.SetDefault("puzzle.maxAttempts", d.MaxAttempts)
	v.SetDefault("puzzle.scheduleMinTurn", d.ScheduleMinTurn)
	v.SetDefault("puzzle.scheduleMaxTurn", d.ScheduleMaxTurn)
	v.SetDefault("puzzle.riichiRate", d.RiichiRate)
	v.SetDefault("puzzle.kanRate", d.KanRate)
	v.SetDefault("puzzle.tieBreak", d.TieBreak)
	v.SetDefault("puzzle.standardWeight", d.StandardWeight)
	v.SetDefault("puzzle.chiitoiWeight", d.ChiitoiWeight)
	v.SetDefault("puzzle.kokushiWeight", d.KokushiWeight)
	v.SetDefault("puzzle.runRate", d.RunRate)
	v.SetDefault("puzzle.redTripletRate", d.RedTripletRate)
	v.SetDefault("puzzle.redDoraRate", d.RedDoraRate)
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	if err := cfg.Puzzle.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load 读取配置文件，未出现的字段使用默认值
func Load(configFile string) (*Config, error) {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件出错: %w", err)
	}
	return decode(v)
}

// OnChange 注册配置热更新回调
func OnChange(fn func(*Config)) {
	mu.Lock()
	defer mu.Unlock()
	listeners = append(listeners, fn)
}

// Current 返回当前全局配置，未初始化时返回默认配置
func Current() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if Conf == nil {
		return Default()
	}
	return Conf
}

func InitConfig(configFile string) {
	v := newViper(configFile)
	err := v.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("读取配置文件出错, err:%v", err))
	}

	cfg, err := decode(v)
	if err != nil {
		panic(fmt.Errorf("解析配置文件出错 1, err:%v", err))
	}
	mu.Lock()
	Conf = cfg
	mu.Unlock()

	v.OnConfigChange(func(in fsnotify.Event) {
		_ = reload(v)
	})
	v.WatchConfig()
}

// reload 重新解析配置并通知回调，失败时保留旧配置
func reload(v *viper.Viper) error {
	next, err := decode(v)
	if err != nil {
		log.Warn("配置热更新失败，保留旧配置: %v", err)
		return err
	}
	mu.Lock()
	Conf = next
	fns := append([]func(*Config){}, listeners...)
	mu.Unlock()
	for _, fn := range fns {
		fn(next)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
)

type TieBreak string

const (
	TieBreakFirst TieBreak = "first" // 点数相同取求值器先返回的拆解
	TieBreakHan   TieBreak = "han"   // 点数相同比番数、再比符数
)

var ErrInvalidPuzzleConf = errors.New("invalid puzzle config")

// PuzzleConf 待ち当て问题的生成与推进参数
type PuzzleConf struct {
	MaxDiscards     int      `mapstructure:"maxDiscards"`     // 每家牌河上限（只摆一段）
	WallCount       int      `mapstructure:"wallCount"`       // 剩余山牌
	TotalTurns      int      `mapstructure:"totalTurns"`      // 总巡目上限
	MaxAttempts     int      `mapstructure:"maxAttempts"`     // 生成听牌手牌的最大尝试次数
	ScheduleMinTurn int      `mapstructure:"scheduleMinTurn"` // 和了牌最早出现的巡目
	ScheduleMaxTurn int      `mapstructure:"scheduleMaxTurn"` // 和了牌最晚出现的巡目
	RiichiRate      float64  `mapstructure:"riichiRate"`
	KanRate         float64  `mapstructure:"kanRate"`
	TieBreak        TieBreak `mapstructure:"tieBreak"`
	StandardWeight  float64  `mapstructure:"standardWeight"` // 一般形
	ChiitoiWeight   float64  `mapstructure:"chiitoiWeight"`  // 七对子
	KokushiWeight   float64  `mapstructure:"kokushiWeight"`  // 国士无双
	RunRate         float64  `mapstructure:"runRate"`        // 数牌面子取顺子的概率
	RedTripletRate  float64  `mapstructure:"redTripletRate"` // 5 的刻子含赤牌的概率
	RedDoraRate     float64  `mapstructure:"redDoraRate"`    // 随机牌 5 变赤的概率
}

func DefaultPuzzleConf() PuzzleConf {
	return PuzzleConf{
		MaxDiscards:     6,
		WallCount:       24,
		TotalTurns:      24,
		MaxAttempts:     50,
		ScheduleMinTurn: 3,
		ScheduleMaxTurn: 20,
		RiichiRate:      0.5,
		KanRate:         0.2,
		TieBreak:        TieBreakFirst,
		StandardWeight:  0.90,
		ChiitoiWeight:   0.08,
		KokushiWeight:   0.02,
		RunRate:         0.6,
		RedTripletRate:  0.1,
		RedDoraRate:     0.05,
	}
}

// Validate 保证预定的和了牌一定能在巡目与山牌耗尽前打出
func (c PuzzleConf) Validate() error {
	switch {
	case c.MaxDiscards <= 0 || c.WallCount <= 0 || c.TotalTurns <= 0:
		return fmt.Errorf("%w: maxDiscards/wallCount/totalTurns must be positive", ErrInvalidPuzzleConf)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("%w: maxAttempts must be positive", ErrInvalidPuzzleConf)
	case c.ScheduleMinTurn < 0 || c.ScheduleMinTurn > c.ScheduleMaxTurn:
		return fmt.Errorf("%w: schedule turn range [%d, %d]", ErrInvalidPuzzleConf, c.ScheduleMinTurn, c.ScheduleMaxTurn)
	case c.ScheduleMaxTurn+4 > c.TotalTurns || c.ScheduleMaxTurn+4 > c.WallCount:
		// 指定家最迟在预定巡目后第 3 巡出牌
		return fmt.Errorf("%w: scheduleMaxTurn %d leaves no room before turn cap", ErrInvalidPuzzleConf, c.ScheduleMaxTurn)
	case c.MaxDiscards*4 < c.TotalTurns:
		return fmt.Errorf("%w: %d discards per seat cannot cover %d turns", ErrInvalidPuzzleConf, c.MaxDiscards, c.TotalTurns)
	case c.StandardWeight < 0 || c.ChiitoiWeight < 0 || c.KokushiWeight < 0 ||
		c.StandardWeight+c.ChiitoiWeight+c.KokushiWeight <= 0:
		return fmt.Errorf("%w: shape weights", ErrInvalidPuzzleConf)
	case !inUnit(c.RiichiRate) || !inUnit(c.KanRate) || !inUnit(c.RunRate) ||
		!inUnit(c.RedTripletRate) || !inUnit(c.RedDoraRate):
		return fmt.Errorf("%w: rates must lie in [0, 1]", ErrInvalidPuzzleConf)
	}
	switch c.TieBreak {
	case TieBreakFirst, TieBreakHan:
	default:
		return fmt.Errorf("%w: unknown tieBreak %q", ErrInvalidPuzzleConf, c.TieBreak)
	}
	return nil
}

func inUnit(f float64) bool { return f >= 0 && f <= 1 }

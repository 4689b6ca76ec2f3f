package puzzle

import (
	"fmt"
	"math/rand"

	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
)

// Params 一道题的输入参数
type Params struct {
	KanCount  int // 暗杠数 0-4
	Riichi    bool
	RoundWind mahjong.Wind
	SeatWind  mahjong.Wind
	Bonus     int // 本场 0-2
	Deposit   int // 供托 0-2
}

func (p Params) Validate() error {
	switch {
	case p.KanCount < 0 || p.KanCount > 4:
		return fmt.Errorf("%w: kanCount %d", ErrInvalidParams, p.KanCount)
	case !p.RoundWind.Valid() || !p.SeatWind.Valid():
		return fmt.Errorf("%w: wind %d/%d", ErrInvalidParams, p.RoundWind, p.SeatWind)
	case p.Bonus < 0 || p.Bonus > 2:
		return fmt.Errorf("%w: bonus %d", ErrInvalidParams, p.Bonus)
	case p.Deposit < 0 || p.Deposit > 2:
		return fmt.Errorf("%w: deposit %d", ErrInvalidParams, p.Deposit)
	}
	return nil
}

// RandomParams 随机场况：kanRate 的概率有 1-4 个暗杠
func RandomParams(rng *rand.Rand, conf config.PuzzleConf) Params {
	p := Params{
		RoundWind: mahjong.Wind(rng.Intn(4)),
		SeatWind:  mahjong.Wind(rng.Intn(4)),
		Bonus:     rng.Intn(3),
		Deposit:   rng.Intn(3),
		Riichi:    rng.Float64() < conf.RiichiRate,
	}
	if rng.Float64() < conf.KanRate {
		p.KanCount = rng.Intn(4) + 1
	}
	return p
}

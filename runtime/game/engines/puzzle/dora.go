package puzzle

import (
	"math/rand"

	"github.com/e0087/matiate/runtime/game/engines/mahjong"
)

// DoraSampler 随机牌：四种花色等概率，数牌 5 按 redRate 变为赤牌
type DoraSampler struct {
	rng     *rand.Rand
	redRate float64
}

func NewDoraSampler(rng *rand.Rand, redRate float64) *DoraSampler {
	return &DoraSampler{rng: rng, redRate: redRate}
}

// Draw 抽一张牌，每次独立
func (s *DoraSampler) Draw() mahjong.Tile {
	suit := mahjong.Suit(s.rng.Intn(4))
	if suit == mahjong.SuitHonor {
		tt, _ := mahjong.TileOf(suit, s.rng.Intn(7)+1)
		return mahjong.NewTile(tt)
	}
	tt, _ := mahjong.TileOf(suit, s.rng.Intn(9)+1)
	if tt.IsFive() && s.rng.Float64() < s.redRate {
		return mahjong.NewRedFive(tt)
	}
	return mahjong.NewTile(tt)
}

// Sample 抽 count 张指示牌
func (s *DoraSampler) Sample(count int) []mahjong.Tile {
	out := make([]mahjong.Tile, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.Draw())
	}
	return out
}

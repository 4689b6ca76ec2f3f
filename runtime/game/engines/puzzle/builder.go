package puzzle

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/common/log"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
)

// Shape 和了形的构造方式
type Shape int

const (
	ShapeStandard Shape = iota // 4 面子 1 雀头
	ShapeChiitoi               // 七对子
	ShapeKokushi               // 国士无双
)

func (s Shape) String() string {
	switch s {
	case ShapeChiitoi:
		return "七对子"
	case ShapeKokushi:
		return "国士无双"
	default:
		return "一般形"
	}
}

// WaitingHand 听牌手牌与全部听牌
type WaitingHand struct {
	Hand     *mahjong.Hand
	Waits    []mahjong.Tile
	Shape    Shape
	Fallback bool
}

// IsWait 是否为听的牌，赤 5 与普通 5 视为同一张
func (w WaitingHand) IsWait(t mahjong.Tile) bool {
	for _, wt := range w.Waits {
		if wt.Same(t) {
			return true
		}
	}
	return false
}

// 备用手牌，下标为暗杠数；都听 z1（除 4 杠外还听 z2）
var fallbackHands = [5]string{
	"m123p456s789z1122",
	"p456s789z1122,m1111",
	"s789z1122,m1111,p9999",
	"z1122,m1111,p9999,s5555",
	"z1,m1111,p9999,s5555,z7777",
}

var errNotTenpai = errors.New("candidate is not tenpai")

// HandBuilder 先随机构造和了形，再抽掉一张得到听牌手牌
type HandBuilder struct {
	conf      config.PuzzleConf
	rng       *rand.Rand
	evaluator mahjong.Evaluator
}

func NewHandBuilder(conf config.PuzzleConf, rng *rand.Rand, evaluator mahjong.Evaluator) *HandBuilder {
	return &HandBuilder{
		conf:      conf,
		rng:       rng,
		evaluator: evaluator,
	}
}

// Build 最多尝试 MaxAttempts 次，全部失败时返回 ErrGenerationExhausted
func (b *HandBuilder) Build(kanCount int) (WaitingHand, error) {
	if kanCount < 0 || kanCount > 4 {
		return WaitingHand{}, fmt.Errorf("%w: kanCount %d", ErrInvalidParams, kanCount)
	}
	for attempt := 1; attempt <= b.conf.MaxAttempts; attempt++ {
		wh, err := b.try(kanCount)
		if err == nil {
			return wh, nil
		}
		if errors.Is(err, mahjong.ErrMalformedEncoding) {
			log.Warn("第 %d 次生成手牌被求值器拒绝: %v", attempt, err)
		} else {
			log.Debug("第 %d 次生成手牌未听牌", attempt)
		}
	}
	return WaitingHand{}, fmt.Errorf("%w: %d attempts", ErrGenerationExhausted, b.conf.MaxAttempts)
}

// BuildOrFallback 总能返回一副听牌手牌，越界的暗杠数按 0-4 截断
func (b *HandBuilder) BuildOrFallback(kanCount int) WaitingHand {
	kanCount = min(max(kanCount, 0), 4)
	wh, err := b.Build(kanCount)
	if err == nil {
		return wh
	}
	log.Warn("生成听牌手牌失败，使用备用手牌: %v", err)
	return b.fallback(kanCount)
}

func (b *HandBuilder) fallback(kanCount int) WaitingHand {
	h, err := b.evaluator.ParseHand(fallbackHands[kanCount])
	if err != nil {
		panic(fmt.Errorf("备用手牌无法解析, err:%v", err))
	}
	waits := b.evaluator.ComputeWaits(h)
	if len(waits) == 0 {
		panic(fmt.Errorf("备用手牌 %s 不听牌", fallbackHands[kanCount]))
	}
	return WaitingHand{Hand: h, Waits: waits, Shape: ShapeStandard, Fallback: true}
}

func (b *HandBuilder) try(kanCount int) (WaitingHand, error) {
	shape := b.pickShape(kanCount)

	var concealed, kans []mahjong.Tile
	switch shape {
	case ShapeChiitoi:
		concealed = b.chiitoiTiles()
	case ShapeKokushi:
		concealed = b.kokushiTiles()
	default:
		concealed, kans = b.standardTiles(kanCount)
	}

	complete, err := b.evaluator.ParseHand(mahjong.EncodeHand(concealed, kans))
	if err != nil {
		return WaitingHand{}, fmt.Errorf("%s: %w", shape, err)
	}
	idx := b.rng.Intn(len(complete.Concealed))
	candidate, err := b.evaluator.ParseHand(complete.Without(idx).Encode())
	if err != nil {
		return WaitingHand{}, fmt.Errorf("%s: %w", shape, err)
	}
	waits := b.evaluator.ComputeWaits(candidate)
	if len(waits) == 0 {
		return WaitingHand{}, errNotTenpai
	}
	return WaitingHand{Hand: candidate, Waits: waits, Shape: shape}, nil
}

// pickShape 有暗杠时只能是一般形
func (b *HandBuilder) pickShape(kanCount int) Shape {
	if kanCount > 0 {
		return ShapeStandard
	}
	total := b.conf.StandardWeight + b.conf.ChiitoiWeight + b.conf.KokushiWeight
	r := b.rng.Float64() * total
	switch {
	case r < b.conf.StandardWeight:
		return ShapeStandard
	case r < b.conf.StandardWeight+b.conf.ChiitoiWeight:
		return ShapeChiitoi
	default:
		return ShapeKokushi
	}
}

func (b *HandBuilder) randomType() mahjong.TileType {
	suit := mahjong.Suit(b.rng.Intn(4))
	return b.randomTypeOf(suit)
}

func (b *HandBuilder) randomTypeOf(suit mahjong.Suit) mahjong.TileType {
	rank := b.rng.Intn(9) + 1
	if suit == mahjong.SuitHonor {
		rank = b.rng.Intn(7) + 1
	}
	tt, _ := mahjong.TileOf(suit, rank)
	return tt
}

// triplet 5 的刻子按 redTripletRate 含一张赤牌
func (b *HandBuilder) triplet(tt mahjong.TileType) []mahjong.Tile {
	out := []mahjong.Tile{mahjong.NewTile(tt), mahjong.NewTile(tt), mahjong.NewTile(tt)}
	if tt.IsFive() && b.rng.Float64() < b.conf.RedTripletRate {
		out[0] = mahjong.NewRedFive(tt)
	}
	return out
}

// mentsu 字牌只有刻子，数牌按 runRate 取顺子
func (b *HandBuilder) mentsu() []mahjong.Tile {
	suit := mahjong.Suit(b.rng.Intn(4))
	if suit == mahjong.SuitHonor {
		return b.triplet(b.randomTypeOf(suit))
	}
	if b.rng.Float64() < b.conf.RunRate {
		start, _ := mahjong.TileOf(suit, b.rng.Intn(7)+1)
		return []mahjong.Tile{mahjong.NewTile(start), mahjong.NewTile(start + 1), mahjong.NewTile(start + 2)}
	}
	return b.triplet(b.randomTypeOf(suit))
}

func (b *HandBuilder) standardTiles(kanCount int) ([]mahjong.Tile, []mahjong.Tile) {
	pair := b.randomType()
	concealed := []mahjong.Tile{mahjong.NewTile(pair), mahjong.NewTile(pair)}

	var kans []mahjong.Tile
	for i := 0; i < kanCount; i++ {
		tt := b.randomType()
		kan := mahjong.NewTile(tt)
		if tt.IsFive() && b.rng.Float64() < b.conf.RedTripletRate {
			kan = mahjong.NewRedFive(tt)
		}
		kans = append(kans, kan)
	}
	for i := 0; i < 4-kanCount; i++ {
		concealed = append(concealed, b.mentsu()...)
	}
	return concealed, kans
}

// chiitoiTiles 七个对子相互独立，重复的对子交给后续校验
func (b *HandBuilder) chiitoiTiles() []mahjong.Tile {
	out := make([]mahjong.Tile, 0, 14)
	for i := 0; i < 7; i++ {
		tt := b.randomType()
		out = append(out, mahjong.NewTile(tt), mahjong.NewTile(tt))
	}
	return out
}

// kokushiTiles 十三种幺九牌各一张，再随机重复其中一种
func (b *HandBuilder) kokushiTiles() []mahjong.Tile {
	types := mahjong.KokushiTileTypes()
	out := make([]mahjong.Tile, 0, 14)
	for _, tt := range types {
		out = append(out, mahjong.NewTile(tt))
	}
	return append(out, mahjong.NewTile(types[b.rng.Intn(len(types))]))
}

package mahjong

import (
	"time"

	"github.com/e0087/matiate/common/cache"
	"github.com/e0087/matiate/common/config"
)

// TableContext 场况，问题生成后只读
type TableContext struct {
	RoundWind         Wind
	SeatWind          Wind
	Bonus             int // 本场数
	Deposit           int // 供托数
	Riichi            bool
	DoraIndicators    []Tile
	UraDoraIndicators []Tile // 仅立直时有值
}

// IsDealer 自风为东即庄家
func (c TableContext) IsDealer() bool {
	return c.SeatWind == WindEast
}

// Win 和了牌与和了方式
type Win struct {
	Tile  Tile
	Tsumo bool
}

// ScoredDecomposition 一种拆解的计分结果（不含本场、供托）
type ScoredDecomposition struct {
	Decomposition Decomposition
	Yaku          []YakuResult
	Han           int
	Fu            int
	Points        int
	YakumanMult   int
	Limit         Limit
	Payment       Payment
}

// Evaluator 手牌求值：解析、听牌、计分
type Evaluator interface {
	ParseHand(encoding string) (*Hand, error)
	ComputeWaits(h *Hand) []Tile
	Score(h *Hand, win Win, ctx TableContext) []ScoredDecomposition
}

// Engine Evaluator 的默认实现
type Engine struct {
	searcher *Searcher
}

func NewEngine(searcher *Searcher) *Engine {
	if searcher == nil {
		searcher = NewSearcher(nil, nil)
	}
	return &Engine{searcher: searcher}
}

// NewCachedSearcher 按配置创建带 ristretto 缓存的搜索器，MaxCost 为 0 时不缓存
func NewCachedSearcher(conf config.CacheConf) (*Searcher, error) {
	if conf.MaxCost <= 0 {
		return NewSearcher(nil, nil), nil
	}
	ttl := time.Duration(conf.TTLSeconds) * time.Second
	agari, err := cache.NewGeneralCache[bool](conf.MaxCost, ttl)
	if err != nil {
		return nil, err
	}
	waits, err := cache.NewGeneralCache[[]TileType](conf.MaxCost, ttl)
	if err != nil {
		agari.Close()
		return nil, err
	}
	return NewSearcher(agari, waits), nil
}

func (e *Engine) ParseHand(encoding string) (*Hand, error) {
	return ParseHand(encoding)
}

// ComputeWaits 13 张手牌的听牌，不听牌或大小不对时返回空
func (e *Engine) ComputeWaits(h *Hand) []Tile {
	if h == nil || h.Size() != 13 {
		return nil
	}
	types := e.searcher.Waits(h.Counts(), len(h.Kans), h.HeldCounts())
	out := make([]Tile, 0, len(types))
	for _, t := range types {
		out = append(out, NewTile(t))
	}
	return out
}

// Score 按拆解枚举顺序返回所有有役的计分结果
func (e *Engine) Score(h *Hand, win Win, ctx TableContext) []ScoredDecomposition {
	if h == nil || h.Size() != 13 || !win.Tile.Type.Valid() {
		return nil
	}
	held := h.HeldCounts()
	if held[win.Tile.Type] >= 4 {
		return nil
	}

	before := h.Counts()
	h14 := before
	h14[win.Tile.Type]++
	counts := held
	counts[win.Tile.Type]++
	tiles := h.With(win.Tile).AllTiles()

	decomps := decompose(h14, h.Kans, win.Tile.Type, win.Tsumo, before)
	out := make([]ScoredDecomposition, 0, len(decomps))
	for i := range decomps {
		yctx := &YakuContext{
			Decomp: &decomps[i],
			Counts: counts,
			Before: before,
			Kans:   len(h.Kans),
			Win:    win,
			Table:  ctx,
		}
		if sd, ok := scoreDecomposition(yctx, tiles); ok {
			out = append(out, sd)
		}
	}
	return out
}

func scoreDecomposition(ctx *YakuContext, tiles []Tile) (ScoredDecomposition, bool) {
	yaku := EvalYaku(ctx)
	if len(yaku) == 0 {
		return ScoredDecomposition{}, false
	}

	sd := ScoredDecomposition{Decomposition: *ctx.Decomp}
	pinfu := false
	for _, y := range yaku {
		sd.YakumanMult += y.Yakuman
		if y.Yaku == YakuPinfu {
			pinfu = true
		}
	}
	if sd.YakumanMult == 0 {
		yaku = append(yaku, EvalDora(tiles, ctx.Table)...)
		for _, y := range yaku {
			sd.Han += y.Han
		}
		sd.Fu = calculateFu(ctx, pinfu)
	}
	sd.Yaku = yaku

	base, limit := calculateBasePoints(sd.Han, sd.Fu, sd.YakumanMult)
	sd.Limit = limit
	sd.Points, sd.Payment = calculatePoints(base, ctx.Table.IsDealer(), ctx.Win.Tsumo)
	return sd, true
}

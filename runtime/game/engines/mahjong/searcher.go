package mahjong

import (
	"github.com/e0087/matiate/common/cache"
)

type Hand34 [NumTileTypes]uint8

// Searcher 和牌与听牌搜索，结果按 34 计数 + 副露数 缓存
type Searcher struct {
	agariCache *cache.GeneralCache[bool]       // 和牌缓存
	waitsCache *cache.GeneralCache[[]TileType] // 听牌缓存
}

// NewSearcher 缓存可以为 nil，此时每次都重新搜索
func NewSearcher(agari *cache.GeneralCache[bool], waits *cache.GeneralCache[[]TileType]) *Searcher {
	return &Searcher{
		agariCache: agari,
		waitsCache: waits,
	}
}

// Waits 枚举听牌。fixedMelds 为暗杠数；held 为含暗杠在内的持有数，已持有 4 张的牌不算听牌
func (s *Searcher) Waits(h13 Hand34, fixedMelds int, held Hand34) []TileType {
	key := h13.keyWithFixedMelds(fixedMelds) + held.keyWithFixedMelds(0)
	if s.waitsCache != nil {
		if v, ok := s.waitsCache.Get(key); ok {
			return append([]TileType(nil), v...)
		}
	}

	var waits []TileType
	for t := 0; t < NumTileTypes; t++ {
		if held[t] >= 4 {
			continue
		}
		work := h13
		work[t]++
		if s.IsAgariAll(work, fixedMelds) {
			waits = append(waits, TileType(t))
		}
	}

	if s.waitsCache != nil {
		s.waitsCache.Set(key, append([]TileType(nil), waits...))
	}
	return waits
}

// IsAgariAll 是否和牌，有暗杠时只看一般形
func (s *Searcher) IsAgariAll(h Hand34, fixedMelds int) bool {
	key := h.keyWithFixedMelds(fixedMelds)
	if s.agariCache != nil {
		if v, ok := s.agariCache.Get(key); ok {
			return v
		}
	}

	var ok bool
	if fixedMelds > 0 {
		ok = IsAgariNormal(h, fixedMelds)
	} else {
		ok = IsAgariNormal(h, 0) || IsAgariChiitoi(h) || IsAgariKokushi(h)
	}

	if s.agariCache != nil {
		s.agariCache.Set(key, ok)
	}
	return ok
}

// IsAgariNormal 普通牌型是否和牌，核心思想，找雀头、组面子
func IsAgariNormal(h Hand34, fixedMelds int) bool {
	need := 4 - fixedMelds // 需要组成的面子数
	if need < 0 {
		return false
	}
	if h.Total() != need*3+2 {
		return false
	}

	for j := 0; j < NumTileTypes; j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(&work, need) {
			return true
		}
	}
	return false
}

// IsAgariChiitoi 七对子是否和牌，七个对子必须互不相同
func IsAgariChiitoi(h Hand34) bool {
	pairs := 0
	for i := 0; i < NumTileTypes; i++ {
		switch h[i] {
		case 0:
		case 2:
			pairs++
		default:
			return false
		}
	}
	return pairs == 7
}

// IsAgariKokushi 国士无双是否和牌
func IsAgariKokushi(h Hand34) bool {
	if h.Total() != 14 {
		return false
	}
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] == 2 {
				pair = true
			}
		}
	}
	return unique == 13 && pair
}

func canFormMelds(h *Hand34, need int) bool {
	if need == 0 {
		for i := 0; i < NumTileTypes; i++ {
			if (*h)[i] != 0 {
				return false
			}
		}
		return true
	}

	// 找第一个非 0
	i := h.firstNonZero()
	if i == -1 {
		return false
	}
	// 刻子
	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		ok := canFormMelds(h, need-1)
		(*h)[i] += 3
		if ok {
			return true
		}
	}
	// 顺子（仅数牌）
	if canRunFrom(h, i) {
		takeRun(h, i, -1)
		ok := canFormMelds(h, need-1)
		takeRun(h, i, 1)
		if ok {
			return true
		}
	}

	return false
}

func canRunFrom(h *Hand34, i int) bool {
	tt := TileType(i)
	if !tt.IsNumbered() || tt.Rank() > 7 {
		return false
	}
	return (*h)[i] > 0 && (*h)[i+1] > 0 && (*h)[i+2] > 0
}

// takeRun delta 为 -1 时取出顺子，为 1 时放回
func takeRun(h *Hand34, i int, delta int) {
	for k := 0; k < 3; k++ {
		(*h)[i+k] = uint8(int((*h)[i+k]) + delta)
	}
}

// -------------- 基础工具：转换与 key --------------

func Hand34FromTiles(tiles []Tile) (Hand34, map[TileType][]Tile) {
	var h Hand34
	opts := make(map[TileType][]Tile, NumTileTypes)
	for _, t := range tiles {
		h[int(t.Type)]++
		opts[t.Type] = append(opts[t.Type], t)
	}
	return h, opts
}

func (h Hand34) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

func (h *Hand34) firstNonZero() int {
	for k := 0; k < NumTileTypes; k++ {
		if (*h)[k] > 0 {
			return k
		}
	}
	return -1
}

func (h Hand34) keyWithFixedMelds(fixedMelds int) string {
	var b [NumTileTypes + 1]byte
	for i := 0; i < NumTileTypes; i++ {
		b[i] = byte(h[i])
	}
	b[NumTileTypes] = byte(fixedMelds)
	return string(b[:])
}

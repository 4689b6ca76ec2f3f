package mahjong

import "fmt"

// Hand 手牌：门内牌 + 暗杠。暗杠按 3 张计入手牌大小
type Hand struct {
	Concealed []Tile
	Kans      []Tile // 每个元素代表一组暗杠，Red 表示其中含赤 5
}

// NewHand 校验并构造手牌，大小必须是 13（听牌）或 14（和了）
func NewHand(concealed []Tile, kans []Tile) (*Hand, error) {
	h := &Hand{
		Concealed: append([]Tile(nil), concealed...),
		Kans:      append([]Tile(nil), kans...),
	}
	SortTiles(h.Concealed)
	if err := h.validate(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hand) validate() error {
	if len(h.Kans) > 4 {
		return fmt.Errorf("%w: %w: %d kans", ErrMalformedEncoding, ErrHandSize, len(h.Kans))
	}
	if size := h.Size(); size != 13 && size != 14 {
		return fmt.Errorf("%w: %w: got %d", ErrMalformedEncoding, ErrHandSize, size)
	}
	held := h.HeldCounts()
	for i, c := range held {
		if c > 4 {
			return fmt.Errorf("%w: %w: %s x%d", ErrMalformedEncoding, ErrTileOverflow, TileType(i), c)
		}
	}
	reds := [3]int{}
	for _, t := range h.Concealed {
		if t.IsRedFive() {
			reds[t.Type.Suit()]++
		}
	}
	for _, k := range h.Kans {
		if k.IsRedFive() {
			reds[k.Type.Suit()]++
		}
	}
	for s, n := range reds {
		if n > 1 {
			return fmt.Errorf("%w: %w: %d red fives of %s", ErrMalformedEncoding, ErrTileOverflow, n, Suit(s))
		}
	}
	return nil
}

// Size 门内牌数 + 3×暗杠数
func (h *Hand) Size() int {
	return len(h.Concealed) + 3*len(h.Kans)
}

// Counts 门内牌计数
func (h *Hand) Counts() Hand34 {
	h34, _ := Hand34FromTiles(h.Concealed)
	return h34
}

// HeldCounts 门内牌 + 暗杠（每组 4 张）的计数
func (h *Hand) HeldCounts() Hand34 {
	h34 := h.Counts()
	for _, k := range h.Kans {
		h34[k.Type] += 4
	}
	return h34
}

func (h *Hand) Encode() string {
	return EncodeHand(h.Concealed, h.Kans)
}

func (h *Hand) String() string {
	return h.Encode()
}

// With 返回加入一张牌后的新手牌
func (h *Hand) With(t Tile) *Hand {
	out := h.Clone()
	out.Concealed = append(out.Concealed, t)
	SortTiles(out.Concealed)
	return out
}

// Without 返回移除第 idx 张门内牌后的新手牌
func (h *Hand) Without(idx int) *Hand {
	out := h.Clone()
	out.Concealed = append(out.Concealed[:idx], out.Concealed[idx+1:]...)
	return out
}

func (h *Hand) Clone() *Hand {
	return &Hand{
		Concealed: append([]Tile(nil), h.Concealed...),
		Kans:      append([]Tile(nil), h.Kans...),
	}
}

// AllTiles 门内牌 + 暗杠展开后的全部实体牌
func (h *Hand) AllTiles() []Tile {
	out := append([]Tile(nil), h.Concealed...)
	for _, k := range h.Kans {
		out = append(out, NewTile(k.Type), NewTile(k.Type), NewTile(k.Type), k)
	}
	return out
}

// ParseHand 解析手牌编码并校验
func ParseHand(encoding string) (*Hand, error) {
	concealed, kans, err := DecodeHand(encoding)
	if err != nil {
		return nil, err
	}
	return NewHand(concealed, kans)
}

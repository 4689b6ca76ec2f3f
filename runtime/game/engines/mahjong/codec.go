package mahjong

import (
	"fmt"
	"sort"
	"strings"
)

// 牌码：花色字母 + 点数，赤 5 记作 0，例如 m5、m0、z7
// 手牌编码：m/p/s/z 顺序逐组拼接，暗杠跟在逗号后，例如 m123p406z11,s1111

var suitLetters = [4]byte{'m', 'p', 's', 'z'}

func suitFromLetter(c byte) (Suit, bool) {
	switch c {
	case 'm':
		return SuitMan, true
	case 'p':
		return SuitPin, true
	case 's':
		return SuitSou, true
	case 'z':
		return SuitHonor, true
	default:
		return 0, false
	}
}

func (s Suit) Letter() byte {
	return suitLetters[s]
}

func (s Suit) String() string {
	switch s {
	case SuitMan:
		return "Man"
	case SuitPin:
		return "Pin"
	case SuitSou:
		return "Sou"
	default:
		return "Honor"
	}
}

func (t Tile) digit() byte {
	if t.IsRedFive() {
		return '0'
	}
	return byte('0' + t.Type.Rank())
}

// Code 牌码
func (t Tile) Code() string {
	return string([]byte{t.Type.Suit().Letter(), t.digit()})
}

func (t Tile) String() string {
	return t.Code()
}

func (t TileType) String() string {
	return NewTile(t).Code()
}

// EngineCode 求值器使用的单牌编码，例如 m_5、m_0
func (t Tile) EngineCode() string {
	return string([]byte{t.Type.Suit().Letter(), '_', t.digit()})
}

func tileFromDigit(s Suit, d byte) (Tile, error) {
	if d < '0' || d > '9' {
		return Tile{}, fmt.Errorf("%w: bad rank %q", ErrMalformedEncoding, d)
	}
	if d == '0' {
		if s == SuitHonor {
			return Tile{}, fmt.Errorf("%w: honor tile cannot be red", ErrMalformedEncoding)
		}
		tt, _ := TileOf(s, 5)
		return NewRedFive(tt), nil
	}
	tt, ok := TileOf(s, int(d-'0'))
	if !ok {
		return Tile{}, fmt.Errorf("%w: rank %c out of range for %s", ErrMalformedEncoding, d, s)
	}
	return NewTile(tt), nil
}

// ParseTile 解析牌码
func ParseTile(code string) (Tile, error) {
	if len(code) != 2 {
		return Tile{}, fmt.Errorf("%w: tile code %q", ErrMalformedEncoding, code)
	}
	s, ok := suitFromLetter(code[0])
	if !ok {
		return Tile{}, fmt.Errorf("%w: tile code %q", ErrMalformedEncoding, code)
	}
	return tileFromDigit(s, code[1])
}

// ParseEngineTile 解析求值器单牌编码
func ParseEngineTile(code string) (Tile, error) {
	if len(code) != 3 || code[1] != '_' {
		return Tile{}, fmt.Errorf("%w: engine tile %q", ErrMalformedEncoding, code)
	}
	return ParseTile(code[:1] + code[2:])
}

// ToEngineCode 牌码 → 求值器编码
func ToEngineCode(code string) (string, error) {
	t, err := ParseTile(code)
	if err != nil {
		return "", err
	}
	return t.EngineCode(), nil
}

// FromEngineCode 求值器编码 → 牌码
func FromEngineCode(engineCode string) (string, error) {
	t, err := ParseEngineTile(engineCode)
	if err != nil {
		return "", err
	}
	return t.Code(), nil
}

// SortTiles 按牌种排序，同种时赤牌在前
func SortTiles(tiles []Tile) {
	sort.SliceStable(tiles, func(i, j int) bool {
		if tiles[i].Type != tiles[j].Type {
			return tiles[i].Type < tiles[j].Type
		}
		return tiles[i].Red && !tiles[j].Red
	})
}

func encodeGroups(tiles []Tile) string {
	sorted := append([]Tile(nil), tiles...)
	SortTiles(sorted)

	var b strings.Builder
	for s := SuitMan; s <= SuitHonor; s++ {
		started := false
		for _, t := range sorted {
			if t.Type.Suit() != s {
				continue
			}
			if !started {
				b.WriteByte(s.Letter())
				started = true
			}
			b.WriteByte(t.digit())
		}
	}
	return b.String()
}

// EncodeHand 手牌编码
func EncodeHand(concealed []Tile, kans []Tile) string {
	var b strings.Builder
	b.WriteString(encodeGroups(concealed))
	for _, k := range kans {
		b.WriteByte(',')
		quad := []Tile{NewTile(k.Type), NewTile(k.Type), NewTile(k.Type), k}
		b.WriteString(encodeGroups(quad))
	}
	return b.String()
}

func decodeGroups(part string) ([]Tile, error) {
	var out []Tile
	suit := Suit(-1)
	for i := 0; i < len(part); i++ {
		c := part[i]
		if s, ok := suitFromLetter(c); ok {
			if i+1 >= len(part) || !isDigit(part[i+1]) {
				return nil, fmt.Errorf("%w: suit %c has no ranks", ErrMalformedEncoding, c)
			}
			suit = s
			continue
		}
		if suit < 0 {
			return nil, fmt.Errorf("%w: rank before suit in %q", ErrMalformedEncoding, part)
		}
		t, err := tileFromDigit(suit, c)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// DecodeHand 解析手牌编码，返回门内牌与暗杠
func DecodeHand(encoding string) ([]Tile, []Tile, error) {
	parts := strings.Split(strings.TrimSpace(encoding), ",")
	concealed, err := decodeGroups(parts[0])
	if err != nil {
		return nil, nil, err
	}

	var kans []Tile
	for _, part := range parts[1:] {
		quad, err := decodeGroups(part)
		if err != nil {
			return nil, nil, err
		}
		if len(quad) != 4 {
			return nil, nil, fmt.Errorf("%w: kan %q must have 4 tiles", ErrMalformedEncoding, part)
		}
		kan := quad[0]
		for _, t := range quad[1:] {
			if !t.Same(kan) {
				return nil, nil, fmt.Errorf("%w: kan %q mixes tiles", ErrMalformedEncoding, part)
			}
			kan.Red = kan.Red || t.Red
		}
		kans = append(kans, kan)
	}
	return concealed, kans, nil
}

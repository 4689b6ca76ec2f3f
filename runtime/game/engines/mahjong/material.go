package mahjong

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

// NumTileTypes 牌种数量
const NumTileTypes = 34

// Suit 花色，对应 A/B/C 三种数牌与字牌
type Suit int

const (
	SuitMan Suit = iota
	SuitPin
	SuitSou
	SuitHonor
)

// Tile 一张牌。相等性只看 Type，Red 只影响显示和宝牌计数
type Tile struct {
	Type TileType
	Red  bool // 赤 5
}

func NewTile(tt TileType) Tile {
	return Tile{Type: tt}
}

// NewRedFive 赤 5，非数牌 5 时返回普通牌
func NewRedFive(tt TileType) Tile {
	return Tile{Type: tt, Red: tt.IsFive()}
}

// TileOf 由花色和点数构造牌种，honor 的点数为 1-7
func TileOf(s Suit, rank int) (TileType, bool) {
	if s == SuitHonor {
		if rank < 1 || rank > 7 {
			return 0, false
		}
		return East + TileType(rank-1), true
	}
	if s < SuitMan || s > SuitSou || rank < 1 || rank > 9 {
		return 0, false
	}
	return TileType(int(s)*9 + rank - 1), true
}

func (t TileType) Valid() bool {
	return t >= Man1 && t <= Red
}

func (t TileType) Suit() Suit {
	switch {
	case t >= Man1 && t <= Man9:
		return SuitMan
	case t >= Pin1 && t <= Pin9:
		return SuitPin
	case t >= So1 && t <= So9:
		return SuitSou
	default:
		return SuitHonor
	}
}

// Rank 数牌 1-9，字牌 1-7（东南西北白发中）
func (t TileType) Rank() int {
	if t.IsHonor() {
		return int(t-East) + 1
	}
	return int(t)%9 + 1
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsWind() bool {
	return t >= East && t <= North
}

func (t TileType) IsDragon() bool {
	return t >= White && t <= Red
}

func (t TileType) IsFive() bool {
	return t == Man5 || t == Pin5 || t == So5
}

// IsTerminal 数牌的 1、9
func (t TileType) IsTerminal() bool {
	return t.IsNumbered() && (t.Rank() == 1 || t.Rank() == 9)
}

// IsYaochu 幺九牌（1、9、字牌）
func (t TileType) IsYaochu() bool {
	return t.IsHonor() || t.IsTerminal()
}

// DoraFrom 指示牌的下一张即宝牌：9→1、北→东、中→白
func (t TileType) DoraFrom() TileType {
	switch {
	case t.IsNumbered():
		if t.Rank() == 9 {
			return t - 8
		}
		return t + 1
	case t.IsWind():
		if t == North {
			return East
		}
		return t + 1
	default:
		if t == Red {
			return White
		}
		return t + 1
	}
}

// Same 判断两张牌是否同种（赤牌与普通牌视为相同）
func (t Tile) Same(o Tile) bool {
	return t.Type == o.Type
}

// IsRedFive 判断是否为赤宝牌
func (t Tile) IsRedFive() bool {
	return t.Red && t.Type.IsFive()
}

func (w Wind) Valid() bool {
	return w >= WindEast && w <= WindNorth
}

// TileType 风对应的字牌
func (w Wind) TileType() TileType {
	return East + TileType(w)
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "东"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}

var kokushiTiles = [13]TileType{
	Man1, Man9,
	Pin1, Pin9,
	So1, So9,
	East, South, West, North,
	White, Green, Red,
}

// KokushiTileTypes 十三种幺九牌
func KokushiTileTypes() []TileType {
	out := make([]TileType, len(kokushiTiles))
	copy(out, kokushiTiles[:])
	return out
}

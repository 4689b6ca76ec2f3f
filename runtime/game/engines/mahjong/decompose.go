package mahjong

// GroupKind 拆解后的一组牌
type GroupKind int

const (
	GroupSequence GroupKind = iota // 顺子
	GroupTriplet                   // 刻子
	GroupQuad                      // 杠子（本项目只有暗杠）
	GroupPair                      // 雀头 / 七对子的对子
)

// WaitShape 听牌形式
type WaitShape int

const (
	WaitRyanmen WaitShape = iota // 两面
	WaitKanchan                  // 嵌张
	WaitPenchan                  // 边张
	WaitShanpon                  // 双碰
	WaitTanki                    // 单骑
	WaitKokushi13                // 国士十三面
)

// HandForm 和牌型
type HandForm int

const (
	FormStandard HandForm = iota // 4 面子 1 雀头
	FormChiitoi                  // 七对子
	FormKokushi                  // 国士无双
)

// Group Tile 为顺子的首张或刻子/对子的牌种
type Group struct {
	Kind      GroupKind
	Tile      TileType
	Concealed bool
}

// Contains 组内是否含有该牌种
func (g Group) Contains(t TileType) bool {
	if g.Kind == GroupSequence {
		return t >= g.Tile && t <= g.Tile+2
	}
	return g.Tile == t
}

// HasYaochu 组内是否含幺九牌
func (g Group) HasYaochu() bool {
	if g.Kind == GroupSequence {
		return g.Tile.IsTerminal() || (g.Tile + 2).IsTerminal()
	}
	return g.Tile.IsYaochu()
}

// Decomposition 一种和牌拆解。一般形 Groups 为 4 个面子 + 雀头（最后一个）
type Decomposition struct {
	Form     HandForm
	Groups   []Group
	Wait     WaitShape
	WinGroup int // 和了牌所在组的下标，国士为 -1
}

// Pair 雀头，七对子和国士返回 false
func (d *Decomposition) Pair() (TileType, bool) {
	if d.Form != FormStandard {
		return 0, false
	}
	return d.Groups[len(d.Groups)-1].Tile, true
}

func (d *Decomposition) count(kind GroupKind) int {
	n := 0
	for _, g := range d.Groups {
		if g.Kind == kind {
			n++
		}
	}
	return n
}

// concealedTriplets 暗刻（含暗杠）数
func (d *Decomposition) concealedTriplets() int {
	n := 0
	for _, g := range d.Groups {
		if (g.Kind == GroupTriplet || g.Kind == GroupQuad) && g.Concealed {
			n++
		}
	}
	return n
}

// decompose 枚举 14 张牌（门内 + 和了牌，暗杠另计）的全部拆解
// 同一拆解中和了牌落在不同的组时分别作为不同的拆解返回
func decompose(h14 Hand34, kans []Tile, win TileType, tsumo bool, waitsBefore Hand34) []Decomposition {
	var out []Decomposition

	need := 4 - len(kans)
	if IsAgariNormal(h14, len(kans)) {
		for j := 0; j < NumTileTypes; j++ {
			if h14[j] < 2 {
				continue
			}
			work := h14
			work[j] -= 2
			var found [][]Group
			collectMelds(&work, need, nil, &found)
			for _, melds := range found {
				groups := make([]Group, 0, 5)
				groups = append(groups, melds...)
				for _, k := range kans {
					groups = append(groups, Group{Kind: GroupQuad, Tile: k.Type, Concealed: true})
				}
				groups = append(groups, Group{Kind: GroupPair, Tile: TileType(j), Concealed: true})
				out = append(out, placeWinTile(groups, win, tsumo)...)
			}
		}
	}

	if len(kans) == 0 && IsAgariChiitoi(h14) {
		groups := make([]Group, 0, 7)
		winIdx := 0
		for i := 0; i < NumTileTypes; i++ {
			if h14[i] == 2 {
				if TileType(i) == win {
					winIdx = len(groups)
				}
				groups = append(groups, Group{Kind: GroupPair, Tile: TileType(i), Concealed: true})
			}
		}
		out = append(out, Decomposition{Form: FormChiitoi, Groups: groups, Wait: WaitTanki, WinGroup: winIdx})
	}

	if len(kans) == 0 && IsAgariKokushi(h14) {
		wait := WaitTanki
		unique := 0
		for _, t := range kokushiTiles {
			if waitsBefore[t] == 1 {
				unique++
			}
		}
		if unique == 13 {
			wait = WaitKokushi13
		}
		out = append(out, Decomposition{Form: FormKokushi, Wait: wait, WinGroup: -1})
	}
	return out
}

// collectMelds 按首个非零牌种递归，保证每种面子组合只出现一次
func collectMelds(h *Hand34, need int, cur []Group, out *[][]Group) {
	if need == 0 {
		if h.firstNonZero() == -1 {
			*out = append(*out, append([]Group(nil), cur...))
		}
		return
	}
	i := h.firstNonZero()
	if i == -1 {
		return
	}
	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		collectMelds(h, need-1, append(cur, Group{Kind: GroupTriplet, Tile: TileType(i), Concealed: true}), out)
		(*h)[i] += 3
	}
	if canRunFrom(h, i) {
		takeRun(h, i, -1)
		collectMelds(h, need-1, append(cur, Group{Kind: GroupSequence, Tile: TileType(i), Concealed: true}), out)
		takeRun(h, i, 1)
	}
}

// placeWinTile 和了牌可能属于的每个组各产生一种听牌形式
func placeWinTile(groups []Group, win TileType, tsumo bool) []Decomposition {
	var out []Decomposition
	seen := make(map[[3]int]bool)
	for idx, g := range groups {
		if g.Kind == GroupQuad || !g.Contains(win) {
			continue
		}
		var wait WaitShape
		switch g.Kind {
		case GroupPair:
			wait = WaitTanki
		case GroupTriplet:
			wait = WaitShanpon
		default:
			wait = sequenceWait(g.Tile, win)
		}
		key := [3]int{int(g.Kind), int(g.Tile), int(wait)}
		if seen[key] {
			continue
		}
		seen[key] = true

		d := Decomposition{
			Form:     FormStandard,
			Groups:   append([]Group(nil), groups...),
			Wait:     wait,
			WinGroup: idx,
		}
		// 荣和双碰时该刻子视为明刻
		if wait == WaitShanpon && !tsumo {
			d.Groups[idx].Concealed = false
		}
		out = append(out, d)
	}
	return out
}

func sequenceWait(start, win TileType) WaitShape {
	switch win - start {
	case 1:
		return WaitKanchan
	case 0:
		if start.Rank() == 7 {
			return WaitPenchan
		}
		return WaitRyanmen
	default:
		if start.Rank() == 1 {
			return WaitPenchan
		}
		return WaitRyanmen
	}
}

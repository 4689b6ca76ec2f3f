package mahjong

// Yaku 役种（和牌方式）
type Yaku int

// 役种常量定义
const (
	// 基本役
	YakuRiichi Yaku = iota // 立直
	YakuTsumo              // 门前清自摸和

	// 平和系
	YakuPinfu     // 平和：4顺子+非役牌雀头，两面听牌
	YakuIppeiko   // 一杯口：同种花色、同种顺子有两组
	YakuRyanpeiko // 二杯口：手牌中有两个不同的一杯口

	// 役牌系
	YakuHaku      // 役牌 白
	YakuHatsu     // 役牌 发
	YakuChun      // 役牌 中
	YakuSeatWind  // 自风
	YakuRoundWind // 场风

	// 断幺系
	YakuTanyao // 断幺九：手牌全部由数牌2-8组成

	// 顺子系
	YakuSanshoku // 三色同顺：相同顺子在三种花色中都出现
	YakuIttsu    // 一气通贯：同种花色有123、456、789三个顺子

	// 带幺系
	YakuChanta  // 混全带幺九：所有面子都包含幺九牌
	YakuJunchan // 纯全带幺九：所有面子都包含数牌幺九(1、9)

	// 老头系
	YakuHonroto // 混老头：全部由幺九牌(1、9、字牌)组成

	// 三元系
	YakuShousangen // 小三元：两组三元牌刻子 + 三元牌雀头

	// 清一色系
	YakuHonitsu  // 混一色：一种花色+字牌
	YakuChinitsu // 清一色：同一种花色(无字牌)

	// 刻子系
	YakuToitoi    // 对对和：4个刻子(杠子)+1个对子
	YakuSananko   // 三暗刻：手牌中有3个暗刻
	YakuSankantsu // 三杠子：手牌中有3个杠子

	// 特殊型
	YakuChiitoi // 七对子：7个不同的对子

	// 役满役种
	YakuKokushi       // 国士无双
	YakuKokushi13     // 国士十三面（双倍）
	YakuSuuankou      // 四暗刻
	YakuSuuankouTanki // 四暗刻单骑（双倍）
	YakuDaisangen     // 大三元
	YakuShousushi     // 小四喜
	YakuDaisushi      // 大四喜（双倍）
	YakuTsuuiisou     // 字一色
	YakuChinroto      // 清老头
	YakuRyuuiisou     // 绿一色
	YakuChuuren       // 九莲宝灯
	YakuJunseiChuuren // 纯正九莲宝灯（双倍）
	YakuSuukantsu     // 四杠子

	// 宝牌，不算役
	YakuDora    // 宝牌
	YakuAkaDora // 赤宝牌
	YakuUraDora // 里宝牌
)

var yakuNames = map[Yaku]string{
	YakuRiichi:        "立直",
	YakuTsumo:         "门前清自摸和",
	YakuPinfu:         "平和",
	YakuIppeiko:       "一杯口",
	YakuRyanpeiko:     "二杯口",
	YakuHaku:          "役牌 白",
	YakuHatsu:         "役牌 发",
	YakuChun:          "役牌 中",
	YakuSeatWind:      "自风",
	YakuRoundWind:     "场风",
	YakuTanyao:        "断幺九",
	YakuSanshoku:      "三色同顺",
	YakuIttsu:         "一气通贯",
	YakuChanta:        "混全带幺九",
	YakuJunchan:       "纯全带幺九",
	YakuHonroto:       "混老头",
	YakuShousangen:    "小三元",
	YakuHonitsu:       "混一色",
	YakuChinitsu:      "清一色",
	YakuToitoi:        "对对和",
	YakuSananko:       "三暗刻",
	YakuSankantsu:     "三杠子",
	YakuChiitoi:       "七对子",
	YakuKokushi:       "国士无双",
	YakuKokushi13:     "国士无双十三面",
	YakuSuuankou:      "四暗刻",
	YakuSuuankouTanki: "四暗刻单骑",
	YakuDaisangen:     "大三元",
	YakuShousushi:     "小四喜",
	YakuDaisushi:      "大四喜",
	YakuTsuuiisou:     "字一色",
	YakuChinroto:      "清老头",
	YakuRyuuiisou:     "绿一色",
	YakuChuuren:       "九莲宝灯",
	YakuJunseiChuuren: "纯正九莲宝灯",
	YakuSuukantsu:     "四杠子",
	YakuDora:          "宝牌",
	YakuAkaDora:       "赤宝牌",
	YakuUraDora:       "里宝牌",
}

func (y Yaku) String() string {
	if name, ok := yakuNames[y]; ok {
		return name
	}
	return "未知役"
}

// YakuResult 一个计分项。役满时 Han 为 0，Yakuman 为倍数
type YakuResult struct {
	Yaku    Yaku
	Name    string
	Han     int
	Yakuman int
}

// YakuContext 判役所需的全部信息，同一个和了对每种拆解各建一份
type YakuContext struct {
	Decomp *Decomposition
	Counts Hand34 // 14 张 + 暗杠第 4 张
	Before Hand34 // 和了前的门内 13 张
	Kans   int
	Win    Win
	Table  TableContext
}

type YakuChecker interface {
	ID() Yaku
	Check(ctx *YakuContext) (int, int)
}

type yakuCheckerFunc struct {
	id    Yaku
	check func(ctx *YakuContext) (int, int)
}

func (f yakuCheckerFunc) ID() Yaku { return f.id }

func (f yakuCheckerFunc) Check(ctx *YakuContext) (int, int) { return f.check(ctx) }

func han(n int, ok bool) (int, int) {
	if ok {
		return n, 0
	}
	return 0, 0
}

func yakuman(mult int, ok bool) (int, int) {
	if ok {
		return 0, mult
	}
	return 0, 0
}

// YakumanRegistry 役满，有任意一个成立时不再看普通役与宝牌
var YakumanRegistry = []YakuChecker{
	yakuCheckerFunc{id: YakuKokushi13, check: func(ctx *YakuContext) (int, int) {
		return yakuman(2, ctx.Decomp.Form == FormKokushi && ctx.Decomp.Wait == WaitKokushi13)
	}},
	yakuCheckerFunc{id: YakuKokushi, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.Decomp.Form == FormKokushi && ctx.Decomp.Wait != WaitKokushi13)
	}},
	yakuCheckerFunc{id: YakuSuuankouTanki, check: func(ctx *YakuContext) (int, int) {
		return yakuman(2, ctx.Decomp.Form == FormStandard && ctx.Decomp.concealedTriplets() == 4 && ctx.Decomp.Wait == WaitTanki)
	}},
	yakuCheckerFunc{id: YakuSuuankou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.Decomp.Form == FormStandard && ctx.Decomp.concealedTriplets() == 4 && ctx.Decomp.Wait != WaitTanki)
	}},
	yakuCheckerFunc{id: YakuDaisangen, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.tripletsWhere(TileType.IsDragon) == 3)
	}},
	yakuCheckerFunc{id: YakuDaisushi, check: func(ctx *YakuContext) (int, int) {
		return yakuman(2, ctx.tripletsWhere(TileType.IsWind) == 4)
	}},
	yakuCheckerFunc{id: YakuShousushi, check: func(ctx *YakuContext) (int, int) {
		pair, ok := ctx.Decomp.Pair()
		return yakuman(1, ok && pair.IsWind() && ctx.tripletsWhere(TileType.IsWind) == 3)
	}},
	yakuCheckerFunc{id: YakuTsuuiisou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.all(TileType.IsHonor))
	}},
	yakuCheckerFunc{id: YakuChinroto, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.all(TileType.IsTerminal))
	}},
	yakuCheckerFunc{id: YakuRyuuiisou, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.all(isGreen))
	}},
	yakuCheckerFunc{id: YakuJunseiChuuren, check: func(ctx *YakuContext) (int, int) {
		return yakuman(2, ctx.chuuren() && isChuurenBase(ctx.Before))
	}},
	yakuCheckerFunc{id: YakuChuuren, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.chuuren() && !isChuurenBase(ctx.Before))
	}},
	yakuCheckerFunc{id: YakuSuukantsu, check: func(ctx *YakuContext) (int, int) {
		return yakuman(1, ctx.Kans == 4)
	}},
}

// YakuRegistry 普通役，手牌全部门清，番数按门清计
var YakuRegistry = []YakuChecker{
	// 基本役
	yakuCheckerFunc{id: YakuRiichi, check: func(ctx *YakuContext) (int, int) { return han(1, ctx.Table.Riichi) }},
	yakuCheckerFunc{id: YakuTsumo, check: func(ctx *YakuContext) (int, int) { return han(1, ctx.Win.Tsumo) }},

	// 平和系
	yakuCheckerFunc{id: YakuPinfu, check: func(ctx *YakuContext) (int, int) { return han(1, ctx.isPinfu()) }},
	yakuCheckerFunc{id: YakuIppeiko, check: func(ctx *YakuContext) (int, int) { return han(1, ctx.peikou() == 1) }},
	yakuCheckerFunc{id: YakuRyanpeiko, check: func(ctx *YakuContext) (int, int) { return han(3, ctx.peikou() == 2) }},

	// 役牌系
	yakuCheckerFunc{id: YakuHaku, check: func(ctx *YakuContext) (int, int) { return han(1, ctx.hasTriplet(White)) }},
	yakuCheckerFunc{id: YakuHatsu, check: func(ctx *YakuContext) (int, int) { return han(1, ctx.hasTriplet(Green)) }},
	yakuCheckerFunc{id: YakuChun, check: func(ctx *YakuContext) (int, int) { return han(1, ctx.hasTriplet(Red)) }},
	yakuCheckerFunc{id: YakuSeatWind, check: func(ctx *YakuContext) (int, int) {
		return han(1, ctx.hasTriplet(ctx.Table.SeatWind.TileType()))
	}},
	yakuCheckerFunc{id: YakuRoundWind, check: func(ctx *YakuContext) (int, int) {
		return han(1, ctx.hasTriplet(ctx.Table.RoundWind.TileType()))
	}},

	// 断幺系
	yakuCheckerFunc{id: YakuTanyao, check: func(ctx *YakuContext) (int, int) {
		return han(1, ctx.all(func(t TileType) bool { return !t.IsYaochu() }))
	}},

	// 顺子系
	yakuCheckerFunc{id: YakuSanshoku, check: func(ctx *YakuContext) (int, int) { return han(2, ctx.sanshoku()) }},
	yakuCheckerFunc{id: YakuIttsu, check: func(ctx *YakuContext) (int, int) { return han(2, ctx.ittsu()) }},

	// 带幺系
	yakuCheckerFunc{id: YakuChanta, check: func(ctx *YakuContext) (int, int) {
		return han(2, ctx.allGroupsYaochu() && ctx.any(TileType.IsHonor))
	}},
	yakuCheckerFunc{id: YakuJunchan, check: func(ctx *YakuContext) (int, int) {
		return han(3, ctx.allGroupsYaochu() && !ctx.any(TileType.IsHonor))
	}},

	// 老头系
	yakuCheckerFunc{id: YakuHonroto, check: func(ctx *YakuContext) (int, int) {
		return han(2, ctx.Decomp.Form != FormKokushi && ctx.all(TileType.IsYaochu))
	}},
	yakuCheckerFunc{id: YakuShousangen, check: func(ctx *YakuContext) (int, int) {
		pair, ok := ctx.Decomp.Pair()
		return han(2, ok && pair.IsDragon() && ctx.tripletsWhere(TileType.IsDragon) == 2)
	}},

	// 清一色系
	yakuCheckerFunc{id: YakuHonitsu, check: func(ctx *YakuContext) (int, int) {
		return han(3, ctx.numberedSuits() == 1 && ctx.any(TileType.IsHonor))
	}},
	yakuCheckerFunc{id: YakuChinitsu, check: func(ctx *YakuContext) (int, int) {
		return han(6, ctx.numberedSuits() == 1 && !ctx.any(TileType.IsHonor))
	}},

	// 刻子系
	yakuCheckerFunc{id: YakuToitoi, check: func(ctx *YakuContext) (int, int) {
		return han(2, ctx.Decomp.Form == FormStandard && ctx.Decomp.count(GroupSequence) == 0)
	}},
	yakuCheckerFunc{id: YakuSananko, check: func(ctx *YakuContext) (int, int) {
		return han(2, ctx.Decomp.concealedTriplets() == 3)
	}},
	yakuCheckerFunc{id: YakuSankantsu, check: func(ctx *YakuContext) (int, int) { return han(2, ctx.Kans == 3) }},

	// 特殊型
	yakuCheckerFunc{id: YakuChiitoi, check: func(ctx *YakuContext) (int, int) {
		return han(2, ctx.Decomp.Form == FormChiitoi)
	}},
}

// EvalYaku 判役。役满成立时只返回役满；没有役时返回 nil
func EvalYaku(ctx *YakuContext) []YakuResult {
	var results []YakuResult
	for _, checker := range YakumanRegistry {
		if _, mult := checker.Check(ctx); mult > 0 {
			results = append(results, YakuResult{Yaku: checker.ID(), Name: checker.ID().String(), Yakuman: mult})
		}
	}
	if len(results) > 0 {
		return results
	}

	for _, checker := range YakuRegistry {
		if n, _ := checker.Check(ctx); n > 0 {
			results = append(results, YakuResult{Yaku: checker.ID(), Name: checker.ID().String(), Han: n})
		}
	}
	return results
}

// EvalDora 宝牌、赤宝牌、里宝牌（仅立直时），只在已经有役时调用
func EvalDora(tiles []Tile, table TableContext) []YakuResult {
	var results []YakuResult
	add := func(y Yaku, n int) {
		if n > 0 {
			results = append(results, YakuResult{Yaku: y, Name: y.String(), Han: n})
		}
	}
	add(YakuDora, countDora(tiles, table.DoraIndicators))
	red := 0
	for _, t := range tiles {
		if t.IsRedFive() {
			red++
		}
	}
	add(YakuAkaDora, red)
	if table.Riichi {
		add(YakuUraDora, countDora(tiles, table.UraDoraIndicators))
	}
	return results
}

func countDora(tiles []Tile, indicators []Tile) int {
	n := 0
	for _, ind := range indicators {
		dora := ind.Type.DoraFrom()
		for _, t := range tiles {
			if t.Type == dora {
				n++
			}
		}
	}
	return n
}

// -------------- 判役工具 --------------

func (ctx *YakuContext) all(pred func(TileType) bool) bool {
	for i, c := range ctx.Counts {
		if c > 0 && !pred(TileType(i)) {
			return false
		}
	}
	return true
}

func (ctx *YakuContext) any(pred func(TileType) bool) bool {
	for i, c := range ctx.Counts {
		if c > 0 && pred(TileType(i)) {
			return true
		}
	}
	return false
}

func (ctx *YakuContext) numberedSuits() int {
	var seen [3]bool
	n := 0
	for i, c := range ctx.Counts {
		t := TileType(i)
		if c > 0 && t.IsNumbered() && !seen[t.Suit()] {
			seen[t.Suit()] = true
			n++
		}
	}
	return n
}

func (ctx *YakuContext) hasTriplet(t TileType) bool {
	return ctx.tripletsWhere(func(x TileType) bool { return x == t }) > 0
}

func (ctx *YakuContext) tripletsWhere(pred func(TileType) bool) int {
	n := 0
	for _, g := range ctx.Decomp.Groups {
		if (g.Kind == GroupTriplet || g.Kind == GroupQuad) && pred(g.Tile) {
			n++
		}
	}
	return n
}

// isValueTile 役牌：三元牌、自风、场风
func (ctx *YakuContext) isValueTile(t TileType) bool {
	return t.IsDragon() || t == ctx.Table.SeatWind.TileType() || t == ctx.Table.RoundWind.TileType()
}

func (ctx *YakuContext) isPinfu() bool {
	d := ctx.Decomp
	if d.Form != FormStandard || d.count(GroupSequence) != 4 || d.Wait != WaitRyanmen {
		return false
	}
	pair, _ := d.Pair()
	return !ctx.isValueTile(pair)
}

// peikou 相同顺子的对数：1 为一杯口，2 为二杯口
func (ctx *YakuContext) peikou() int {
	if ctx.Decomp.Form != FormStandard {
		return 0
	}
	seqs := make(map[TileType]int)
	for _, g := range ctx.Decomp.Groups {
		if g.Kind == GroupSequence {
			seqs[g.Tile]++
		}
	}
	pairs := 0
	for _, c := range seqs {
		pairs += c / 2
	}
	return pairs
}

func (ctx *YakuContext) hasSequence(t TileType) bool {
	for _, g := range ctx.Decomp.Groups {
		if g.Kind == GroupSequence && g.Tile == t {
			return true
		}
	}
	return false
}

func (ctx *YakuContext) sanshoku() bool {
	for r := 1; r <= 7; r++ {
		m, _ := TileOf(SuitMan, r)
		p, _ := TileOf(SuitPin, r)
		s, _ := TileOf(SuitSou, r)
		if ctx.hasSequence(m) && ctx.hasSequence(p) && ctx.hasSequence(s) {
			return true
		}
	}
	return false
}

func (ctx *YakuContext) ittsu() bool {
	for s := SuitMan; s <= SuitSou; s++ {
		one, _ := TileOf(s, 1)
		if ctx.hasSequence(one) && ctx.hasSequence(one+3) && ctx.hasSequence(one+6) {
			return true
		}
	}
	return false
}

// allGroupsYaochu 混全/纯全：至少一个顺子，且每组都带幺九
func (ctx *YakuContext) allGroupsYaochu() bool {
	d := ctx.Decomp
	if d.Form != FormStandard || d.count(GroupSequence) == 0 {
		return false
	}
	for _, g := range d.Groups {
		if !g.HasYaochu() {
			return false
		}
	}
	return true
}

func (ctx *YakuContext) chuuren() bool {
	if ctx.Kans > 0 || ctx.numberedSuits() != 1 || ctx.any(TileType.IsHonor) {
		return false
	}
	return hasChuurenBase(ctx.Counts)
}

// hasChuurenBase 14 张去掉任意一张后是否为 1112345678999
func hasChuurenBase(h Hand34) bool {
	for i, c := range h {
		if c == 0 {
			continue
		}
		work := h
		work[i]--
		if isChuurenBase(work) {
			return true
		}
	}
	return false
}

func isChuurenBase(h Hand34) bool {
	if h.Total() != 13 {
		return false
	}
	for s := SuitMan; s <= SuitSou; s++ {
		one, _ := TileOf(s, 1)
		if h[one] == 0 {
			continue
		}
		want := [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}
		for r := 0; r < 9; r++ {
			if h[one+TileType(r)] != want[r] {
				return false
			}
		}
		return true
	}
	return false
}

var greenTiles = map[TileType]bool{So2: true, So3: true, So4: true, So6: true, So8: true, Green: true}

func isGreen(t TileType) bool {
	return greenTiles[t]
}

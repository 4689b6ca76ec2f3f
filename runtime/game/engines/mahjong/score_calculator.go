package mahjong

import "math"

// Limit 满贯以上的档位
type Limit int

const (
	LimitNone      Limit = iota
	LimitMangan          // 满贯
	LimitHaneman         // 跳满
	LimitBaiman          // 倍满
	LimitSanbaiman       // 三倍满
	LimitKazoe           // 累计役满
	LimitYakuman         // 役满
)

func (l Limit) String() string {
	switch l {
	case LimitMangan:
		return "满贯"
	case LimitHaneman:
		return "跳满"
	case LimitBaiman:
		return "倍满"
	case LimitSanbaiman:
		return "三倍满"
	case LimitKazoe:
		return "累计役满"
	case LimitYakuman:
		return "役满"
	default:
		return ""
	}
}

// Payment 自摸时各家支付：Dealer 为庄家支付，NonDealer 为每个闲家支付
// 荣和时两者为 0，放铳者支付 Points
type Payment struct {
	Dealer    int
	NonDealer int
}

func roundUpTo100(x int) int {
	return int(math.Ceil(float64(x)/100.0)) * 100
}

// calculateFu 计算符数
func calculateFu(ctx *YakuContext, pinfu bool) int {
	d := ctx.Decomp
	switch d.Form {
	case FormChiitoi:
		return 25
	case FormKokushi:
		return 0
	}

	// 平和固定：自摸 20 符，荣和 30 符
	if pinfu {
		if ctx.Win.Tsumo {
			return 20
		}
		return 30
	}

	fu := 20 // 副底
	if ctx.Win.Tsumo {
		fu += 2
	} else {
		fu += 10 // 门前荣和
	}

	// 边张/嵌张/单骑+2符
	switch d.Wait {
	case WaitKanchan, WaitPenchan, WaitTanki:
		fu += 2
	}

	// 雀头符数，连风牌计 4 符
	if pair, ok := d.Pair(); ok {
		if pair.IsDragon() {
			fu += 2
		}
		if pair == ctx.Table.SeatWind.TileType() {
			fu += 2
		}
		if pair == ctx.Table.RoundWind.TileType() {
			fu += 2
		}
	}

	fu += calculateMeldFu(d)

	// 向上取整到10的倍数
	return ((fu + 9) / 10) * 10
}

// calculateMeldFu 计算面子符数
func calculateMeldFu(d *Decomposition) int {
	fu := 0
	for _, g := range d.Groups {
		var base int
		switch g.Kind {
		case GroupTriplet:
			base = 2
		case GroupQuad:
			base = 8
		default:
			continue
		}
		if g.Concealed {
			base *= 2
		}
		if g.Tile.IsYaochu() {
			base *= 2
		}
		fu += base
	}
	return fu
}

// calculateBasePoints 基础点数 = 符数 × 2^(2+番数)，满贯以上取固定值
func calculateBasePoints(han, fu, yakumanMult int) (int, Limit) {
	switch {
	case yakumanMult > 0:
		return 8000 * yakumanMult, LimitYakuman
	case han >= 13:
		return 8000, LimitKazoe
	case han >= 11:
		return 6000, LimitSanbaiman
	case han >= 8:
		return 4000, LimitBaiman
	case han >= 6:
		return 3000, LimitHaneman
	case han >= 5:
		return 2000, LimitMangan
	}
	base := fu * (1 << (2 + han))
	if base >= 2000 {
		return 2000, LimitMangan
	}
	return base, LimitNone
}

// calculatePoints 不含本场与供托的和了点与自摸分摊
func calculatePoints(base int, dealer bool, tsumo bool) (int, Payment) {
	if !tsumo {
		if dealer {
			return roundUpTo100(base * 6), Payment{}
		}
		return roundUpTo100(base * 4), Payment{}
	}
	if dealer {
		each := roundUpTo100(base * 2)
		return each * 3, Payment{NonDealer: each}
	}
	p := Payment{Dealer: roundUpTo100(base * 2), NonDealer: roundUpTo100(base)}
	return p.Dealer + 2*p.NonDealer, p
}

// Settlement 加上本场与供托之后的实际收支
type Settlement struct {
	Tsumo   bool
	Payment Payment // 自摸时每家实际支付（含本场）
	Ron     int     // 荣和时放铳者实际支付（含本场）
	Deposit int     // 和了者收取的供托
	Total   int     // 和了者合计收入
}

// Settle 本场：荣和 +300，自摸每家 +100；供托每根 1000 归和了者
func Settle(sd ScoredDecomposition, tsumo bool, ctx TableContext) Settlement {
	s := Settlement{Tsumo: tsumo, Deposit: 1000 * ctx.Deposit}
	if !tsumo {
		s.Ron = sd.Points + 300*ctx.Bonus
		s.Total = s.Ron + s.Deposit
		return s
	}

	if ctx.IsDealer() {
		s.Payment.NonDealer = sd.Payment.NonDealer + 100*ctx.Bonus
		s.Total = 3*s.Payment.NonDealer + s.Deposit
		return s
	}
	s.Payment.Dealer = sd.Payment.Dealer + 100*ctx.Bonus
	s.Payment.NonDealer = sd.Payment.NonDealer + 100*ctx.Bonus
	s.Total = s.Payment.Dealer + 2*s.Payment.NonDealer + s.Deposit
	return s
}

package mahjong

import (
	"testing"

	"github.com/e0087/matiate/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHand(t *testing.T, enc string) *Hand {
	t.Helper()
	h, err := ParseHand(enc)
	require.NoError(t, err)
	return h
}

func mustTile(t *testing.T, code string) Tile {
	t.Helper()
	tile, err := ParseTile(code)
	require.NoError(t, err)
	return tile
}

func childCtx() TableContext {
	return TableContext{RoundWind: WindEast, SeatWind: WindSouth}
}

func best(sds []ScoredDecomposition) ScoredDecomposition {
	var top ScoredDecomposition
	for _, sd := range sds {
		if sd.Points > top.Points {
			top = sd
		}
	}
	return top
}

func yakuSet(sd ScoredDecomposition) map[Yaku]int {
	out := make(map[Yaku]int)
	for _, y := range sd.Yaku {
		out[y.Yaku] = y.Han + y.Yakuman
	}
	return out
}

func TestEngine_ComputeWaits(t *testing.T) {
	searcher, err := NewCachedSearcher(config.CacheConf{MaxCost: 256, TTLSeconds: 60})
	require.NoError(t, err)
	e := NewEngine(searcher)

	cases := []struct {
		hand  string
		waits []string
	}{
		{"m123p111s222z3332", []string{"z2"}},
		{"m11335p2266s4477", []string{"m5"}},
		{"m123p456s789z1122", []string{"z1", "z2"}},
		{"p456s789z1122,m1111", []string{"z1", "z2"}},
		{"z1,m1111,p9999,s5555,z7777", []string{"z1"}},
	}
	for _, c := range cases {
		got := e.ComputeWaits(mustHand(t, c.hand))
		codes := make([]string, 0, len(got))
		for _, w := range got {
			codes = append(codes, w.Code())
		}
		assert.Equal(t, c.waits, codes, c.hand)
	}
}

func TestEngine_ComputeWaitsSkipsFifthCopy(t *testing.T) {
	e := NewEngine(nil)
	// m1 作为第 5 张也能组成和牌形，但牌已经用尽
	waits := e.ComputeWaits(mustHand(t, "m1111234p456s789"))
	assert.Contains(t, waits, NewTile(Man4))
	assert.NotContains(t, waits, NewTile(Man1))
}

func TestEngine_ComputeWaitsRejectsWrongSize(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m123p456s789z11122")
	assert.Empty(t, e.ComputeWaits(h))
}

func TestScore_PinfuTanyaoRon(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m234p34588s45678")

	sds := e.Score(h, Win{Tile: mustTile(t, "s6")}, childCtx())
	require.Len(t, sds, 2, "s6 completes either s456 or s678")
	for _, sd := range sds {
		assert.Equal(t, 2, sd.Han)
		assert.Equal(t, 30, sd.Fu)
		assert.Equal(t, 2000, sd.Points)
		assert.Contains(t, yakuSet(sd), YakuPinfu)
		assert.Contains(t, yakuSet(sd), YakuTanyao)
	}
}

func TestScore_DealerPinfuTsumo(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m234p34588s45678")
	ctx := TableContext{RoundWind: WindEast, SeatWind: WindEast}

	sd := best(e.Score(h, Win{Tile: mustTile(t, "s6"), Tsumo: true}, ctx))
	assert.Equal(t, 3, sd.Han)
	assert.Equal(t, 20, sd.Fu)
	assert.Equal(t, 3900, sd.Points)
	assert.Equal(t, Payment{NonDealer: 1300}, sd.Payment)
}

func TestScore_RiichiDoraUraMangan(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m234p34588s45678")
	ctx := childCtx()
	ctx.Riichi = true
	ctx.DoraIndicators = []Tile{mustTile(t, "m1")}
	ctx.UraDoraIndicators = []Tile{mustTile(t, "s3")}

	sd := best(e.Score(h, Win{Tile: mustTile(t, "s6")}, ctx))
	ys := yakuSet(sd)
	assert.Equal(t, 1, ys[YakuDora])
	assert.Equal(t, 1, ys[YakuUraDora])
	assert.Equal(t, 5, sd.Han)
	assert.Equal(t, LimitMangan, sd.Limit)
	assert.Equal(t, 8000, sd.Points)

	// 未立直时里宝牌不计
	ctx.Riichi = false
	sd = best(e.Score(h, Win{Tile: mustTile(t, "s6")}, ctx))
	assert.NotContains(t, yakuSet(sd), YakuUraDora)
	assert.Equal(t, 3, sd.Han)
}

func TestScore_RedFive(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m234p30488s45678")

	sd := best(e.Score(h, Win{Tile: mustTile(t, "s6")}, childCtx()))
	assert.Equal(t, 1, yakuSet(sd)[YakuAkaDora])
	assert.Equal(t, 3, sd.Han)
	assert.Equal(t, 3900, sd.Points)
}

func TestScore_NoYakuIsOmitted(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m123p456s789z1122")
	ctx := TableContext{RoundWind: WindEast, SeatWind: WindWest}

	assert.Empty(t, e.Score(h, Win{Tile: mustTile(t, "z2")}, ctx))

	sds := e.Score(h, Win{Tile: mustTile(t, "z2"), Tsumo: true}, ctx)
	require.Len(t, sds, 1)
	assert.Contains(t, yakuSet(sds[0]), YakuTsumo)
}

func TestScore_ConcealedKanFu(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "p456s789z1122,m1111")

	ron := best(e.Score(h, Win{Tile: mustTile(t, "z1")}, childCtx()))
	assert.Equal(t, 1, ron.Han)
	assert.Equal(t, 70, ron.Fu)
	assert.Equal(t, 2300, ron.Points)

	tsumo := best(e.Score(h, Win{Tile: mustTile(t, "z1"), Tsumo: true}, childCtx()))
	assert.Equal(t, 2, tsumo.Han)
	assert.Equal(t, 70, tsumo.Fu)
	assert.Equal(t, Payment{Dealer: 2300, NonDealer: 1200}, tsumo.Payment)
	assert.Equal(t, 4700, tsumo.Points)
}

func TestScore_RyanpeikouBeatsChiitoi(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m112233p445566s4")

	sds := e.Score(h, Win{Tile: mustTile(t, "s4")}, childCtx())
	require.Len(t, sds, 2)
	assert.Equal(t, FormStandard, sds[0].Decomposition.Form)
	assert.Equal(t, FormChiitoi, sds[1].Decomposition.Form)
	assert.Equal(t, 5200, sds[0].Points)
	assert.Equal(t, 1600, sds[1].Points)
	assert.Equal(t, 25, sds[1].Fu)
}

func TestScore_Yakuman(t *testing.T) {
	e := NewEngine(nil)

	kokushi13 := best(e.Score(mustHand(t, "m19p19s19z1234567"), Win{Tile: mustTile(t, "m1")}, childCtx()))
	assert.Equal(t, 2, kokushi13.YakumanMult)
	assert.Equal(t, 64000, kokushi13.Points)

	kokushi := best(e.Score(mustHand(t, "m119p19s19z123456"), Win{Tile: mustTile(t, "z7")}, childCtx()))
	assert.Equal(t, 1, kokushi.YakumanMult)
	assert.Equal(t, 32000, kokushi.Points)

	tanki := best(e.Score(mustHand(t, "m111p222s333z1112"), Win{Tile: mustTile(t, "z2")}, childCtx()))
	assert.Contains(t, yakuSet(tanki), YakuSuuankouTanki)
	assert.Equal(t, 64000, tanki.Points)
	assert.Len(t, tanki.Yaku, 1, "yakuman suppresses other yaku and dora")
}

func TestScore_YakumanHasNoHanOrFu(t *testing.T) {
	e := NewEngine(nil)
	ctx := TableContext{RoundWind: WindEast, SeatWind: WindSouth, Riichi: true, DoraIndicators: []Tile{mustTile(t, "m1")}}

	// 两副暗杠的四暗刻单骑自摸
	hand := mustHand(t, "m111s7z111,m6666,m4444")
	sds := e.Score(hand, Win{Tile: mustTile(t, "s7"), Tsumo: true}, ctx)
	require.NotEmpty(t, sds)

	top := best(sds)
	assert.Equal(t, 2, top.YakumanMult)
	assert.Zero(t, top.Han)
	assert.Zero(t, top.Fu)
	assert.Equal(t, LimitYakuman, top.Limit)
	assert.Equal(t, 64000, top.Points)
	assert.Contains(t, yakuSet(top), YakuSuuankouTanki)
}

func TestScore_ShanponRonIsOpenTriplet(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m111p222s333z1122")

	ron := best(e.Score(h, Win{Tile: mustTile(t, "z1")}, childCtx()))
	ys := yakuSet(ron)
	assert.Contains(t, ys, YakuSananko)
	assert.Contains(t, ys, YakuToitoi)
	assert.NotContains(t, ys, YakuSuuankou)
	assert.Equal(t, 8000, ron.Points)

	tsumo := best(e.Score(h, Win{Tile: mustTile(t, "z1"), Tsumo: true}, childCtx()))
	assert.Contains(t, yakuSet(tsumo), YakuSuuankou)
	assert.Equal(t, Payment{Dealer: 16000, NonDealer: 8000}, tsumo.Payment)
}

func TestScore_ExhaustedWinTile(t *testing.T) {
	e := NewEngine(nil)
	h := mustHand(t, "m1111234p456s789")
	assert.Empty(t, e.Score(h, Win{Tile: mustTile(t, "m1")}, childCtx()))
}

func TestSettle(t *testing.T) {
	ctx := TableContext{SeatWind: WindSouth, Bonus: 2, Deposit: 1}
	ron := Settle(ScoredDecomposition{Points: 2000}, false, ctx)
	assert.Equal(t, 2600, ron.Ron)
	assert.Equal(t, 1000, ron.Deposit)
	assert.Equal(t, 3600, ron.Total)

	ctx = TableContext{SeatWind: WindSouth, Bonus: 1, Deposit: 2}
	tsumo := Settle(ScoredDecomposition{Points: 4700, Payment: Payment{Dealer: 2300, NonDealer: 1200}}, true, ctx)
	assert.Equal(t, Payment{Dealer: 2400, NonDealer: 1300}, tsumo.Payment)
	assert.Equal(t, 7000, tsumo.Total)

	ctx = TableContext{SeatWind: WindEast, Bonus: 2}
	dealer := Settle(ScoredDecomposition{Points: 3900, Payment: Payment{NonDealer: 1300}}, true, ctx)
	assert.Equal(t, 1500, dealer.Payment.NonDealer)
	assert.Equal(t, 4500, dealer.Total)
}

package puzzle

import (
	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
)

type ClaimKind int

const (
	ClaimTsumo ClaimKind = iota // 自摸
	ClaimRon                    // 荣和
)

func (k ClaimKind) String() string {
	if k == ClaimTsumo {
		return "自摸"
	}
	return "荣和"
}

// Claim 一次和了宣言：Seat 为打出该牌的家
type Claim struct {
	Kind ClaimKind
	Tile mahjong.Tile
	Seat Seat
}

// ScoredWin 成立的和了
type ScoredWin struct {
	Claim      Claim
	Best       mahjong.ScoredDecomposition
	Settlement mahjong.Settlement
	Candidates int // 求值器返回的拆解数
}

// WinResolver 校验和了宣言并计分
type WinResolver struct {
	evaluator mahjong.Evaluator
	tieBreak  config.TieBreak
}

func NewWinResolver(evaluator mahjong.Evaluator, tieBreak config.TieBreak) *WinResolver {
	return &WinResolver{evaluator: evaluator, tieBreak: tieBreak}
}

// Resolve 按顺序校验：振听、是否听牌、和了方式、求值
// 不修改任何状态，相同输入总是得到相同结果
func (r *WinResolver) Resolve(hand WaitingHand, claim Claim, furiten *FuritenTracker, ctx mahjong.TableContext) (ScoredWin, error) {
	if claim.Kind == ClaimRon {
		if bad, reason := furiten.Check(claim.Tile); bad {
			return ScoredWin{}, &RejectedError{Reason: RejectFuriten, Furiten: reason}
		}
	}
	if !hand.IsWait(claim.Tile) {
		return ScoredWin{}, &RejectedError{Reason: RejectNotAWinningTile}
	}
	if (claim.Kind == ClaimTsumo) != (claim.Seat == SeatSelf) {
		return ScoredWin{}, &RejectedError{Reason: RejectWrongClaimType}
	}

	tsumo := claim.Kind == ClaimTsumo
	sds := r.evaluator.Score(hand.Hand, mahjong.Win{Tile: claim.Tile, Tsumo: tsumo}, ctx)
	best, ok := r.pick(sds)
	if !ok {
		return ScoredWin{}, &RejectedError{Reason: RejectNoValidDecomposition}
	}
	return ScoredWin{
		Claim:      claim,
		Best:       best,
		Settlement: mahjong.Settle(best, tsumo, ctx),
		Candidates: len(sds),
	}, nil
}

// BestRon 某张听牌荣和时的最高计分，没有役时返回 false
func (r *WinResolver) BestRon(hand WaitingHand, tile mahjong.Tile, ctx mahjong.TableContext) (mahjong.ScoredDecomposition, bool) {
	return r.pick(r.evaluator.Score(hand.Hand, mahjong.Win{Tile: tile}, ctx))
}

// pick 取点数最高者；点数相同时按配置取先返回者，或比番数、符数
func (r *WinResolver) pick(sds []mahjong.ScoredDecomposition) (mahjong.ScoredDecomposition, bool) {
	if len(sds) == 0 {
		return mahjong.ScoredDecomposition{}, false
	}
	best := 0
	for i := 1; i < len(sds); i++ {
		if r.better(sds[i], sds[best]) {
			best = i
		}
	}
	return sds[best], true
}

func (r *WinResolver) better(a, b mahjong.ScoredDecomposition) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if r.tieBreak != config.TieBreakHan {
		return false
	}
	if a.Han != b.Han {
		return a.Han > b.Han
	}
	return a.Fu > b.Fu
}

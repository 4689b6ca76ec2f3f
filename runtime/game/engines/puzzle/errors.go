package puzzle

import (
	"errors"
	"fmt"
)

// 问题生成与推进相关错误
var (
	ErrGenerationExhausted = errors.New("generation exhausted")
	ErrNoActiveOpportunity = errors.New("no active opportunity")
	ErrPuzzleResolved      = errors.New("puzzle already resolved")
	ErrInvalidParams       = errors.New("invalid puzzle params")
)

// 会话相关错误
var (
	ErrSessionNotFound = errors.New("session not found")
)

// RejectReason 和了宣言被拒绝的原因
type RejectReason int

const (
	RejectFuriten              RejectReason = iota + 1 // 振听中荣和
	RejectNotAWinningTile                              // 不是和了牌
	RejectWrongClaimType                               // 自摸/荣和按错
	RejectNoValidDecomposition                         // 没有役或拆解
)

func (r RejectReason) String() string {
	switch r {
	case RejectFuriten:
		return "振听中不能荣和"
	case RejectNotAWinningTile:
		return "不是和了牌"
	case RejectWrongClaimType:
		return "和了方式不对"
	case RejectNoValidDecomposition:
		return "找不到和了形"
	default:
		return "未知原因"
	}
}

// FuritenReason 振听的具体原因
type FuritenReason int

const (
	FuritenNone                          FuritenReason = iota
	FuritenMissedOpportunity                           // 同巡/见逃振听
	FuritenSelfDiscardedWaitTile                       // 舍牌振听
	FuritenDeclaredThenDiscardedWaitTile               // 立直后振听
)

func (r FuritenReason) String() string {
	switch r {
	case FuritenMissedOpportunity:
		return "见逃了和了牌"
	case FuritenSelfDiscardedWaitTile:
		return "自己打过听的牌"
	case FuritenDeclaredThenDiscardedWaitTile:
		return "立直后打过听的牌"
	default:
		return ""
	}
}

// RejectedError 和了宣言被拒绝，Furiten 仅在 Reason 为 RejectFuriten 时有值
type RejectedError struct {
	Reason  RejectReason
	Furiten FuritenReason
}

func (e *RejectedError) Error() string {
	if e.Reason == RejectFuriten {
		return fmt.Sprintf("claim rejected: %s (%s)", e.Reason, e.Furiten)
	}
	return fmt.Sprintf("claim rejected: %s", e.Reason)
}

package puzzle

import "github.com/e0087/matiate/runtime/game/engines/mahjong"

// FuritenTracker 自家舍牌与见逃记录，每道题重新创建
type FuritenTracker struct {
	waits          []mahjong.Tile
	riichi         bool
	discards       []mahjong.Tile                // 自家舍牌（按顺序）
	discardedTypes map[mahjong.TileType]struct{} // 已弃的牌类型集合
	missed         []mahjong.Tile                // 见逃的和了牌
	missedTypes    map[mahjong.TileType]struct{}
	temporary      bool // 同巡振听，自家下一次舍牌后解除
	permanent      bool // 立直后见逃，本题内不再解除
}

func NewFuritenTracker(waits []mahjong.Tile, riichi bool) *FuritenTracker {
	return &FuritenTracker{
		waits:          append([]mahjong.Tile(nil), waits...),
		riichi:         riichi,
		discards:       make([]mahjong.Tile, 0, 6),
		discardedTypes: make(map[mahjong.TileType]struct{}),
		missedTypes:    make(map[mahjong.TileType]struct{}),
	}
}

// RecordOwnDiscard 记录自家舍牌，同时解除同巡振听
func (f *FuritenTracker) RecordOwnDiscard(t mahjong.Tile) {
	f.discards = append(f.discards, t)
	f.discardedTypes[t.Type] = struct{}{}
	f.temporary = false
}

// RecordMiss 记录见逃；立直中见逃为永久振听
func (f *FuritenTracker) RecordMiss(t mahjong.Tile) {
	f.missed = append(f.missed, t)
	f.missedTypes[t.Type] = struct{}{}
	f.temporary = true
	if f.riichi {
		f.permanent = true
	}
}

// IsDisqualified 该牌能否荣和
func (f *FuritenTracker) IsDisqualified(candidate mahjong.Tile) bool {
	ok, _ := f.Check(candidate)
	return ok
}

// Check 返回是否振听以及原因，见逃优先于舍牌振听
func (f *FuritenTracker) Check(candidate mahjong.Tile) (bool, FuritenReason) {
	if f.permanent || f.temporary {
		return true, FuritenMissedOpportunity
	}
	if _, ok := f.missedTypes[candidate.Type]; ok {
		return true, FuritenMissedOpportunity
	}
	if f.HasDiscarded(candidate.Type) {
		return true, FuritenSelfDiscardedWaitTile
	}
	for _, w := range f.waits {
		if f.HasDiscarded(w.Type) {
			if f.riichi {
				return true, FuritenDeclaredThenDiscardedWaitTile
			}
			return true, FuritenSelfDiscardedWaitTile
		}
	}
	return false, FuritenNone
}

// HasDiscarded 检查是否弃过某种牌
func (f *FuritenTracker) HasDiscarded(tt mahjong.TileType) bool {
	_, ok := f.discardedTypes[tt]
	return ok
}

func (f *FuritenTracker) Discards() []mahjong.Tile {
	return append([]mahjong.Tile(nil), f.discards...)
}

func (f *FuritenTracker) Missed() []mahjong.Tile {
	return append([]mahjong.Tile(nil), f.missed...)
}

func (f *FuritenTracker) Temporary() bool { return f.temporary }

func (f *FuritenTracker) Permanent() bool { return f.permanent }

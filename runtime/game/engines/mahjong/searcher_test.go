package mahjong

import (
	"testing"
	"time"

	"github.com/e0087/matiate/common/cache"
)

func tiles(types ...TileType) []Tile {
	out := make([]Tile, 0, len(types))
	for _, t := range types {
		out = append(out, NewTile(t))
	}
	return out
}

func TestSearcher_KokushiAgari(t *testing.T) {
	s := NewSearcher(nil, nil)
	h13, _ := Hand34FromTiles(tiles(
		Man1, Man9,
		Pin1, Pin9,
		So1, So9,
		East, South, West, North,
		White, Green, Red,
	))

	// 加任意一张幺九牌即和牌
	h14 := h13
	h14[int(Man1)]++
	if !s.IsAgariAll(h14, 0) {
		t.Fatalf("kokushi agari expected true")
	}

	waits := s.Waits(h13, 0, h13)
	if len(waits) != 13 {
		t.Fatalf("kokushi 13-sided waits expected 13, got %v", waits)
	}
}

func TestSearcher_ChiitoiWaits(t *testing.T) {
	s := NewSearcher(nil, nil)

	// 6 对子 + 1 单张
	h13, _ := Hand34FromTiles(tiles(
		Man1, Man1,
		Man3, Man3,
		Pin2, Pin2,
		Pin6, Pin6,
		So4, So4,
		So7, So7,
		Man5,
	))
	waits := s.Waits(h13, 0, h13)
	if len(waits) != 1 || waits[0] != Man5 {
		t.Fatalf("chiitoi waits expected [m5], got %v", waits)
	}
}

func TestSearcher_ChiitoiNeedsDistinctPairs(t *testing.T) {
	h14, _ := Hand34FromTiles(tiles(
		Man1, Man1, Man1, Man1,
		Man3, Man3,
		Pin2, Pin2,
		Pin6, Pin6,
		So4, So4,
		So7, So7,
	))
	if IsAgariChiitoi(h14) {
		t.Fatalf("four of a kind must not count as two chiitoi pairs")
	}
}

func TestSearcher_NormalShapeWaits(t *testing.T) {
	s := NewSearcher(nil, nil)

	// m123 p111 s222 z333 + z2 单骑
	h13, _ := Hand34FromTiles(tiles(
		Man1, Man2, Man3,
		Pin1, Pin1, Pin1,
		So2, So2, So2,
		West, West, West,
		South,
	))
	waits := s.Waits(h13, 0, h13)
	if len(waits) != 1 || waits[0] != South {
		t.Fatalf("expected single wait on z2, got %v", waits)
	}
}

func TestSearcher_ChuurenNineWaits(t *testing.T) {
	s := NewSearcher(nil, nil)
	h13, _ := Hand34FromTiles(tiles(
		Man1, Man1, Man1, Man2, Man3, Man4, Man5, Man6, Man7, Man8, Man9, Man9, Man9,
	))
	waits := s.Waits(h13, 0, h13)
	if len(waits) != 9 {
		t.Fatalf("junsei chuuren expected 9 waits, got %v", waits)
	}
	for i, w := range waits {
		if w != Man1+TileType(i) {
			t.Fatalf("wait %d expected %s, got %s", i, Man1+TileType(i), w)
		}
	}
}

func TestSearcher_FixedMeldsAndExhaustedTile(t *testing.T) {
	s := NewSearcher(nil, nil)

	// m1111234 p456 s789：m1 作为第 5 张能组成和牌形，但不算听牌
	h13, _ := Hand34FromTiles(tiles(Man1, Man1, Man1, Man1, Man2, Man3, Man4, Pin4, Pin5, Pin6, So7, So8, So9))
	for _, w := range s.Waits(h13, 0, h13) {
		if w == Man1 {
			t.Fatalf("exhausted tile m1 must not be a wait")
		}
	}

	// 暗杠 m1111，门内 p456 s789 z111 + m2 单骑
	h10, _ := Hand34FromTiles(tiles(Pin4, Pin5, Pin6, So7, So8, So9, East, East, East, Man2))
	held := h10
	held[Man1] += 4
	waits := s.Waits(h10, 1, held)
	if len(waits) != 1 || waits[0] != Man2 {
		t.Fatalf("expected single wait on m2, got %v", waits)
	}
}

func TestSearcher_CachedMatchesUncached(t *testing.T) {
	agari, err := cache.NewGeneralCache[bool](1024, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer agari.Close()
	waitsCache, err := cache.NewGeneralCache[[]TileType](1024, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer waitsCache.Close()

	cached := NewSearcher(agari, waitsCache)
	plain := NewSearcher(nil, nil)
	h13, _ := Hand34FromTiles(tiles(
		Man2, Man3, Man4, Pin3, Pin4, Pin5, Pin8, Pin8, So4, So5, So6, So7, So8,
	))

	first := cached.Waits(h13, 0, h13)
	agari.Wait()
	waitsCache.Wait()
	second := cached.Waits(h13, 0, h13)
	want := plain.Waits(h13, 0, h13)

	if len(first) != len(want) || len(second) != len(want) {
		t.Fatalf("cached waits %v / %v differ from %v", first, second, want)
	}
	for i := range want {
		if first[i] != want[i] || second[i] != want[i] {
			t.Fatalf("cached waits %v / %v differ from %v", first, second, want)
		}
	}
}

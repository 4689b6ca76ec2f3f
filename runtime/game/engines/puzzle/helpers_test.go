package puzzle

import (
	"math/rand"
	"testing"

	"github.com/e0087/matiate/runtime/game/engines/mahjong"
	"github.com/stretchr/testify/require"
)

// scriptedEvaluator 解析走真实实现，听牌与计分按脚本返回
type scriptedEvaluator struct {
	waits  []mahjong.Tile
	scores []mahjong.ScoredDecomposition
	scored int
}

func (e *scriptedEvaluator) ParseHand(encoding string) (*mahjong.Hand, error) {
	return mahjong.ParseHand(encoding)
}

func (e *scriptedEvaluator) ComputeWaits(h *mahjong.Hand) []mahjong.Tile {
	return append([]mahjong.Tile(nil), e.waits...)
}

func (e *scriptedEvaluator) Score(h *mahjong.Hand, win mahjong.Win, ctx mahjong.TableContext) []mahjong.ScoredDecomposition {
	e.scored++
	return append([]mahjong.ScoredDecomposition(nil), e.scores...)
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func tile(t *testing.T, code string) mahjong.Tile {
	t.Helper()
	tl, err := mahjong.ParseTile(code)
	require.NoError(t, err)
	return tl
}

// waitingHand 用真实求值器计算听牌
func waitingHand(t *testing.T, encoding string) WaitingHand {
	t.Helper()
	e := mahjong.NewEngine(nil)
	h, err := e.ParseHand(encoding)
	require.NoError(t, err)
	waits := e.ComputeWaits(h)
	require.NotEmpty(t, waits, encoding)
	return WaitingHand{Hand: h, Waits: waits}
}

func codes(tiles []mahjong.Tile) []string {
	out := make([]string, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, t.Code())
	}
	return out
}

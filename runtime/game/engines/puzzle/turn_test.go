package puzzle

import (
	"testing"

	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runToEnd 见逃所有和了机会直到流局
func runToEnd(t *testing.T, m *TurnStateMachine) []Event {
	t.Helper()
	var events []Event
	for i := 0; m.Phase() != PhaseResolved; i++ {
		require.Less(t, i, 100, "state machine did not terminate")
		ev, err := m.Advance()
		require.NoError(t, err)
		events = append(events, ev)
	}
	return events
}

func TestTurn_ScheduledOpportunityAlwaysFires(t *testing.T) {
	conf := config.DefaultPuzzleConf()
	for seed := int64(1); seed <= 300; seed++ {
		wh := waitingHand(t, fallbackHands[seed%5])
		m := NewTurnStateMachine(conf, seeded(seed), wh, nil, NewFuritenTracker(wh.Waits, false))
		sched := m.Schedule()
		require.GreaterOrEqual(t, sched.Turn, conf.ScheduleMinTurn)
		require.LessOrEqual(t, sched.Turn, conf.ScheduleMaxTurn)
		require.True(t, wh.IsWait(sched.Tile))

		fired := 0
		for _, ev := range runToEnd(t, m) {
			if !ev.Scheduled {
				continue
			}
			fired++
			assert.Equal(t, EventOpportunity, ev.Kind, "seed %d", seed)
			assert.Equal(t, sched.Seat, ev.Seat, "seed %d", seed)
			assert.True(t, ev.Tile.Same(sched.Tile), "seed %d", seed)
			assert.GreaterOrEqual(t, ev.Turn, sched.Turn, "seed %d", seed)
			assert.Less(t, ev.Turn, sched.Turn+4, "seed %d", seed)
		}
		assert.Equal(t, 1, fired, "seed %d", seed)
		assert.True(t, m.Schedule().Fired, "seed %d", seed)
	}
}

func TestTurn_RotationAndRyukyoku(t *testing.T) {
	conf := config.DefaultPuzzleConf()
	wh := waitingHand(t, "m123p456s789z1122")
	m := NewTurnStateMachine(conf, seeded(9), wh, nil, NewFuritenTracker(wh.Waits, false))

	events := runToEnd(t, m)
	discards := 0
	for _, ev := range events {
		if ev.Kind == EventDiscard || ev.Kind == EventOpportunity {
			assert.Equal(t, Seat(ev.Turn%4), ev.Seat, "turn %d", ev.Turn)
			discards++
		}
	}
	assert.Equal(t, conf.TotalTurns, discards)
	assert.Equal(t, EventRyukyoku, events[len(events)-1].Kind)
	assert.Equal(t, ResolutionRyukyoku, m.Resolution())
	assert.Equal(t, 0, m.WallRemaining())
	for seat := SeatShimocha; seat <= SeatSelf; seat++ {
		assert.Len(t, m.Discards(seat), conf.MaxDiscards)
	}

	_, err := m.Advance()
	assert.ErrorIs(t, err, ErrPuzzleResolved)
}

func TestTurn_NoFifthCopy(t *testing.T) {
	conf := config.DefaultPuzzleConf()
	indicators := []mahjong.Tile{tile(t, "z1"), tile(t, "m5")}
	for seed := int64(1); seed <= 100; seed++ {
		wh := waitingHand(t, fallbackHands[seed%5])
		m := NewTurnStateMachine(conf, seeded(seed), wh, indicators, NewFuritenTracker(wh.Waits, false))
		runToEnd(t, m)

		visible := wh.Hand.HeldCounts()
		for _, d := range indicators {
			visible[d.Type]++
		}
		for seat := SeatShimocha; seat <= SeatSelf; seat++ {
			for _, d := range m.Discards(seat) {
				visible[d.Type]++
			}
		}
		for tt, n := range visible {
			assert.LessOrEqual(t, n, uint8(4), "seed %d %s", seed, mahjong.TileType(tt))
		}
	}
}

func TestTurn_MissMovesOnAndSetsFuriten(t *testing.T) {
	conf := config.DefaultPuzzleConf()
	wh := waitingHand(t, "m123p456s789z1122")
	f := NewFuritenTracker(wh.Waits, false)
	m := NewTurnStateMachine(conf, seeded(3), wh, nil, f)

	var op Event
	for m.Phase() != PhaseAwaitingPlayerAction {
		ev, err := m.Advance()
		require.NoError(t, err)
		op = ev
	}
	pending, ok := m.Pending()
	require.True(t, ok)
	assert.Equal(t, op.Seat, pending.Seat)
	assert.Equal(t, op.Turn+1, m.Turn())

	ev, err := m.Advance()
	require.NoError(t, err)
	assert.Equal(t, EventMiss, ev.Kind)
	assert.True(t, ev.Tile.Same(op.Tile))
	assert.Equal(t, op.Seat.Next(), m.Seat())
	assert.Equal(t, PhaseAwaitingDiscard, m.Phase())
	assert.Contains(t, codes(f.Missed()), op.Tile.Code())
	_, ok = m.Pending()
	assert.False(t, ok)
}

func TestTurn_ResolveClearsPending(t *testing.T) {
	conf := config.DefaultPuzzleConf()
	wh := waitingHand(t, "m123p456s789z1122")
	m := NewTurnStateMachine(conf, seeded(5), wh, nil, NewFuritenTracker(wh.Waits, false))
	for m.Phase() != PhaseAwaitingPlayerAction {
		_, err := m.Advance()
		require.NoError(t, err)
	}
	m.Resolve(ResolutionWin)

	_, ok := m.Pending()
	assert.False(t, ok)
	assert.Equal(t, ResolutionWin, m.Resolution())
	_, err := m.Advance()
	assert.ErrorIs(t, err, ErrPuzzleResolved)
}

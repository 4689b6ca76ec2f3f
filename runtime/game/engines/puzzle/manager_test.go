package puzzle

import (
	"sync"
	"testing"

	"github.com/e0087/matiate/common/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	sm := NewSessionManager(config.DefaultPuzzleConf(), testEngine, 1)

	s, err := sm.Create(Params{KanCount: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 1, sm.Len())

	got, err := sm.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = s.Advance()
	require.NoError(t, err)
	restarted, err := sm.Restart(s.ID(), Params{Riichi: true})
	require.NoError(t, err)
	assert.NotSame(t, s, restarted)
	assert.Equal(t, s.ID(), restarted.ID())
	assert.Equal(t, 0, restarted.Snapshot().Turn)
	assert.True(t, restarted.Params().Riichi)
	assert.Equal(t, 1, sm.Len())

	require.NoError(t, sm.Delete(s.ID()))
	assert.Equal(t, 0, sm.Len())
	_, err = sm.Get(s.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, sm.Delete(s.ID()), ErrSessionNotFound)
	_, err = sm.Restart(s.ID(), Params{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionManager_InvalidParams(t *testing.T) {
	sm := NewSessionManager(config.DefaultPuzzleConf(), testEngine, 1)
	_, err := sm.Create(Params{Bonus: 9})
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Equal(t, 0, sm.Len())

	sm.SetConf(config.PuzzleConf{})
	_, err = sm.Create(Params{})
	assert.ErrorIs(t, err, config.ErrInvalidPuzzleConf)
}

func TestSessionManager_Deterministic(t *testing.T) {
	a := NewSessionManager(config.DefaultPuzzleConf(), testEngine, 99)
	b := NewSessionManager(config.DefaultPuzzleConf(), testEngine, 99)
	for i := 0; i < 5; i++ {
		pa, pb := a.RandomParams(), b.RandomParams()
		require.Equal(t, pa, pb)
		sa, err := a.Create(pa)
		require.NoError(t, err)
		sb, err := b.Create(pb)
		require.NoError(t, err)
		assert.NotEqual(t, sa.ID(), sb.ID())
		assert.Equal(t, sa.WaitingHand().Hand.Encode(), sb.WaitingHand().Hand.Encode())
	}
}

func TestSessionManager_Concurrent(t *testing.T) {
	sm := NewSessionManager(config.DefaultPuzzleConf(), testEngine, 5)
	const n = 16

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := sm.Create(sm.RandomParams())
			if !assert.NoError(t, err) {
				return
			}
			for j := 0; j < 5; j++ {
				_, _ = s.Advance()
				_ = s.Snapshot()
			}
			ids <- s.ID()
		}()
	}
	wg.Wait()
	close(ids)

	assert.Equal(t, n, sm.Len())
	for id := range ids {
		_, err := sm.Get(id)
		assert.NoError(t, err)
	}
}

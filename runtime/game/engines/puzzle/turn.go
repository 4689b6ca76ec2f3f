package puzzle

import (
	"fmt"
	"math/rand"

	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
)

// Seat 相对自家的座位，出牌顺序：下家 → 对家 → 上家 → 自家
type Seat int

const (
	SeatShimocha Seat = iota // 下家
	SeatToimen               // 对家
	SeatKamicha              // 上家
	SeatSelf                 // 自家
)

func (s Seat) Next() Seat {
	return (s + 1) % 4
}

func (s Seat) String() string {
	switch s {
	case SeatShimocha:
		return "下家"
	case SeatToimen:
		return "对家"
	case SeatKamicha:
		return "上家"
	case SeatSelf:
		return "自家"
	default:
		return "未知"
	}
}

type Phase int

const (
	PhaseSetup                Phase = iota // 生成中
	PhaseAwaitingDiscard                   // 等待出牌
	PhaseAwaitingPlayerAction              // 和了牌已出，等待自家操作
	PhaseResolved                          // 已结束
)

// Resolution 结束方式
type Resolution int

const (
	ResolutionNone     Resolution = iota
	ResolutionWin                 // 和了
	ResolutionRyukyoku            // 流局
	ResolutionChombo              // 错和
)

func (r Resolution) String() string {
	switch r {
	case ResolutionWin:
		return "和了"
	case ResolutionRyukyoku:
		return "流局"
	case ResolutionChombo:
		return "错和"
	default:
		return "进行中"
	}
}

// ScheduledEvent 预定的和了牌：指定家在 Turn 巡及之后的第一次出牌打出 Tile
type ScheduledEvent struct {
	Turn  int
	Seat  Seat
	Tile  mahjong.Tile
	Fired bool
}

// Opportunity 待处理的和了机会
type Opportunity struct {
	Seat Seat
	Tile mahjong.Tile
	Turn int
}

type EventKind int

const (
	EventDiscard     EventKind = iota // 普通出牌
	EventOpportunity                  // 打出了和了牌
	EventMiss                         // 见逃
	EventRyukyoku                     // 流局
)

// Event 一次 Advance 的结果
type Event struct {
	Kind      EventKind
	Seat      Seat
	Tile      mahjong.Tile
	Turn      int
	Scheduled bool // 是否为预定的和了牌
}

// TurnStateMachine 四家出牌循环
type TurnStateMachine struct {
	conf       config.PuzzleConf
	rng        *rand.Rand
	sampler    *DoraSampler
	hand       WaitingHand
	furiten    *FuritenTracker
	seat       Seat
	phase      Phase
	resolution Resolution
	discards   [4][]mahjong.Tile
	wall       int // 剩余山牌
	turn       int // 已出牌数
	schedule   ScheduledEvent
	pending    *Opportunity
	visible    mahjong.Hand34 // 手牌、暗杠、宝牌指示牌与牌河中可见的张数
}

// NewTurnStateMachine 选定预定的和了牌，从下家开始
func NewTurnStateMachine(conf config.PuzzleConf, rng *rand.Rand, hand WaitingHand, indicators []mahjong.Tile, furiten *FuritenTracker) *TurnStateMachine {
	m := &TurnStateMachine{
		conf:    conf,
		rng:     rng,
		sampler: NewDoraSampler(rng, conf.RedDoraRate),
		hand:    hand,
		furiten: furiten,
		seat:    SeatShimocha,
		phase:   PhaseSetup,
		wall:    conf.WallCount,
		visible: hand.Hand.HeldCounts(),
	}
	for _, t := range indicators {
		m.visible[t.Type]++
	}
	for i := range m.discards {
		m.discards[i] = make([]mahjong.Tile, 0, conf.MaxDiscards)
	}

	// 优先选还没有四张都可见的听牌
	candidates := make([]mahjong.Tile, 0, len(hand.Waits))
	for _, w := range hand.Waits {
		if m.visible[w.Type] < 4 {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		candidates = hand.Waits
	}
	m.schedule = ScheduledEvent{
		Turn: conf.ScheduleMinTurn + rng.Intn(conf.ScheduleMaxTurn-conf.ScheduleMinTurn+1),
		Seat: Seat(rng.Intn(4)),
		Tile: candidates[rng.Intn(len(candidates))],
	}
	m.phase = PhaseAwaitingDiscard
	return m
}

// Advance 推进一步：见逃、流局或一次出牌
func (m *TurnStateMachine) Advance() (Event, error) {
	switch m.phase {
	case PhaseResolved:
		return Event{}, ErrPuzzleResolved
	case PhaseAwaitingPlayerAction:
		op := *m.pending
		m.furiten.RecordMiss(op.Tile)
		m.pending = nil
		m.seat = m.seat.Next()
		m.phase = PhaseAwaitingDiscard
		return Event{Kind: EventMiss, Seat: op.Seat, Tile: op.Tile, Turn: op.Turn}, nil
	}

	if m.wall <= 0 || m.turn >= m.conf.TotalTurns {
		return m.ryukyoku(), nil
	}

	// 当前家牌河已满时轮到下一家，四家都满即流局
	for i := 0; len(m.discards[m.seat]) >= m.conf.MaxDiscards; i++ {
		if i == 4 {
			return m.ryukyoku(), nil
		}
		m.seat = m.seat.Next()
	}

	tile, scheduled := m.nextDiscard()
	m.discards[m.seat] = append(m.discards[m.seat], tile)
	m.visible[tile.Type]++
	m.wall--
	ev := Event{Kind: EventDiscard, Seat: m.seat, Tile: tile, Turn: m.turn, Scheduled: scheduled}
	m.turn++

	if m.seat == SeatSelf {
		m.furiten.RecordOwnDiscard(tile)
	}
	if m.hand.IsWait(tile) {
		m.pending = &Opportunity{Seat: m.seat, Tile: tile, Turn: ev.Turn}
		m.phase = PhaseAwaitingPlayerAction
		ev.Kind = EventOpportunity
		return ev, nil
	}
	m.seat = m.seat.Next()
	return ev, nil
}

// nextDiscard 预定家在预定巡目及之后第一次出牌时打出预定的牌，其余随机
func (m *TurnStateMachine) nextDiscard() (mahjong.Tile, bool) {
	s := &m.schedule
	if !s.Fired && m.seat == s.Seat && m.turn >= s.Turn {
		s.Fired = true
		return s.Tile, true
	}
	return m.randomDiscard(), false
}

// randomDiscard 不会打出第 5 张，预定的牌留一张给预定事件
func (m *TurnStateMachine) randomDiscard() mahjong.Tile {
	for {
		t := m.sampler.Draw()
		limit := uint8(4)
		if !m.schedule.Fired && t.Same(m.schedule.Tile) {
			limit = 3
		}
		if m.visible[t.Type] < limit {
			return t
		}
	}
}

func (m *TurnStateMachine) ryukyoku() Event {
	m.Resolve(ResolutionRyukyoku)
	return Event{Kind: EventRyukyoku, Seat: m.seat, Turn: m.turn}
}

// Resolve 进入结束状态
func (m *TurnStateMachine) Resolve(r Resolution) {
	m.pending = nil
	m.phase = PhaseResolved
	m.resolution = r
}

// Pending 当前待处理的和了机会
func (m *TurnStateMachine) Pending() (Opportunity, bool) {
	if m.phase != PhaseAwaitingPlayerAction || m.pending == nil {
		return Opportunity{}, false
	}
	return *m.pending, true
}

func (m *TurnStateMachine) Phase() Phase { return m.phase }

func (m *TurnStateMachine) Resolution() Resolution { return m.resolution }

// Seat 当前出牌家
func (m *TurnStateMachine) Seat() Seat { return m.seat }

func (m *TurnStateMachine) Turn() int { return m.turn }

func (m *TurnStateMachine) WallRemaining() int { return m.wall }

func (m *TurnStateMachine) Schedule() ScheduledEvent { return m.schedule }

// Discards 某一家的牌河
func (m *TurnStateMachine) Discards(seat Seat) []mahjong.Tile {
	return append([]mahjong.Tile(nil), m.discards[seat]...)
}

func (m *TurnStateMachine) String() string {
	return fmt.Sprintf("turn=%d seat=%s wall=%d phase=%d", m.turn, m.seat, m.wall, m.phase)
}

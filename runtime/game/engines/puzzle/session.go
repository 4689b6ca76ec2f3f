package puzzle

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"github.com/e0087/matiate/common/config"
	"github.com/e0087/matiate/common/log"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
)

// Deps 会话依赖，Rand 只归该会话使用
type Deps struct {
	Conf      config.PuzzleConf
	Evaluator mahjong.Evaluator
	Rand      *rand.Rand
}

// WaitAnswer 某张听牌荣和时的最高计分，没有役时 Best 为 nil
type WaitAnswer struct {
	Tile mahjong.Tile
	Best *mahjong.ScoredDecomposition
}

// Outcome 一道题的结局
type Outcome struct {
	Resolution Resolution
	Win        *ScoredWin
	Rejection  *RejectedError
	Waits      []mahjong.Tile
	Answers    []WaitAnswer // 流局与错和时给出
	UraDora    []mahjong.Tile
}

// ClaimPreview 当前和了机会的提示：应按的和了方式，以及荣和是否振听
type ClaimPreview struct {
	Opportunity Opportunity
	Kind        ClaimKind
	Furiten     bool
	Reason      FuritenReason
}

// Snapshot 供展示层使用的只读状态
type Snapshot struct {
	ID            string
	Params        Params
	Table         mahjong.TableContext // 里宝牌只在立直和了后给出
	Hand          *mahjong.Hand
	Phase         Phase
	Resolution    Resolution
	Seat          Seat
	Turn          int
	WallRemaining int
	Discards      [4][]mahjong.Tile
	Missed        []mahjong.Tile
	Preview       *ClaimPreview
	Outcome       *Outcome
}

// Session 一道题。操作串行执行
type Session struct {
	mu       sync.Mutex
	id       string
	params   Params
	table    mahjong.TableContext
	hand     WaitingHand
	turns    *TurnStateMachine
	furiten  *FuritenTracker
	resolver *WinResolver
	outcome  *Outcome
	logger   *charmlog.Logger
}

// NewSession 生成一道新题
func NewSession(id string, params Params, deps Deps) (*Session, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := deps.Conf.Validate(); err != nil {
		return nil, err
	}
	if deps.Evaluator == nil || deps.Rand == nil {
		return nil, fmt.Errorf("%w: evaluator and rand are required", ErrInvalidParams)
	}

	sampler := NewDoraSampler(deps.Rand, deps.Conf.RedDoraRate)
	table := mahjong.TableContext{
		RoundWind:      params.RoundWind,
		SeatWind:       params.SeatWind,
		Bonus:          params.Bonus,
		Deposit:        params.Deposit,
		Riichi:         params.Riichi,
		DoraIndicators: sampler.Sample(1 + params.KanCount),
	}

	hand := NewHandBuilder(deps.Conf, deps.Rand, deps.Evaluator).BuildOrFallback(params.KanCount)
	if params.Riichi {
		table.UraDoraIndicators = sampler.Sample(len(table.DoraIndicators))
	}

	furiten := NewFuritenTracker(hand.Waits, params.Riichi)
	s := &Session{
		id:       id,
		params:   params,
		table:    table,
		hand:     hand,
		furiten:  furiten,
		turns:    NewTurnStateMachine(deps.Conf, deps.Rand, hand, table.DoraIndicators, furiten),
		resolver: NewWinResolver(deps.Evaluator, deps.Conf.TieBreak),
		logger:   log.With("session", id),
	}
	sched := s.turns.Schedule()
	s.logger.Debug("新题", "hand", hand.Hand.Encode(), "shape", hand.Shape, "waits", hand.Waits,
		"fallback", hand.Fallback, "scheduleTurn", sched.Turn, "scheduleSeat", sched.Seat, "scheduleTile", sched.Tile)
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Params() Params { return s.params }

// WaitingHand 本题的听牌手牌
func (s *Session) WaitingHand() WaitingHand { return s.hand }

// Advance 推进一步；流局时同时生成结局
func (s *Session) Advance() (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.turns.Advance()
	if err != nil {
		return ev, err
	}
	switch ev.Kind {
	case EventMiss:
		s.logger.Debug("见逃", "seat", ev.Seat, "tile", ev.Tile, "turn", ev.Turn)
	case EventOpportunity:
		s.logger.Debug("和了机会", "seat", ev.Seat, "tile", ev.Tile, "turn", ev.Turn, "scheduled", ev.Scheduled)
	case EventRyukyoku:
		s.outcome = s.finish(ResolutionRyukyoku, nil, nil)
		s.logger.Info("流局", "turn", ev.Turn)
	default:
		s.logger.Debug("出牌", "seat", ev.Seat, "tile", ev.Tile, "turn", ev.Turn)
	}
	return ev, nil
}

// Claim 对当前和了机会宣言；被拒绝时本题以错和结束，并返回 *RejectedError
func (s *Session) Claim(kind ClaimKind) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.turns.Phase() == PhaseResolved {
		return Outcome{}, ErrPuzzleResolved
	}
	op, ok := s.turns.Pending()
	if !ok {
		return Outcome{}, ErrNoActiveOpportunity
	}

	claim := Claim{Kind: kind, Tile: op.Tile, Seat: op.Seat}
	win, err := s.resolver.Resolve(s.hand, claim, s.furiten, s.table)
	if err != nil {
		var rejected *RejectedError
		if !errors.As(err, &rejected) {
			return Outcome{}, err
		}
		s.turns.Resolve(ResolutionChombo)
		s.outcome = s.finish(ResolutionChombo, nil, rejected)
		s.logger.Info("错和", "kind", kind, "tile", op.Tile, "reason", rejected.Reason, "furiten", rejected.Furiten)
		return *s.outcome, err
	}

	s.turns.Resolve(ResolutionWin)
	s.outcome = s.finish(ResolutionWin, &win, nil)
	s.logger.Info("和了", "kind", kind, "tile", op.Tile, "points", win.Best.Points, "total", win.Settlement.Total)
	return *s.outcome, nil
}

func (s *Session) finish(r Resolution, win *ScoredWin, rejected *RejectedError) *Outcome {
	out := &Outcome{
		Resolution: r,
		Win:        win,
		Rejection:  rejected,
		Waits:      append([]mahjong.Tile(nil), s.hand.Waits...),
	}
	if r == ResolutionWin && s.table.Riichi {
		out.UraDora = append([]mahjong.Tile(nil), s.table.UraDoraIndicators...)
	}
	if r != ResolutionWin {
		for _, w := range s.hand.Waits {
			ans := WaitAnswer{Tile: w}
			if best, ok := s.resolver.BestRon(s.hand, w, s.table); ok {
				ans.Best = &best
			}
			out.Answers = append(out.Answers, ans)
		}
	}
	return out
}

// ClaimPreview 当前和了机会应按的方式，以及荣和会不会因振听被拒
func (s *Session) ClaimPreview() (ClaimPreview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview()
}

func (s *Session) preview() (ClaimPreview, bool) {
	op, ok := s.turns.Pending()
	if !ok {
		return ClaimPreview{}, false
	}
	p := ClaimPreview{Opportunity: op, Kind: ClaimRon}
	if op.Seat == SeatSelf {
		p.Kind = ClaimTsumo
		return p, true
	}
	p.Furiten, p.Reason = s.furiten.Check(op.Tile)
	return p, true
}

// Outcome 结局，未结束时返回 false
func (s *Session) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.table
	table.DoraIndicators = append([]mahjong.Tile(nil), s.table.DoraIndicators...)
	table.UraDoraIndicators = nil
	if s.outcome != nil && s.outcome.Resolution == ResolutionWin {
		table.UraDoraIndicators = append([]mahjong.Tile(nil), s.table.UraDoraIndicators...)
	}

	snap := Snapshot{
		ID:            s.id,
		Params:        s.params,
		Table:         table,
		Hand:          s.hand.Hand.Clone(),
		Phase:         s.turns.Phase(),
		Resolution:    s.turns.Resolution(),
		Seat:          s.turns.Seat(),
		Turn:          s.turns.Turn(),
		WallRemaining: s.turns.WallRemaining(),
		Missed:        s.furiten.Missed(),
	}
	for seat := SeatShimocha; seat <= SeatSelf; seat++ {
		snap.Discards[seat] = s.turns.Discards(seat)
	}
	if p, ok := s.preview(); ok {
		snap.Preview = &p
	}
	if s.outcome != nil {
		out := *s.outcome
		snap.Outcome = &out
	}
	return snap
}

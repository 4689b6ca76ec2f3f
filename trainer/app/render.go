package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/e0087/matiate/runtime/game/engines/mahjong"
	"github.com/e0087/matiate/runtime/game/engines/puzzle"
)

// Renderer 把会话快照渲染成终端文本
type Renderer struct {
	header  lipgloss.Style
	label   lipgloss.Style
	tile    lipgloss.Style
	red     lipgloss.Style
	pending lipgloss.Style
	warn    lipgloss.Style
	good    lipgloss.Style
	box     lipgloss.Style
}

func NewRenderer() *Renderer {
	return &Renderer{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7FD1B9")),
		label:   lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("245")),
		tile:    lipgloss.NewStyle().PaddingRight(1),
		red:     lipgloss.NewStyle().PaddingRight(1).Foreground(lipgloss.Color("#FF5F5F")),
		pending: lipgloss.NewStyle().Reverse(true).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")),
		good:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD75F")),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

func (r *Renderer) tiles(ts []mahjong.Tile) string {
	var b strings.Builder
	for _, t := range ts {
		if t.IsRedFive() {
			b.WriteString(r.red.Render(t.Code()))
			continue
		}
		b.WriteString(r.tile.Render(t.Code()))
	}
	return b.String()
}

func (r *Renderer) row(label, content string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, r.label.Render(label), content)
}

// Render 牌桌：场况、宝牌、手牌、四家牌河、振听提示与结局；waits 非空时一并显示听牌
func (r *Renderer) Render(snap puzzle.Snapshot, waits []mahjong.Tile) string {
	lines := []string{
		r.header.Render(fmt.Sprintf("%s场 %s家  %d本场 供托%d  剩余%d  第%d巡",
			snap.Params.RoundWind, snap.Params.SeatWind, snap.Params.Bonus, snap.Params.Deposit,
			snap.WallRemaining, snap.Turn/4+1)),
		r.row("宝牌", r.tiles(snap.Table.DoraIndicators)),
	}
	if len(snap.Table.UraDoraIndicators) > 0 {
		lines = append(lines, r.row("里宝牌", r.tiles(snap.Table.UraDoraIndicators)))
	}

	hand := r.tiles(snap.Hand.Concealed)
	for _, k := range snap.Hand.Kans {
		hand += " [" + strings.TrimSpace(r.tiles(kanTiles(k))) + "]"
	}
	handLabel := "手牌"
	if snap.Params.Riichi {
		handLabel = "手牌 立"
	}
	lines = append(lines, r.row(handLabel, hand), "")

	for seat := puzzle.SeatShimocha; seat <= puzzle.SeatSelf; seat++ {
		lines = append(lines, r.row(seat.String(), r.discards(snap, seat)))
	}

	if p := snap.Preview; p != nil {
		hint := fmt.Sprintf("%s打出 %s，可以%s", p.Opportunity.Seat, p.Opportunity.Tile.Code(), p.Kind)
		if p.Furiten {
			hint = r.warn.Render(fmt.Sprintf("%s打出 %s，但振听中：%s", p.Opportunity.Seat, p.Opportunity.Tile.Code(), p.Reason))
		}
		lines = append(lines, "", hint)
	}
	if len(waits) > 0 && snap.Outcome == nil {
		lines = append(lines, "", r.row("听牌", r.tiles(waits)))
	}
	if snap.Outcome != nil {
		lines = append(lines, "", r.Outcome(*snap.Outcome))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) discards(snap puzzle.Snapshot, seat puzzle.Seat) string {
	ds := snap.Discards[seat]
	p := snap.Preview
	if p == nil || p.Opportunity.Seat != seat || len(ds) == 0 {
		return r.tiles(ds)
	}
	last := ds[len(ds)-1]
	return r.tiles(ds[:len(ds)-1]) + r.pending.Render(last.Code())
}

// Outcome 和了时给出役与点数，流局与错和时给出每张听牌的答案
func (r *Renderer) Outcome(out puzzle.Outcome) string {
	var lines []string
	switch out.Resolution {
	case puzzle.ResolutionWin:
		w := out.Win
		lines = append(lines, r.good.Render(fmt.Sprintf("%s %s", w.Claim.Kind, w.Claim.Tile.Code())))
		lines = append(lines, r.scored(w.Best)...)
		if w.Settlement.Tsumo {
			if w.Settlement.Payment.Dealer > 0 {
				lines = append(lines, fmt.Sprintf("庄家支付 %d，闲家各支付 %d", w.Settlement.Payment.Dealer, w.Settlement.Payment.NonDealer))
			} else {
				lines = append(lines, fmt.Sprintf("闲家各支付 %d", w.Settlement.Payment.NonDealer))
			}
		} else {
			lines = append(lines, fmt.Sprintf("放铳者支付 %d", w.Settlement.Ron))
		}
		if w.Settlement.Deposit > 0 {
			lines = append(lines, fmt.Sprintf("供托 %d", w.Settlement.Deposit))
		}
		lines = append(lines, r.good.Render(fmt.Sprintf("合计 +%d", w.Settlement.Total)))
	case puzzle.ResolutionChombo:
		lines = append(lines, r.warn.Render("错和："+rejection(out.Rejection)))
		lines = append(lines, r.answers(out)...)
	case puzzle.ResolutionRyukyoku:
		lines = append(lines, r.warn.Render("流局"))
		lines = append(lines, r.answers(out)...)
	}
	return r.box.Render(strings.Join(lines, "\n"))
}

func rejection(e *puzzle.RejectedError) string {
	if e == nil {
		return ""
	}
	if e.Reason == puzzle.RejectFuriten {
		return fmt.Sprintf("%s（%s）", e.Reason, e.Furiten)
	}
	return e.Reason.String()
}

func (r *Renderer) scored(sd mahjong.ScoredDecomposition) []string {
	var lines []string
	for _, y := range sd.Yaku {
		switch {
		case y.Yakuman > 1:
			lines = append(lines, fmt.Sprintf("  %s %d倍役满", y.Name, y.Yakuman))
		case y.Yakuman == 1:
			lines = append(lines, fmt.Sprintf("  %s 役满", y.Name))
		default:
			lines = append(lines, fmt.Sprintf("  %s %d番", y.Name, y.Han))
		}
	}
	summary := fmt.Sprintf("%d符 %d番 %d点", sd.Fu, sd.Han, sd.Points)
	if sd.YakumanMult > 0 {
		summary = fmt.Sprintf("%d点", sd.Points)
	}
	if sd.Limit != mahjong.LimitNone {
		summary += " " + sd.Limit.String()
	}
	return append(lines, summary)
}

func (r *Renderer) answers(out puzzle.Outcome) []string {
	lines := []string{"正确答案：" + strings.TrimSpace(r.tiles(out.Waits))}
	for _, ans := range out.Answers {
		if ans.Best == nil {
			lines = append(lines, fmt.Sprintf("  %s 荣和无役", ans.Tile.Code()))
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s 荣和 %d点", ans.Tile.Code(), ans.Best.Points))
	}
	return lines
}

// kanTiles 暗杠展开为 4 张，赤 5 放在最后
func kanTiles(k mahjong.Tile) []mahjong.Tile {
	plain := mahjong.NewTile(k.Type)
	return []mahjong.Tile{plain, plain, plain, k}
}

// Package report renders standings, head-to-head results and the stored log
// as terminal tables.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-duelrank/internal/model"
)

const dash = "—"

var podium = []*color.Color{
	color.New(color.FgYellow, color.Bold), // gold
	color.New(color.FgWhite, color.Bold),  // silver
	color.New(color.FgRed),                // bronze
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintStandings prints the ranking table. ranked must already be ordered;
// ranks are assigned by position. If focus is non-empty, that competitor's
// row is marked with ">".
func PrintStandings(w io.Writer, ranked []model.PlayerState, focus string) {
	table := newTable(w)
	table.Header(
		" ", "RANK", "DUELIST", "ELO", "PEAK",
		"MW", "ML", "MT", "MW%", "ML%", "MT%",
		"GW", "GL", "GW%", "GL%",
	)

	for i, s := range ranked {
		marker := " "
		if focus != "" && s.Name == focus {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			s.Name,
			FormatRating(s.Rating),
			FormatRating(s.PeakRating),
			strconv.Itoa(s.MatchWins),
			strconv.Itoa(s.MatchLosses),
			strconv.Itoa(s.MatchTies),
			FormatPct(s.MatchWinPct()),
			FormatPct(s.MatchLossPct()),
			FormatPct(s.MatchTiePct()),
			strconv.Itoa(s.GameWins),
			strconv.Itoa(s.GameLosses),
			FormatPct(s.GameWinPct()),
			FormatPct(s.GameLossPct()),
		)
	}
	table.Render()
}

// PrintPodium prints the top three of ranked, colored gold, silver and bronze.
func PrintPodium(w io.Writer, ranked []model.PlayerState) {
	for i := 0; i < len(ranked) && i < len(podium); i++ {
		podium[i].Fprintf(w, "  %d. %s (%s)\n", i+1, ranked[i].Name, FormatRating(ranked[i].Rating))
	}
}

// PrintHeadToHead prints every match between the pair followed by the match
// and game win totals. Totals are omitted when neither side has won a match.
func PrintHeadToHead(w io.Writer, h model.HeadToHead) {
	if h.PlayerA == h.PlayerB {
		fmt.Fprintln(w, "Pick two different competitors.")
		return
	}
	if len(h.Games) == 0 {
		fmt.Fprintf(w, "No matches between %s and %s.\n", h.PlayerA, h.PlayerB)
		return
	}

	table := newTable(w)
	table.Header(h.PlayerA, " ", h.PlayerB, "ROUND")
	if h.Decided() {
		table.Append(strconv.Itoa(h.MatchWinsA), "–", strconv.Itoa(h.MatchWinsB), "# Match Wins")
		table.Append(strconv.Itoa(h.GameWinsA), "–", strconv.Itoa(h.GameWinsB), "# Game Wins")
	}
	for _, g := range h.Games {
		round := g.Round
		if round == "" {
			round = dash
		}
		table.Append(strconv.Itoa(g.ScoreA), "–", strconv.Itoa(g.ScoreB), round)
	}
	table.Render()
}

// PrintRoster prints competitors with their external ids.
func PrintRoster(w io.Writer, roster []model.Competitor) {
	table := newTable(w)
	table.Header("DUELIST", "ID")
	for _, c := range roster {
		table.Append(c.Name, strconv.Itoa(c.ExtID))
	}
	table.Render()
}

// PrintMatchLog prints matches with their 1-based position in the log.
func PrintMatchLog(w io.Writer, matches []model.MatchResult) {
	table := newTable(w)
	table.Header("#", "PLAYER A", "SCORE", "PLAYER B", "ROUND", "WINNER")
	for i, m := range matches {
		winner := dash
		switch m.Outcome() {
		case model.OutcomeAWon:
			winner = m.PlayerA
		case model.OutcomeBWon:
			winner = m.PlayerB
		}
		round := m.Round
		if round == "" {
			round = dash
		}
		table.Append(
			strconv.Itoa(i+1),
			m.PlayerA,
			fmt.Sprintf("%d-%d", m.GamesA, m.GamesB),
			m.PlayerB,
			round,
			winner,
		)
	}
	table.Render()
}

// PrintTrend prints a player's rating after each of their matches.
func PrintTrend(w io.Writer, name string, points []model.TrendPoint) {
	fmt.Fprintf(w, "\nRating trend: %s\n\n", name)
	table := newTable(w)
	table.Header("#", "VS", "ROUND", "RESULT", "SCORE", "ELO", "Δ", "PEAK")
	for _, p := range points {
		round := p.Round
		if round == "" {
			round = dash
		}
		table.Append(
			strconv.Itoa(p.Index+1),
			p.Opponent,
			round,
			p.Result,
			p.Score,
			FormatRating(p.Rating),
			fmt.Sprintf("%+.1f", p.Delta),
			FormatRating(p.Peak),
		)
	}
	table.Render()
}

// PrintOverview prints the database summary block.
func PrintOverview(w io.Writer, ov model.Overview, rounds []model.RoundCount) {
	fmt.Fprintf(w, "\n=== Ladder Summary ===\n\n")
	fmt.Fprintf(w, "  Competitors   : %d\n", ov.Competitors)
	fmt.Fprintf(w, "  Matches       : %d\n", ov.Matches)
	fmt.Fprintf(w, "  Games         : %d\n", ov.Games)
	fmt.Fprintf(w, "  Tied matches  : %d\n", ov.Ties)
	fmt.Fprintf(w, "  Round labels  : %d\n", ov.Rounds)
	if ov.Last != nil {
		fmt.Fprintf(w, "  Last import   : %s from %s (%s)\n", ov.Last.ImportedAt, ov.Last.Source, shortHash(ov.Last.LogHash))
	}

	if len(rounds) == 0 {
		return
	}
	fmt.Fprintf(w, "\n--- Rounds ---\n\n")
	table := newTable(w)
	table.Header("ROUND", "MATCHES")
	for _, r := range rounds {
		table.Append(r.Round, strconv.Itoa(r.Matches))
	}
	table.Render()
}

// FormatRating rounds a rating to the nearest integer, halves away from zero.
func FormatRating(r float64) string {
	return strconv.FormatFloat(math.Round(r), 'f', 0, 64)
}

// FormatPct renders a percentage rounded to an integer, or a dash when the
// denominator was zero.
func FormatPct(pct float64, ok bool) string {
	if !ok {
		return dash
	}
	return strconv.FormatFloat(math.Round(pct), 'f', 0, 64) + "%"
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// PrintRows prints an arbitrary result set.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
}

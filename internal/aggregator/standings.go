// Package aggregator replays a match log into per-competitor standings and
// answers head-to-head queries over the same log.
package aggregator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pable/go-duelrank/internal/model"
	"github.com/pable/go-duelrank/internal/rating"
)

var (
	// ErrEmptyRoster is returned when a replay is asked to run without competitors.
	ErrEmptyRoster = errors.New("empty roster")
	// ErrUnknownCompetitor matches any *UnknownCompetitorError via errors.Is.
	ErrUnknownCompetitor = errors.New("unknown competitor")
)

// UnknownCompetitorError reports a match naming someone absent from the roster.
// Index is the zero-based position of the match in the log.
type UnknownCompetitorError struct {
	Name  string
	Index int
}

func (e *UnknownCompetitorError) Error() string {
	return fmt.Sprintf("match %d: unknown competitor %q", e.Index, e.Name)
}

func (e *UnknownCompetitorError) Is(target error) bool {
	return target == ErrUnknownCompetitor
}

// Observer is called after each match has been folded into the standings.
// a and b are copies of the two participants' states at that point.
type Observer func(index int, m model.MatchResult, a, b model.PlayerState)

// ComputeStandings replays matches in order over a fresh state per roster
// name and returns the final states keyed by name.
func ComputeStandings(matches []model.MatchResult, roster []string) (map[string]model.PlayerState, error) {
	return Replay(matches, roster, nil)
}

// Replay is ComputeStandings with an optional per-match observer. Any match
// naming a competitor outside the roster aborts the replay; no partial
// standings are returned.
func Replay(matches []model.MatchResult, roster []string, observe Observer) (map[string]model.PlayerState, error) {
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}

	states := make(map[string]*model.PlayerState, len(roster))
	for _, name := range roster {
		if _, ok := states[name]; ok {
			continue
		}
		s := model.NewPlayerState(name)
		states[name] = &s
	}

	for i, m := range matches {
		a, ok := states[m.PlayerA]
		if !ok {
			return nil, &UnknownCompetitorError{Name: m.PlayerA, Index: i}
		}
		b, ok := states[m.PlayerB]
		if !ok {
			return nil, &UnknownCompetitorError{Name: m.PlayerB, Index: i}
		}

		outcome := m.Outcome()
		tallyGames(a, b, m.GamesA, m.GamesB)
		tallyMatch(a, b, outcome)
		updateRatings(a, b, outcome)

		if observe != nil {
			observe(i, m, *a, *b)
		}
	}

	out := make(map[string]model.PlayerState, len(states))
	for name, s := range states {
		out[name] = *s
	}
	return out, nil
}

func tallyGames(a, b *model.PlayerState, gamesA, gamesB int) {
	a.GameWins += gamesA
	a.GameLosses += gamesB
	a.Games += gamesA + gamesB
	b.GameWins += gamesB
	b.GameLosses += gamesA
	b.Games += gamesA + gamesB
}

func tallyMatch(a, b *model.PlayerState, outcome model.Outcome) {
	switch outcome {
	case model.OutcomeAWon:
		a.MatchWins++
		b.MatchLosses++
	case model.OutcomeBWon:
		a.MatchLosses++
		b.MatchWins++
	default:
		a.MatchTies++
		b.MatchTies++
	}
	a.Matches++
	b.Matches++
}

// updateRatings applies the paired update sequentially: a is rated against
// b's pre-match rating, then b is rated against a's new rating. Existing
// ladders were computed this way, so the order must not change.
func updateRatings(a, b *model.PlayerState, outcome model.Outcome) {
	scoreA, scoreB := scores(outcome)

	a.Rating = rating.Update(a.Rating, a.Matches, b.Rating, scoreA)
	a.PeakRating = max(a.PeakRating, a.Rating)

	b.Rating = rating.Update(b.Rating, b.Matches, a.Rating, scoreB)
	b.PeakRating = max(b.PeakRating, b.Rating)
}

func scores(outcome model.Outcome) (a, b float64) {
	switch outcome {
	case model.OutcomeAWon:
		return rating.Win, rating.Loss
	case model.OutcomeBWon:
		return rating.Loss, rating.Win
	default:
		return rating.Tie, rating.Tie
	}
}

// RankByRating returns the states ordered by rating, highest first. Equal
// ratings fall back to name order so the ranking is stable across runs.
func RankByRating(states map[string]model.PlayerState) []model.PlayerState {
	out := values(states)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SortByName returns the states in ascending name order.
func SortByName(states map[string]model.PlayerState) []model.PlayerState {
	out := values(states)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func values(states map[string]model.PlayerState) []model.PlayerState {
	out := make([]model.PlayerState, 0, len(states))
	for _, s := range states {
		out = append(out, s)
	}
	return out
}

// Trend replays the log and collects name's state after each of their
// matches.
func Trend(matches []model.MatchResult, roster []string, name string) ([]model.TrendPoint, error) {
	var points []model.TrendPoint
	prev := model.InitialRating
	_, err := Replay(matches, roster, func(i int, m model.MatchResult, a, b model.PlayerState) {
		if !m.Involves(name) {
			return
		}
		self, opp := a, m.PlayerB
		own, other := m.GamesA, m.GamesB
		if m.PlayerA != name {
			self, opp = b, m.PlayerA
			own, other = m.GamesB, m.GamesA
		}
		result := "T"
		switch {
		case own > other:
			result = "W"
		case own < other:
			result = "L"
		}
		points = append(points, model.TrendPoint{
			Index:    i,
			Opponent: opp,
			Round:    m.Round,
			Result:   result,
			Score:    fmt.Sprintf("%d-%d", own, other),
			Rating:   self.Rating,
			Peak:     self.PeakRating,
			Delta:    self.Rating - prev,
		})
		prev = self.Rating
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

package model

// InitialRating is the rating every competitor starts a replay with.
const InitialRating = 1000.0

// ---- Decoded input ----

// MatchResult is one recorded best-of-N contest between two competitors.
// The position of a MatchResult within its log is its chronological order.
type MatchResult struct {
	PlayerA string
	GamesA  int
	PlayerB string
	GamesB  int
	Round   string // optional label, e.g. "R1"
}

// Outcome classifies a match from PlayerA's seat.
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeAWon
	OutcomeBWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAWon:
		return "A"
	case OutcomeBWon:
		return "B"
	default:
		return "tie"
	}
}

// Outcome returns who won the match; equal game counts are a tie.
func (m MatchResult) Outcome() Outcome {
	switch {
	case m.GamesA > m.GamesB:
		return OutcomeAWon
	case m.GamesB > m.GamesA:
		return OutcomeBWon
	default:
		return OutcomeTie
	}
}

// Involves reports whether name sits in either seat of the match.
func (m MatchResult) Involves(name string) bool {
	return m.PlayerA == name || m.PlayerB == name
}

// Competitor is one roster entry. ExtID is carried through from the roster
// file but plays no part in the rating replay.
type Competitor struct {
	Name  string
	ExtID int
}

// ---- Replay output ----

// PlayerState holds a competitor's rating and tallies. During a replay it is
// owned by the engine; afterwards it is a read-only snapshot.
//
// Invariants: Matches == MatchWins+MatchLosses+MatchTies,
// Games == GameWins+GameLosses, PeakRating >= Rating.
type PlayerState struct {
	Name       string
	Rating     float64
	PeakRating float64

	MatchWins   int
	MatchLosses int
	MatchTies   int
	Matches     int

	GameWins   int
	GameLosses int
	Games      int
}

// NewPlayerState returns the default state a replay starts from.
func NewPlayerState(name string) PlayerState {
	return PlayerState{
		Name:       name,
		Rating:     InitialRating,
		PeakRating: InitialRating,
	}
}

// MatchWinPct returns the percentage of matches won. ok is false when no
// matches were played.
func (s *PlayerState) MatchWinPct() (pct float64, ok bool) {
	return percent(s.MatchWins, s.Matches)
}

func (s *PlayerState) MatchLossPct() (pct float64, ok bool) {
	return percent(s.MatchLosses, s.Matches)
}

func (s *PlayerState) MatchTiePct() (pct float64, ok bool) {
	return percent(s.MatchTies, s.Matches)
}

// GameWinPct returns the percentage of games won. ok is false when no games
// were played.
func (s *PlayerState) GameWinPct() (pct float64, ok bool) {
	return percent(s.GameWins, s.Games)
}

func (s *PlayerState) GameLossPct() (pct float64, ok bool) {
	return percent(s.GameLosses, s.Games)
}

func percent(n, d int) (float64, bool) {
	if d == 0 {
		return 0, false
	}
	return 100 * float64(n) / float64(d), true
}

// ---- Head-to-head ----

// HeadToHeadGame is one match between the queried pair, seen from the query's
// perspective: ScoreA belongs to the first queried competitor.
type HeadToHeadGame struct {
	ScoreA int
	ScoreB int
	Round  string
}

// HeadToHead is the sub-history between two competitors.
type HeadToHead struct {
	PlayerA string
	PlayerB string
	Games   []HeadToHeadGame

	MatchWinsA int
	MatchWinsB int
	GameWinsA  int
	GameWinsB  int
}

// Ties returns the number of drawn matches between the pair.
func (h *HeadToHead) Ties() int {
	return len(h.Games) - h.MatchWinsA - h.MatchWinsB
}

// Decided reports whether either side has won at least one match. The
// totals rows are only shown when this holds.
func (h *HeadToHead) Decided() bool {
	return h.MatchWinsA != 0 || h.MatchWinsB != 0
}

// ---- Trend ----

// TrendPoint is a player's state right after one of their matches.
type TrendPoint struct {
	Index    int // position of the match in the full log
	Opponent string
	Round    string
	Result   string // "W", "L" or "T"
	Score    string // own games first, e.g. "2-1"
	Rating   float64
	Peak     float64
	Delta    float64
}

// ---- Storage views ----

// ImportRecord describes one stored ingestion of the log.
type ImportRecord struct {
	ID              string
	LogHash         string
	Source          string
	ImportedAt      string // RFC 3339
	MatchCount      int
	CompetitorCount int
}

// Overview is the database summary shown by the summary command.
type Overview struct {
	Competitors int
	Matches     int
	Games       int
	Ties        int
	Rounds      int
	Last        *ImportRecord
}

// RoundCount is the number of matches recorded under one round label.
type RoundCount struct {
	Round   string
	Matches int
}

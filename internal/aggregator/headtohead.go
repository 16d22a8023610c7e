package aggregator

import "github.com/pable/go-duelrank/internal/model"

// HeadToHead returns every match between a and b in log order, with scores
// normalized so a's games come first regardless of seat. Asking for a
// competitor against themselves yields an empty result.
func HeadToHead(matches []model.MatchResult, a, b string) model.HeadToHead {
	h := model.HeadToHead{PlayerA: a, PlayerB: b}
	if a == b {
		return h
	}

	for _, m := range matches {
		var scoreA, scoreB int
		switch {
		case m.PlayerA == a && m.PlayerB == b:
			scoreA, scoreB = m.GamesA, m.GamesB
		case m.PlayerA == b && m.PlayerB == a:
			scoreA, scoreB = m.GamesB, m.GamesA
		default:
			continue
		}

		h.Games = append(h.Games, model.HeadToHeadGame{ScoreA: scoreA, ScoreB: scoreB, Round: m.Round})
		h.GameWinsA += scoreA
		h.GameWinsB += scoreB
		switch {
		case scoreA > scoreB:
			h.MatchWinsA++
		case scoreB > scoreA:
			h.MatchWinsB++
		}
	}
	return h
}

// Package rating implements the dynamic-K logistic rating update used by the
// ladder. The functions here are pure; the replay that feeds them lives in
// package aggregator.
package rating

import "math"

const (
	// scale is the rating gap at which the stronger side is a 10:1 favourite.
	scale = 400.0

	kNumerator = 250.0
	kOffset    = 96.0
	kExponent  = 0.4
)

// Score values for the three outcomes of a match.
const (
	Win  = 1.0
	Tie  = 0.5
	Loss = 0.0
)

// KFactor returns the update coefficient for a player who has played
// matches matches, counting the one being rated. It shrinks as the
// player accumulates matches.
func KFactor(matches int) float64 {
	return kNumerator / math.Pow(float64(matches)+kOffset, kExponent)
}

// Expected returns the logistic probability that a player rated own beats
// a player rated opponent.
func Expected(own, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-own)/scale))
}

// Update returns the player's new rating after a match with the given score
// (Win, Tie or Loss) against an opponent rated opponent.
func Update(own float64, matches int, opponent float64, score float64) float64 {
	return own + KFactor(matches)*(score-Expected(own, opponent))
}

package elo

import "math"

// K is the base adjustment factor per match.
const K = 32

// winBonusFactor scales positive deltas up so the ladder rewards a win
// harder than it punishes the matching loss.
const winBonusFactor = 2

// Result holds the outcome of one pairing calculation. DeltaA and
// DeltaB are team totals. The team ratings and expected score are kept
// on the match record for later analysis, they feed nothing downstream.
type Result struct {
	DeltaA      int
	DeltaB      int
	TeamRatingA float64
	TeamRatingB float64
	ExpectedA   float64
}

// CalculateMatch computes the signed rating deltas for two sides given
// the final score. A side's rating is the arithmetic mean of its
// players' current ratings; the expected score is the standard logistic
// pairing function of the rating gap. Score validation happens
// upstream, but equal scores fall back to a 0.5/0.5 split rather than
// misbehaving.
func CalculateMatch(ratingsA, ratingsB []int, scoreA, scoreB int) Result {
	teamA := mean(ratingsA)
	teamB := mean(ratingsB)

	expectedA := 1.0 / (1.0 + math.Pow(10, (teamB-teamA)/400.0))
	expectedB := 1.0 - expectedA

	actualA := 0.5
	switch {
	case scoreA > scoreB:
		actualA = 1
	case scoreB > scoreA:
		actualA = 0
	}
	actualB := 1 - actualA

	return Result{
		DeltaA:      perPlayerDelta(actualA, expectedA) * len(ratingsA),
		DeltaB:      perPlayerDelta(actualB, expectedB) * len(ratingsB),
		TeamRatingA: teamA,
		TeamRatingB: teamB,
		ExpectedA:   expectedA,
	}
}

// perPlayerDelta applies the asymmetric scaling: gains are doubled
// before rounding, losses are left unscaled.
func perPlayerDelta(actual, expected float64) int {
	raw := K * (actual - expected)
	if raw > 0 {
		raw *= winBonusFactor
	}
	return int(math.Round(raw))
}

func mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

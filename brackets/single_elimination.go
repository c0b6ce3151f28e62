package brackets

import (
	"errors"
	"fmt"

	"github.com/gonect/foosball-ladder/models"
)

const FormatSingleElimination = "single_elimination"

// byeSentinel pads the seed list up to the next power of two.
const byeSentinel = ""

var ErrNotEnoughTeams = errors.New("not enough teams to generate a single elimination bracket (minimum 2)")

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() Generator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) Name() string {
	return FormatSingleElimination
}

// Generate builds the complete bracket for the given seed order.
//
// The seed list is padded with byes up to the next power of two and
// paired by folding it from both ends inward (top seed vs weakest
// seed), which hands the byes to the top seeds and keeps them apart in
// round one. Bye slots are born completed with a synthetic 1-0 score.
// Every non-final slot gets its winner destination (NextMatchID and
// NextSlot side) fixed here; round-one bye winners are propagated into
// their destination immediately.
func (g *SingleEliminationGenerator) Generate(seededTeamIDs []string) ([]models.TournamentMatchSlot, error) {
	n := len(seededTeamIDs)
	if n < 2 {
		return nil, ErrNotEnoughTeams
	}

	bracketSize := nextPowerOfTwo(n)
	totalRounds := log2(bracketSize)

	seeded := make([]string, 0, bracketSize)
	seeded = append(seeded, seededTeamIDs...)
	for i := n; i < bracketSize; i++ {
		seeded = append(seeded, byeSentinel)
	}

	firstRound := make([]models.TournamentMatchSlot, 0, bracketSize/2)
	for l, r := 0, len(seeded)-1; l < r; l, r = l+1, r-1 {
		high, low := seeded[l], seeded[r]
		slot := models.TournamentMatchSlot{
			MatchID:    slotID(0, len(firstRound)),
			RoundIndex: 0,
			RoundName:  roundName(0, totalRounds),
			Status:     models.SlotStatusScheduled,
		}
		if low == byeSentinel {
			// The real team advances without playing.
			slot.TeamAID = strPtr(high)
			slot.WinnerID = strPtr(high)
			slot.ScoreA = intPtr(1)
			slot.ScoreB = intPtr(0)
			slot.Status = models.SlotStatusCompleted
			slot.IsBye = true
		} else {
			slot.TeamAID = strPtr(high)
			slot.TeamBID = strPtr(low)
		}
		firstRound = append(firstRound, slot)
	}

	rounds := [][]models.TournamentMatchSlot{firstRound}
	for rIdx := 1; len(rounds[rIdx-1]) > 1; rIdx++ {
		prev := rounds[rIdx-1]
		next := make([]models.TournamentMatchSlot, 0, len(prev)/2)
		for i := 0; i < len(prev); i += 2 {
			m1 := &prev[i]
			m2 := &prev[i+1]

			id := slotID(rIdx, len(next))
			m1.NextMatchID = strPtr(id)
			m1.NextSlot = sidePtr(models.BracketSideA)
			m2.NextMatchID = strPtr(id)
			m2.NextSlot = sidePtr(models.BracketSideB)

			slot := models.TournamentMatchSlot{
				MatchID:    id,
				RoundIndex: rIdx,
				RoundName:  roundName(rIdx, totalRounds),
				Status:     models.SlotStatusScheduled,
			}
			// Bye winners are already decided and flow forward now.
			if m1.WinnerID != nil {
				slot.TeamAID = strPtr(*m1.WinnerID)
			}
			if m2.WinnerID != nil {
				slot.TeamBID = strPtr(*m2.WinnerID)
			}
			next = append(next, slot)
		}
		rounds = append(rounds, next)
	}

	bracket := make([]models.TournamentMatchSlot, 0, bracketSize-1)
	for _, round := range rounds {
		bracket = append(bracket, round...)
	}
	return bracket, nil
}

func slotID(roundIdx, matchIdx int) string {
	return fmt.Sprintf("ko_r%d_m%d", roundIdx, matchIdx)
}

func roundName(roundIdx, totalRounds int) string {
	switch totalRounds - roundIdx {
	case 1:
		return "Final"
	case 2:
		return "Semi-final"
	case 3:
		return "Quarter-final"
	default:
		return fmt.Sprintf("Round %d", roundIdx+1)
	}
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

func log2(powerOfTwo int) int {
	rounds := 0
	for v := powerOfTwo; v > 1; v /= 2 {
		rounds++
	}
	return rounds
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func sidePtr(s models.BracketSide) *models.BracketSide { return &s }

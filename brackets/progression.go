package brackets

import (
	"errors"

	"github.com/gonect/foosball-ladder/models"
)

var (
	ErrSlotNotFound    = errors.New("bracket slot not found")
	ErrScoresEqual     = errors.New("knockout matches cannot end in a draw")
	ErrInvalidScore    = errors.New("scores must be non-negative")
	ErrSlotTeamsNotSet = errors.New("bracket slot teams are not decided yet")
)

// Outcome reports what applying a score to a bracket slot changed, so
// the caller can apply the matching roster side effects.
type Outcome struct {
	// FirstCompletion is false when the slot already held a result;
	// re-submissions update the score but must not re-apply stats.
	FirstCompletion bool
	// CrawlTeamIDs lists the sides that were shut out, only on first
	// completion.
	CrawlTeamIDs []string
	WinnerTeamID string
	// FinalCompleted is set when the scored slot was the final.
	FinalCompleted bool
	// NewChampion is set the one time the tournament transitions to
	// completed; terminal rewards hang off this flag.
	NewChampion bool
}

// ApplyScore records a result on one bracket slot and advances the
// bracket: it decides the winner, propagates it into the destination
// slot, and on the final marks the whole tournament completed. The
// tournament is mutated in place; persisting it is the caller's job.
func ApplyScore(t *models.Tournament, matchID string, scoreA, scoreB int) (Outcome, error) {
	slot := t.SlotByMatchID(matchID)
	if slot == nil {
		return Outcome{}, ErrSlotNotFound
	}
	if scoreA < 0 || scoreB < 0 {
		return Outcome{}, ErrInvalidScore
	}
	if scoreA == scoreB {
		return Outcome{}, ErrScoresEqual
	}
	if slot.TeamAID == nil || slot.TeamBID == nil {
		return Outcome{}, ErrSlotTeamsNotSet
	}

	wasCompleted := slot.Status == models.SlotStatusCompleted

	slot.ScoreA = intPtr(scoreA)
	slot.ScoreB = intPtr(scoreB)
	slot.Status = models.SlotStatusCompleted

	winnerID := *slot.TeamAID
	if scoreB > scoreA {
		winnerID = *slot.TeamBID
	}
	slot.WinnerID = strPtr(winnerID)

	out := Outcome{
		FirstCompletion: !wasCompleted,
		WinnerTeamID:    winnerID,
	}
	// A crawl is a shutout: zero own goals against a positive score.
	if !wasCompleted {
		if scoreA == 0 && scoreB > 0 {
			out.CrawlTeamIDs = append(out.CrawlTeamIDs, *slot.TeamAID)
		}
		if scoreB == 0 && scoreA > 0 {
			out.CrawlTeamIDs = append(out.CrawlTeamIDs, *slot.TeamBID)
		}
	}

	if slot.NextMatchID != nil {
		next := t.SlotByMatchID(*slot.NextMatchID)
		if next != nil && slot.NextSlot != nil {
			switch *slot.NextSlot {
			case models.BracketSideA:
				next.TeamAID = strPtr(winnerID)
			case models.BracketSideB:
				next.TeamBID = strPtr(winnerID)
			}
		}
		return out, nil
	}

	// This was the final.
	wasTournamentCompleted := t.Status == models.TournamentStatusCompleted
	t.WinnerTeamID = strPtr(winnerID)
	t.Status = models.TournamentStatusCompleted

	out.FinalCompleted = true
	out.NewChampion = !wasTournamentCompleted
	return out, nil
}

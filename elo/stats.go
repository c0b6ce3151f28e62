package elo

import (
	"math"
	"sort"

	"github.com/gonect/foosball-ladder/models"
)

// ApplyMatch applies one match's outcome to the affected roster entries
// in place. The team-total delta is split evenly across teammates; the
// share is left unrounded, so 2v2 halves stay fractional until the
// final rounding against the player's rating. Applying matches out of
// chronological order corrupts streak counters. Unknown player ids are
// skipped.
func ApplyMatch(m models.Match, players map[string]*models.Player) {
	shareA := float64(m.RatingDeltaA) / float64(len(m.TeamAIDs))
	shareB := float64(m.RatingDeltaB) / float64(len(m.TeamBIDs))

	applySide(m.TeamAIDs, shareA, m.ScoreA, m.ScoreB, players)
	applySide(m.TeamBIDs, shareB, m.ScoreB, m.ScoreA, players)
}

func applySide(ids []string, share float64, own, opp int, players map[string]*models.Player) {
	for _, id := range ids {
		p, ok := players[id]
		if !ok {
			continue
		}

		p.Rating = int(math.Round(math.Max(0, float64(p.Rating)+share)))

		p.GoalsFor += own
		p.GoalsAgainst += opp

		if own == 0 && opp > 0 {
			p.Crawls++
		}

		switch {
		case own > opp:
			p.Wins++
			p.CurrentStreak++
			if p.CurrentStreak > p.MaxStreak {
				p.MaxStreak = p.CurrentStreak
			}
		case own < opp:
			p.Losses++
			p.CurrentStreak = 0
		default:
			p.Draws++
			p.CurrentStreak = 0
		}
	}
}

// Recompute resets every player to baseline and replays the whole match
// log oldest-first. Input order is irrelevant, the log is sorted before
// the replay. Called after a match is deleted so the roster never
// drifts from the log.
//
// Tournament championship bonuses are not rederived here: tournaments
// are stored outside the match log, so a replay of matches alone cannot
// reconstruct them.
func Recompute(players []*models.Player, matches []models.Match) {
	byID := make(map[string]*models.Player, len(players))
	for _, p := range players {
		resetStats(p)
		byID[p.ID] = p
	}

	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	for _, m := range ordered {
		ApplyMatch(m, byID)
	}
}

func resetStats(p *models.Player) {
	p.Rating = models.StartingRating
	p.Wins = 0
	p.Losses = 0
	p.Draws = 0
	p.Crawls = 0
	p.CurrentStreak = 0
	p.MaxStreak = 0
	p.GoalsFor = 0
	p.GoalsAgainst = 0
	p.TournamentWins = 0
}

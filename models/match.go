package models

import "time"

type MatchType string

const (
	MatchType1v1 MatchType = "1v1"
	MatchType2v2 MatchType = "2v2"
)

type MatchContext string

const (
	MatchContextDaily      MatchContext = "daily"
	MatchContextTournament MatchContext = "tournament"
)

// Match is an immutable entry of the append-only match log. Deleting a
// match forces a full statistics recomputation over the remaining log.
type Match struct {
	ID           string       `json:"id" db:"id"`
	Date         time.Time    `json:"date" db:"date"`
	Type         MatchType    `json:"type" db:"type"`
	Context      MatchContext `json:"context" db:"context"`
	TournamentID *string      `json:"tournament_id,omitempty" db:"tournament_id"`

	TeamAIDs []string `json:"team_a_ids" db:"team_a_ids"`
	TeamBIDs []string `json:"team_b_ids" db:"team_b_ids"`
	ScoreA   int      `json:"score_a" db:"score_a"`
	ScoreB   int      `json:"score_b" db:"score_b"`

	// Team-total rating deltas as applied to each side, plus the
	// pre-match team ratings and expected score kept for audit.
	RatingDeltaA   int     `json:"rating_delta_a" db:"rating_delta_a"`
	RatingDeltaB   int     `json:"rating_delta_b" db:"rating_delta_b"`
	TeamARatingPre float64 `json:"team_a_rating_pre" db:"team_a_rating_pre"`
	TeamBRatingPre float64 `json:"team_b_rating_pre" db:"team_b_rating_pre"`
	ExpectedScoreA float64 `json:"expected_score_a" db:"expected_score_a"`
}

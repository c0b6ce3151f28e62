package models

import "time"

type TournamentStatus string

const (
	TournamentStatusKnockout  TournamentStatus = "knockout_stage"
	TournamentStatusCompleted TournamentStatus = "completed"
)

type SlotStatus string

const (
	SlotStatusScheduled SlotStatus = "scheduled"
	SlotStatusActive    SlotStatus = "active"
	SlotStatusCompleted SlotStatus = "completed"
)

// BracketSide identifies which side of a downstream slot a winner
// advances into.
type BracketSide string

const (
	BracketSideA BracketSide = "A"
	BracketSideB BracketSide = "B"
)

// TournamentTeam is an entry of one tournament, referencing one or two
// roster players. The group-stage counters are part of the stored shape
// but no group-stage logic exists; they stay zero in knockout play.
type TournamentTeam struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	PlayerIDs []string `json:"player_ids"`

	MatchesPlayed int `json:"matches_played"`
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsFor      int `json:"goals_for"`
	GoalsAgainst  int `json:"goals_against"`
	Points        int `json:"points"`
}

// TournamentMatchSlot is one node of the single-elimination bracket.
// NextMatchID/NextSlot are fixed at generation time; they are the only
// linkage between rounds.
type TournamentMatchSlot struct {
	MatchID    string     `json:"match_id"`
	RoundIndex int        `json:"round_index"`
	RoundName  string     `json:"round_name"`
	TeamAID    *string    `json:"team_a_id,omitempty"`
	TeamBID    *string    `json:"team_b_id,omitempty"`
	ScoreA     *int       `json:"score_a,omitempty"`
	ScoreB     *int       `json:"score_b,omitempty"`
	WinnerID   *string    `json:"winner_id,omitempty"`
	Status     SlotStatus `json:"status"`
	IsBye      bool       `json:"is_bye,omitempty"`

	NextMatchID *string      `json:"next_match_id,omitempty"`
	NextSlot    *BracketSide `json:"next_slot,omitempty"`
}

type Tournament struct {
	ID           string                `json:"id" db:"id"`
	Name         string                `json:"name" db:"name"`
	Date         time.Time             `json:"date" db:"date"`
	Status       TournamentStatus      `json:"status" db:"status"`
	TeamSize     MatchType             `json:"team_size" db:"team_size"`
	Teams        []TournamentTeam      `json:"teams" db:"-"`
	Bracket      []TournamentMatchSlot `json:"bracket" db:"-"`
	WinnerTeamID *string               `json:"winner_team_id,omitempty" db:"winner_team_id"`
}

// TeamByID returns the tournament team with the given id, or nil.
func (t *Tournament) TeamByID(id string) *TournamentTeam {
	for i := range t.Teams {
		if t.Teams[i].ID == id {
			return &t.Teams[i]
		}
	}
	return nil
}

// SlotByMatchID returns the bracket slot with the given match id, or nil.
func (t *Tournament) SlotByMatchID(matchID string) *TournamentMatchSlot {
	for i := range t.Bracket {
		if t.Bracket[i].MatchID == matchID {
			return &t.Bracket[i]
		}
	}
	return nil
}

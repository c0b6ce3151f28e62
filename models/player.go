package models

import "time"

// PlayerLevel is a display title derived from the current rating.
type PlayerLevel string

const (
	LevelNoob         PlayerLevel = "Noob"
	LevelBeginner     PlayerLevel = "Beginner"
	LevelAmateur      PlayerLevel = "Amateur"
	LevelProfessional PlayerLevel = "Professional"
	LevelExpert       PlayerLevel = "Expert"
	LevelTopTier      PlayerLevel = "Top Tier"
)

// StartingRating is the baseline every new player begins with and the
// value the recomputation engine resets to before a replay.
const StartingRating = 300

type Player struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Nickname   string    `json:"nickname,omitempty" db:"nickname"`
	Department string    `json:"department,omitempty" db:"department"`
	JoinedAt   time.Time `json:"joined_at" db:"joined_at"`

	AvatarKey *string `json:"-" db:"avatar_key"`
	AvatarURL *string `json:"avatar_url,omitempty" db:"-"`

	// Aggregate statistics. Mutated only by the elo package, either
	// directly after a match or via a full recomputation.
	Rating         int `json:"rating" db:"rating"`
	Wins           int `json:"wins" db:"wins"`
	Losses         int `json:"losses" db:"losses"`
	Draws          int `json:"draws" db:"draws"`
	Crawls         int `json:"crawls" db:"crawls"`
	CurrentStreak  int `json:"current_streak" db:"current_streak"`
	MaxStreak      int `json:"max_streak" db:"max_streak"`
	GoalsFor       int `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int `json:"goals_against" db:"goals_against"`
	TournamentWins int `json:"tournament_wins" db:"tournament_wins"`
}

// Level maps the rating to a display title.
func (p Player) Level() PlayerLevel {
	switch {
	case p.Rating < 500:
		return LevelNoob
	case p.Rating < 800:
		return LevelBeginner
	case p.Rating < 1000:
		return LevelAmateur
	case p.Rating < 1200:
		return LevelProfessional
	case p.Rating < 1500:
		return LevelExpert
	default:
		return LevelTopTier
	}
}

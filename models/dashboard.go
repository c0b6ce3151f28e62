package models

type DashboardStats struct {
	PlayersTotal      int     `json:"players_total"`
	MatchesTotal      int     `json:"matches_total"`
	TournamentsTotal  int     `json:"tournaments_total"`
	ActiveTournaments int     `json:"active_tournaments"`
	TopPlayer         *Player `json:"top_player,omitempty"`
	RecentMatches     []Match `json:"recent_matches"`
}

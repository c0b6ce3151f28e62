package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/gonect/foosball-ladder/models"
	"github.com/gonect/foosball-ladder/repositories"
)

const recentMatchesLimit = 5

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
}

func NewDashboardService(playerRepo repositories.PlayerRepository, matchRepo repositories.MatchRepository, tournamentRepo repositories.TournamentRepository) DashboardService {
	return &dashboardService{playerRepo: playerRepo, matchRepo: matchRepo, tournamentRepo: tournamentRepo}
}

// Stats aggregates the landing-page numbers. The queries are
// independent, so they run concurrently.
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.playerRepo.Count(ctx)
		stats.PlayersTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.matchRepo.Count(ctx)
		stats.MatchesTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.tournamentRepo.Count(ctx, nil)
		stats.TournamentsTotal = count
		return err
	})
	g.Go(func() error {
		active := models.TournamentStatusKnockout
		count, err := s.tournamentRepo.Count(ctx, &active)
		stats.ActiveTournaments = count
		return err
	})
	g.Go(func() error {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return err
		}
		if len(players) > 0 {
			top := players[0]
			stats.TopPlayer = &top
		}
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListRecent(ctx, recentMatchesLimit)
		stats.RecentMatches = matches
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if stats.RecentMatches == nil {
		stats.RecentMatches = []models.Match{}
	}
	return &stats, nil
}

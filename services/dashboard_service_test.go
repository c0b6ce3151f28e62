package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonect/foosball-ladder/models"
)

func TestDashboardStats(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		rosterPlayer("alice", 520),
		rosterPlayer("bob", 340),
	)

	matchRepo := &fakeMatchRepo{}
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		matchRepo.matches = append(matchRepo.matches, models.Match{
			ID:       string(rune('A' + i)),
			Date:     base.Add(time.Duration(i) * time.Hour),
			TeamAIDs: []string{"alice"},
			TeamBIDs: []string{"bob"},
		})
	}

	tournamentRepo := newFakeTournamentRepo()
	require.NoError(t, tournamentRepo.Create(context.Background(), &models.Tournament{
		ID: "t1", Status: models.TournamentStatusKnockout,
	}))
	require.NoError(t, tournamentRepo.Create(context.Background(), &models.Tournament{
		ID: "t2", Status: models.TournamentStatusCompleted,
	}))

	svc := NewDashboardService(playerRepo, matchRepo, tournamentRepo)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.PlayersTotal)
	assert.Equal(t, 7, stats.MatchesTotal)
	assert.Equal(t, 2, stats.TournamentsTotal)
	assert.Equal(t, 1, stats.ActiveTournaments)

	require.NotNil(t, stats.TopPlayer)
	assert.Equal(t, "alice", stats.TopPlayer.ID)

	require.Len(t, stats.RecentMatches, 5)
	assert.Equal(t, "G", stats.RecentMatches[0].ID)
}

func TestDashboardStatsEmpty(t *testing.T) {
	svc := NewDashboardService(newFakePlayerRepo(), &fakeMatchRepo{}, newFakeTournamentRepo())
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.PlayersTotal)
	assert.Nil(t, stats.TopPlayer)
	assert.NotNil(t, stats.RecentMatches)
	assert.Empty(t, stats.RecentMatches)
}

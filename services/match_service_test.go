package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonect/foosball-ladder/models"
)

func rosterPlayer(id string, rating int) *models.Player {
	return &models.Player{ID: id, Name: id, Rating: rating}
}

func TestRecordMatchUpdatesRatings(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		rosterPlayer("alice", 400),
		rosterPlayer("bob", 400),
	)
	matchRepo := &fakeMatchRepo{}
	svc := NewMatchService(matchRepo, playerRepo, testLogger())

	result, err := svc.Record(context.Background(), RecordMatchInput{
		TeamAIDs: []string{"alice"},
		TeamBIDs: []string{"bob"},
		ScoreA:   10,
		ScoreB:   3,
	})
	require.NoError(t, err)

	assert.Equal(t, 32, result.Match.RatingDeltaA)
	assert.Equal(t, -16, result.Match.RatingDeltaB)
	assert.Equal(t, models.MatchType1v1, result.Match.Type)
	assert.Equal(t, models.MatchContextDaily, result.Match.Context)
	assert.NotEmpty(t, result.Match.ID)

	alice, err := playerRepo.GetByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 432, alice.Rating)
	assert.Equal(t, 1, alice.Wins)
	assert.Equal(t, 1, alice.CurrentStreak)

	bob, err := playerRepo.GetByID(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, 384, bob.Rating)
	assert.Equal(t, 1, bob.Losses)

	assert.Len(t, matchRepo.matches, 1)
}

func TestRecordMatchCountsShutoutAsCrawl(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		rosterPlayer("alice", 400),
		rosterPlayer("bob", 400),
	)
	svc := NewMatchService(&fakeMatchRepo{}, playerRepo, testLogger())

	_, err := svc.Record(context.Background(), RecordMatchInput{
		TeamAIDs: []string{"alice"},
		TeamBIDs: []string{"bob"},
		ScoreA:   10,
		ScoreB:   0,
	})
	require.NoError(t, err)

	bob, err := playerRepo.GetByID(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, bob.Crawls)
}

func TestRecordMatchValidation(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		rosterPlayer("alice", 400),
		rosterPlayer("bob", 400),
		rosterPlayer("carol", 400),
		rosterPlayer("dave", 400),
	)
	svc := NewMatchService(&fakeMatchRepo{}, playerRepo, testLogger())
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RecordMatchInput
		wantErr error
	}{
		{
			name:    "equal scores",
			input:   RecordMatchInput{TeamAIDs: []string{"alice"}, TeamBIDs: []string{"bob"}, ScoreA: 5, ScoreB: 5},
			wantErr: ErrScoresEqual,
		},
		{
			name:    "negative score",
			input:   RecordMatchInput{TeamAIDs: []string{"alice"}, TeamBIDs: []string{"bob"}, ScoreA: -1, ScoreB: 3},
			wantErr: ErrInvalidScore,
		},
		{
			name:    "mismatched team sizes",
			input:   RecordMatchInput{TeamAIDs: []string{"alice", "carol"}, TeamBIDs: []string{"bob"}, ScoreA: 10, ScoreB: 3},
			wantErr: ErrInvalidTeamSize,
		},
		{
			name:    "empty side",
			input:   RecordMatchInput{TeamAIDs: nil, TeamBIDs: []string{"bob"}, ScoreA: 10, ScoreB: 3},
			wantErr: ErrInvalidTeamSize,
		},
		{
			name:    "player on both sides",
			input:   RecordMatchInput{TeamAIDs: []string{"alice"}, TeamBIDs: []string{"alice"}, ScoreA: 10, ScoreB: 3},
			wantErr: ErrDuplicatePlayer,
		},
		{
			name:    "unknown player",
			input:   RecordMatchInput{TeamAIDs: []string{"alice"}, TeamBIDs: []string{"ghost"}, ScoreA: 10, ScoreB: 3},
			wantErr: ErrPlayerNotFound,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDeleteMatchReplaysRemainingHistory(t *testing.T) {
	playerRepo := newFakePlayerRepo(
		rosterPlayer("alice", models.StartingRating),
		rosterPlayer("bob", models.StartingRating),
	)
	matchRepo := &fakeMatchRepo{}
	svc := NewMatchService(matchRepo, playerRepo, testLogger())
	ctx := context.Background()

	first, err := svc.Record(ctx, RecordMatchInput{
		TeamAIDs: []string{"alice"}, TeamBIDs: []string{"bob"}, ScoreA: 10, ScoreB: 4,
	})
	require.NoError(t, err)
	_, err = svc.Record(ctx, RecordMatchInput{
		TeamAIDs: []string{"alice"}, TeamBIDs: []string{"bob"}, ScoreA: 8, ScoreB: 10,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, first.Match.ID))

	// Only the second match remains. The replay applies its recorded
	// deltas (-18/+36, computed when the ratings were 332/284) on top
	// of the starting rating.
	alice, err := playerRepo.GetByID(ctx, "alice")
	require.NoError(t, err)
	bob, err := playerRepo.GetByID(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, 282, alice.Rating)
	assert.Equal(t, 336, bob.Rating)
	assert.Equal(t, 0, alice.Wins)
	assert.Equal(t, 1, alice.Losses)
	assert.Equal(t, 1, bob.Wins)
	assert.Equal(t, 1, bob.CurrentStreak)
}

func TestDeleteMatchNotFound(t *testing.T) {
	svc := NewMatchService(&fakeMatchRepo{}, newFakePlayerRepo(), testLogger())
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

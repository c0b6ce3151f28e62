package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gonect/foosball-ladder/elo"
	"github.com/gonect/foosball-ladder/models"
	"github.com/gonect/foosball-ladder/repositories"
)

// RecordMatchInput describes a finished daily match as submitted by a client.
type RecordMatchInput struct {
	TeamAIDs []string
	TeamBIDs []string
	ScoreA   int
	ScoreB   int
}

// RecordMatchResult carries the persisted match together with the players
// whose ratings it changed.
type RecordMatchResult struct {
	Match models.Match
	// Players holds only the match participants with their updated
	// statistics, not the full roster; clients needing the whole
	// leaderboard fetch the player list.
	Players []*models.Player
}

type MatchService interface {
	Record(ctx context.Context, input RecordMatchInput) (*RecordMatchResult, error)
	Delete(ctx context.Context, matchID string) error
	List(ctx context.Context) ([]models.Match, error)
}

type matchService struct {
	matchRepo  repositories.MatchRepository
	playerRepo repositories.PlayerRepository
	log        *slog.Logger
}

func NewMatchService(matchRepo repositories.MatchRepository, playerRepo repositories.PlayerRepository, log *slog.Logger) MatchService {
	return &matchService{matchRepo: matchRepo, playerRepo: playerRepo, log: log}
}

func (s *matchService) Record(ctx context.Context, input RecordMatchInput) (*RecordMatchResult, error) {
	if err := validateSides(input.TeamAIDs, input.TeamBIDs); err != nil {
		return nil, err
	}
	if input.ScoreA < 0 || input.ScoreB < 0 {
		return nil, ErrInvalidScore
	}
	if input.ScoreA == input.ScoreB {
		return nil, ErrScoresEqual
	}

	ids := append(append([]string{}, input.TeamAIDs...), input.TeamBIDs...)
	players, err := s.playerRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading match players: %w", err)
	}
	byID := make(map[string]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
		}
	}

	result := elo.CalculateMatch(ratingsOf(byID, input.TeamAIDs), ratingsOf(byID, input.TeamBIDs), input.ScoreA, input.ScoreB)

	matchType := models.MatchType1v1
	if len(input.TeamAIDs) == 2 {
		matchType = models.MatchType2v2
	}
	match := models.Match{
		ID:             uuid.NewString(),
		Date:           time.Now().UTC(),
		Type:           matchType,
		Context:        models.MatchContextDaily,
		TeamAIDs:       input.TeamAIDs,
		TeamBIDs:       input.TeamBIDs,
		ScoreA:         input.ScoreA,
		ScoreB:         input.ScoreB,
		RatingDeltaA:   result.DeltaA,
		RatingDeltaB:   result.DeltaB,
		TeamARatingPre: result.TeamRatingA,
		TeamBRatingPre: result.TeamRatingB,
		ExpectedScoreA: result.ExpectedA,
	}

	elo.ApplyMatch(match, byID)

	if err := s.matchRepo.Create(ctx, &match); err != nil {
		return nil, fmt.Errorf("saving match: %w", err)
	}
	if err := s.playerRepo.SaveStats(ctx, players); err != nil {
		return nil, fmt.Errorf("saving player stats: %w", err)
	}

	s.log.Info("match recorded",
		"match_id", match.ID,
		"type", match.Type,
		"score", fmt.Sprintf("%d:%d", match.ScoreA, match.ScoreB),
		"delta_a", match.RatingDeltaA,
		"delta_b", match.RatingDeltaB,
	)

	return &RecordMatchResult{Match: match, Players: players}, nil
}

// Delete removes a match and rebuilds every player's statistics by replaying
// the remaining match history from scratch.
func (s *matchService) Delete(ctx context.Context, matchID string) error {
	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("deleting match: %w", err)
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading players for recompute: %w", err)
	}
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading matches for recompute: %w", err)
	}

	ptrs := make([]*models.Player, len(players))
	for i := range players {
		ptrs[i] = &players[i]
	}
	elo.Recompute(ptrs, matches)

	if err := s.playerRepo.SaveStats(ctx, ptrs); err != nil {
		return fmt.Errorf("saving recomputed stats: %w", err)
	}

	s.log.Info("match deleted, history replayed", "match_id", matchID, "matches_replayed", len(matches))
	return nil
}

func (s *matchService) List(ctx context.Context) ([]models.Match, error) {
	return s.matchRepo.List(ctx)
}

func validateSides(teamA, teamB []string) error {
	if len(teamA) < 1 || len(teamA) > 2 || len(teamA) != len(teamB) {
		return ErrInvalidTeamSize
	}
	seen := make(map[string]struct{}, len(teamA)+len(teamB))
	for _, id := range append(append([]string{}, teamA...), teamB...) {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func ratingsOf(byID map[string]*models.Player, ids []string) []int {
	ratings := make([]int, len(ids))
	for i, id := range ids {
		ratings[i] = byID[id].Rating
	}
	return ratings
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/gonect/foosball-ladder/brackets"
	"github.com/gonect/foosball-ladder/models"
	"github.com/gonect/foosball-ladder/repositories"
)

// championRatingBonus is added to every champion's rating when the final
// completes for the first time.
const championRatingBonus = 100

// TournamentTeamInput is one entry of a tournament to be created.
type TournamentTeamInput struct {
	Name      string
	PlayerIDs []string
}

type CreateTournamentInput struct {
	Name     string
	TeamSize models.MatchType
	Teams    []TournamentTeamInput
}

type SubmitScoreInput struct {
	TournamentID string
	MatchID      string
	ScoreA       int
	ScoreB       int
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Delete(ctx context.Context, id string) error
	SubmitScore(ctx context.Context, input SubmitScoreInput) (*models.Tournament, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	hub            *brackets.Hub
	log            *slog.Logger
}

// NewTournamentService wires the knockout engine to persistence and the
// live-update hub. hub may be nil when websockets are disabled.
func NewTournamentService(tournamentRepo repositories.TournamentRepository, playerRepo repositories.PlayerRepository, hub *brackets.Hub, log *slog.Logger) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo, playerRepo: playerRepo, hub: hub, log: log}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if len(input.Teams) < 2 {
		return nil, ErrNotEnoughTeams
	}
	playersPerTeam := 1
	if input.TeamSize == models.MatchType2v2 {
		playersPerTeam = 2
	}

	seenPlayers := make(map[string]struct{})
	var allPlayerIDs []string
	teams := make([]models.TournamentTeam, 0, len(input.Teams))
	for _, in := range input.Teams {
		if in.Name == "" {
			return nil, fmt.Errorf("%w: every team needs a name", ErrTeamPlayersInvalid)
		}
		if len(in.PlayerIDs) != playersPerTeam {
			return nil, fmt.Errorf("%w: team %q has %d players, want %d", ErrTeamPlayersInvalid, in.Name, len(in.PlayerIDs), playersPerTeam)
		}
		for _, id := range in.PlayerIDs {
			if _, dup := seenPlayers[id]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
			}
			seenPlayers[id] = struct{}{}
			allPlayerIDs = append(allPlayerIDs, id)
		}
		teams = append(teams, models.TournamentTeam{
			ID:        uuid.NewString(),
			Name:      in.Name,
			PlayerIDs: in.PlayerIDs,
		})
	}

	known, err := s.playerRepo.ListByIDs(ctx, allPlayerIDs)
	if err != nil {
		return nil, fmt.Errorf("loading tournament players: %w", err)
	}
	if len(known) != len(allPlayerIDs) {
		knownIDs := make(map[string]struct{}, len(known))
		for _, p := range known {
			knownIDs[p.ID] = struct{}{}
		}
		for _, id := range allPlayerIDs {
			if _, ok := knownIDs[id]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
			}
		}
	}

	// Random seeding: entry order carries no meaning.
	seeds := make([]string, len(teams))
	for i, team := range teams {
		seeds[i] = team.ID
	}
	rand.Shuffle(len(seeds), func(i, j int) { seeds[i], seeds[j] = seeds[j], seeds[i] })

	generator, err := brackets.ForFormat(brackets.FormatSingleElimination)
	if err != nil {
		return nil, err
	}
	bracket, err := generator.Generate(seeds)
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughTeams) {
			return nil, ErrNotEnoughTeams
		}
		return nil, fmt.Errorf("generating bracket: %w", err)
	}

	tournament := &models.Tournament{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Date:     time.Now().UTC(),
		Status:   models.TournamentStatusKnockout,
		TeamSize: input.TeamSize,
		Teams:    teams,
		Bracket:  bracket,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("saving tournament: %w", err)
	}

	s.log.Info("tournament created",
		"tournament_id", tournament.ID,
		"name", tournament.Name,
		"teams", len(tournament.Teams),
		"bracket_slots", len(tournament.Bracket),
	)
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	return nil
}

// SubmitScore records a knockout result, advances the bracket, applies
// player side effects (crawls on first completion, champion rewards on
// the first completion of the final) and pushes live updates.
func (s *tournamentService) SubmitScore(ctx context.Context, input SubmitScoreInput) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	outcome, err := brackets.ApplyScore(tournament, input.MatchID, input.ScoreA, input.ScoreB)
	if err != nil {
		switch {
		case errors.Is(err, brackets.ErrSlotNotFound):
			return nil, ErrMatchSlotNotFound
		case errors.Is(err, brackets.ErrScoresEqual):
			return nil, ErrScoresEqual
		case errors.Is(err, brackets.ErrInvalidScore):
			return nil, ErrInvalidScore
		case errors.Is(err, brackets.ErrSlotTeamsNotSet):
			return nil, ErrSlotNotDecided
		default:
			return nil, err
		}
	}

	if err := s.applyPlayerRewards(ctx, tournament, outcome); err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		return nil, fmt.Errorf("saving tournament: %w", err)
	}

	s.broadcast(tournament, outcome)
	return tournament, nil
}

func (s *tournamentService) applyPlayerRewards(ctx context.Context, tournament *models.Tournament, outcome brackets.Outcome) error {
	var crawlPlayerIDs []string
	if outcome.FirstCompletion {
		for _, teamID := range outcome.CrawlTeamIDs {
			if team := tournament.TeamByID(teamID); team != nil {
				crawlPlayerIDs = append(crawlPlayerIDs, team.PlayerIDs...)
			}
		}
	}
	var championPlayerIDs []string
	if outcome.NewChampion {
		if team := tournament.TeamByID(outcome.WinnerTeamID); team != nil {
			championPlayerIDs = append(championPlayerIDs, team.PlayerIDs...)
		}
	}
	if len(crawlPlayerIDs) == 0 && len(championPlayerIDs) == 0 {
		return nil
	}

	affected := append(append([]string{}, crawlPlayerIDs...), championPlayerIDs...)
	players, err := s.playerRepo.ListByIDs(ctx, affected)
	if err != nil {
		return fmt.Errorf("loading affected players: %w", err)
	}
	byID := make(map[string]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	for _, id := range crawlPlayerIDs {
		if p, ok := byID[id]; ok {
			p.Crawls++
		}
	}
	for _, id := range championPlayerIDs {
		if p, ok := byID[id]; ok {
			p.Rating += championRatingBonus
			p.TournamentWins++
		}
	}

	if err := s.playerRepo.SaveStats(ctx, players); err != nil {
		return fmt.Errorf("saving player rewards: %w", err)
	}
	if outcome.NewChampion {
		s.log.Info("tournament completed",
			"tournament_id", tournament.ID,
			"winner_team_id", outcome.WinnerTeamID,
			"champions", len(championPlayerIDs),
		)
	}
	return nil
}

func (s *tournamentService) broadcast(tournament *models.Tournament, outcome brackets.Outcome) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(brackets.Event{
		Type:         brackets.EventBracketUpdated,
		TournamentID: tournament.ID,
		Payload:      tournament,
	})
	if outcome.NewChampion {
		s.hub.Broadcast(brackets.Event{
			Type:         brackets.EventTournamentCompleted,
			TournamentID: tournament.ID,
			Payload:      tournament,
		})
	}
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/gonect/foosball-ladder/models"
)

var ErrMatchNotFound = errors.New("match not found")

const matchColumns = `id, date, type, context, tournament_id, team_a_ids, team_b_ids,
	score_a, score_b, rating_delta_a, rating_delta_b,
	team_a_rating_pre, team_b_rating_pre, expected_score_a`

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	// List returns the whole match log, newest first. Consumers that
	// replay the log are expected to re-sort it themselves.
	List(ctx context.Context) ([]models.Match, error)
	ListRecent(ctx context.Context, limit int) ([]models.Match, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, date, type, context, tournament_id, team_a_ids, team_b_ids,
			score_a, score_b, rating_delta_a, rating_delta_b,
			team_a_rating_pre, team_b_rating_pre, expected_score_a)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		match.ID,
		match.Date,
		match.Type,
		match.Context,
		match.TournamentID,
		pq.Array(match.TeamAIDs),
		pq.Array(match.TeamBIDs),
		match.ScoreA,
		match.ScoreB,
		match.RatingDeltaA,
		match.RatingDeltaB,
		match.TeamARatingPre,
		match.TeamBRatingPre,
		match.ExpectedScoreA,
	)
	return err
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY date DESC`
	return r.queryMatches(ctx, query)
}

func (r *postgresMatchRepository) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY date DESC LIMIT $1`
	return r.queryMatches(ctx, query, limit)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...any) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := rows.Scan(
			&match.ID,
			&match.Date,
			&match.Type,
			&match.Context,
			&match.TournamentID,
			pq.Array(&match.TeamAIDs),
			pq.Array(&match.TeamBIDs),
			&match.ScoreA,
			&match.ScoreB,
			&match.RatingDeltaA,
			&match.RatingDeltaB,
			&match.TeamARatingPre,
			&match.TeamBRatingPre,
			&match.ExpectedScoreA,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

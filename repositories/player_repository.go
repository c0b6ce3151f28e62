package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/gonect/foosball-ladder/models"
)

var ErrPlayerNotFound = errors.New("player not found")

const playerColumns = `id, name, nickname, department, joined_at, avatar_key,
	rating, wins, losses, draws, crawls, current_streak, max_streak,
	goals_for, goals_against, tournament_wins`

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Player, error)
	// List returns the full roster ordered by rating, best first.
	List(ctx context.Context) ([]models.Player, error)
	UpdateProfile(ctx context.Context, player *models.Player) error
	// SaveStats writes every player's statistics bundle back; used
	// after match application, recomputation and tournament rewards.
	SaveStats(ctx context.Context, players []*models.Player) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, name, nickname, department, joined_at, avatar_key,
			rating, wins, losses, draws, crawls, current_streak, max_streak,
			goals_for, goals_against, tournament_wins)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.ExecContext(ctx, query,
		player.ID,
		player.Name,
		player.Nickname,
		player.Department,
		player.JoinedAt,
		player.AvatarKey,
		player.Rating,
		player.Wins,
		player.Losses,
		player.Draws,
		player.Crawls,
		player.CurrentStreak,
		player.MaxStreak,
		player.GoalsFor,
		player.GoalsAgainst,
		player.TournamentWins,
	)
	return err
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*models.Player, 0, len(ids))
	for rows.Next() {
		player, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY rating DESC, name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) UpdateProfile(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players
		SET name = $1, nickname = $2, department = $3, avatar_key = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		player.Name,
		player.Nickname,
		player.Department,
		player.AvatarKey,
		player.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SaveStats(ctx context.Context, players []*models.Player) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE players
		SET rating = $1, wins = $2, losses = $3, draws = $4, crawls = $5,
			current_streak = $6, max_streak = $7, goals_for = $8,
			goals_against = $9, tournament_wins = $10
		WHERE id = $11`
	for _, player := range players {
		if _, err := tx.ExecContext(ctx, query,
			player.Rating,
			player.Wins,
			player.Losses,
			player.Draws,
			player.Crawls,
			player.CurrentStreak,
			player.MaxStreak,
			player.GoalsFor,
			player.GoalsAgainst,
			player.TournamentWins,
			player.ID,
		); err != nil {
			return fmt.Errorf("failed to save stats for player %s: %w", player.ID, err)
		}
	}
	return tx.Commit()
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	player := &models.Player{}
	err := row.Scan(
		&player.ID,
		&player.Name,
		&player.Nickname,
		&player.Department,
		&player.JoinedAt,
		&player.AvatarKey,
		&player.Rating,
		&player.Wins,
		&player.Losses,
		&player.Draws,
		&player.Crawls,
		&player.CurrentStreak,
		&player.MaxStreak,
		&player.GoalsFor,
		&player.GoalsAgainst,
		&player.TournamentWins,
	)
	if err != nil {
		return nil, err
	}
	return player, nil
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gonect/foosball-ladder/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status *models.TournamentStatus) (int, error)
}

// postgresTournamentRepository stores each tournament as one row; the
// team list and the bracket are JSONB documents, the bracket being a
// deeply linked structure that is always loaded and saved whole.
type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	teams, bracket, err := marshalTournamentDocs(tournament)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tournaments (id, name, date, status, team_size, winner_team_id, teams, bracket)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.ExecContext(ctx, query,
		tournament.ID,
		tournament.Name,
		tournament.Date,
		tournament.Status,
		tournament.TeamSize,
		tournament.WinnerTeamID,
		teams,
		bracket,
	)
	return err
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `
		SELECT id, name, date, status, team_size, winner_team_id, teams, bracket
		FROM tournaments
		WHERE id = $1`
	tournament, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, name, date, status, team_size, winner_team_id, teams, bracket
		FROM tournaments
		ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		tournament, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, *tournament)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	teams, bracket, err := marshalTournamentDocs(tournament)
	if err != nil {
		return err
	}
	query := `
		UPDATE tournaments
		SET name = $1, status = $2, winner_team_id = $3, teams = $4, bracket = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		tournament.Name,
		tournament.Status,
		tournament.WinnerTeamID,
		teams,
		bracket,
		tournament.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Count(ctx context.Context, status *models.TournamentStatus) (int, error) {
	var count int
	var err error
	if status == nil {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments`).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments WHERE status = $1`, *status).Scan(&count)
	}
	return count, err
}

func marshalTournamentDocs(tournament *models.Tournament) (teams, bracket []byte, err error) {
	teams, err = json.Marshal(tournament.Teams)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal tournament teams: %w", err)
	}
	bracket, err = json.Marshal(tournament.Bracket)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal tournament bracket: %w", err)
	}
	return teams, bracket, nil
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	tournament := &models.Tournament{}
	var teams, bracket []byte
	err := row.Scan(
		&tournament.ID,
		&tournament.Name,
		&tournament.Date,
		&tournament.Status,
		&tournament.TeamSize,
		&tournament.WinnerTeamID,
		&teams,
		&bracket,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(teams, &tournament.Teams); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament teams: %w", err)
	}
	if err := json.Unmarshal(bracket, &tournament.Bracket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament bracket: %w", err)
	}
	return tournament, nil
}

package services

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/gonect/foosball-ladder/models"
	"github.com/gonect/foosball-ladder/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakePlayerRepo struct {
	players map[string]*models.Player
}

func newFakePlayerRepo(players ...*models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: make(map[string]*models.Player)}
	for _, p := range players {
		cp := *p
		repo.players[p.ID] = &cp
	}
	return repo
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	cp := *player
	r.players[player.ID] = &cp
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlayerRepo) ListByIDs(_ context.Context, ids []string) ([]*models.Player, error) {
	var out []*models.Player
	seen := make(map[string]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.players[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakePlayerRepo) UpdateProfile(_ context.Context, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	cp := *player
	r.players[player.ID] = &cp
	return nil
}

func (r *fakePlayerRepo) SaveStats(_ context.Context, players []*models.Player) error {
	for _, p := range players {
		if _, ok := r.players[p.ID]; !ok {
			return repositories.ErrPlayerNotFound
		}
		cp := *p
		r.players[p.ID] = &cp
	}
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *fakePlayerRepo) Count(_ context.Context) (int, error) {
	return len(r.players), nil
}

type fakeMatchRepo struct {
	matches []models.Match
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	r.matches = append(r.matches, *match)
	return nil
}

func (r *fakeMatchRepo) List(_ context.Context) ([]models.Match, error) {
	out := make([]models.Match, len(r.matches))
	copy(out, r.matches)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeMatchRepo) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.matches {
		if m.ID == id {
			r.matches = append(r.matches[:i], r.matches[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) Count(_ context.Context) (int, error) {
	return len(r.matches), nil
}

type fakeTournamentRepo struct {
	tournaments map[string]*models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[string]*models.Tournament)}
}

func (r *fakeTournamentRepo) Create(_ context.Context, tournament *models.Tournament) error {
	cp := cloneTournament(tournament)
	r.tournaments[tournament.ID] = cp
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return cloneTournament(t), nil
}

func (r *fakeTournamentRepo) List(_ context.Context) ([]models.Tournament, error) {
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, *cloneTournament(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, tournament *models.Tournament) error {
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[tournament.ID] = cloneTournament(tournament)
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *fakeTournamentRepo) Count(_ context.Context, status *models.TournamentStatus) (int, error) {
	if status == nil {
		return len(r.tournaments), nil
	}
	count := 0
	for _, t := range r.tournaments {
		if t.Status == *status {
			count++
		}
	}
	return count, nil
}

func cloneTournament(t *models.Tournament) *models.Tournament {
	cp := *t
	cp.Teams = append([]models.TournamentTeam(nil), t.Teams...)
	cp.Bracket = append([]models.TournamentMatchSlot(nil), t.Bracket...)
	return &cp
}

type fakeUserRepo struct {
	users map[string]*models.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

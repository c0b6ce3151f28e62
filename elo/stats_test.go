package elo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonect/foosball-ladder/models"
)

func newTestPlayer(id string, rating int) *models.Player {
	return &models.Player{ID: id, Name: id, Rating: rating}
}

func testMatch(date time.Time, teamA, teamB []string, scoreA, scoreB int, ratings map[string]int) models.Match {
	ra := make([]int, 0, len(teamA))
	for _, id := range teamA {
		ra = append(ra, ratings[id])
	}
	rb := make([]int, 0, len(teamB))
	for _, id := range teamB {
		rb = append(rb, ratings[id])
	}
	res := CalculateMatch(ra, rb, scoreA, scoreB)

	mt := models.MatchType1v1
	if len(teamA) == 2 {
		mt = models.MatchType2v2
	}
	return models.Match{
		ID:             date.String(),
		Date:           date,
		Type:           mt,
		Context:        models.MatchContextDaily,
		TeamAIDs:       teamA,
		TeamBIDs:       teamB,
		ScoreA:         scoreA,
		ScoreB:         scoreB,
		RatingDeltaA:   res.DeltaA,
		RatingDeltaB:   res.DeltaB,
		TeamARatingPre: res.TeamRatingA,
		TeamBRatingPre: res.TeamRatingB,
		ExpectedScoreA: res.ExpectedA,
	}
}

func TestApplyMatchShutoutWin(t *testing.T) {
	a := newTestPlayer("a", 400)
	b := newTestPlayer("b", 400)
	players := map[string]*models.Player{"a": a, "b": b}

	m := testMatch(time.Now(), []string{"a"}, []string{"b"}, 5, 0, map[string]int{"a": 400, "b": 400})
	require.Equal(t, 32, m.RatingDeltaA)
	require.Equal(t, -16, m.RatingDeltaB)

	ApplyMatch(m, players)

	assert.Equal(t, 432, a.Rating)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.CurrentStreak)
	assert.Equal(t, 1, a.MaxStreak)
	assert.Equal(t, 5, a.GoalsFor)
	assert.Equal(t, 0, a.GoalsAgainst)
	assert.Equal(t, 0, a.Crawls)

	assert.Equal(t, 384, b.Rating)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 0, b.CurrentStreak)
	assert.Equal(t, 1, b.Crawls, "shutout loss counts as a crawl")
	assert.Equal(t, 0, b.GoalsFor)
	assert.Equal(t, 5, b.GoalsAgainst)
}

func TestApplyMatchRatingFloor(t *testing.T) {
	a := newTestPlayer("a", 5)
	b := newTestPlayer("b", 5)
	players := map[string]*models.Player{"a": a, "b": b}

	m := testMatch(time.Now(), []string{"a"}, []string{"b"}, 10, 1, map[string]int{"a": 5, "b": 5})
	require.Equal(t, -16, m.RatingDeltaB)
	ApplyMatch(m, players)

	assert.Equal(t, 0, b.Rating, "rating is clamped at zero, not driven negative")
	assert.Equal(t, 37, a.Rating)
}

func TestApplyMatchSplitsTeamDelta(t *testing.T) {
	ratings := map[string]int{"a1": 400, "a2": 400, "b1": 400, "b2": 400}
	players := make(map[string]*models.Player, len(ratings))
	for id, r := range ratings {
		players[id] = newTestPlayer(id, r)
	}

	m := testMatch(time.Now(), []string{"a1", "a2"}, []string{"b1", "b2"}, 8, 3, ratings)
	require.Equal(t, 64, m.RatingDeltaA)
	require.Equal(t, -32, m.RatingDeltaB)

	ApplyMatch(m, players)

	assert.Equal(t, 432, players["a1"].Rating)
	assert.Equal(t, 432, players["a2"].Rating)
	assert.Equal(t, 384, players["b1"].Rating)
	assert.Equal(t, 384, players["b2"].Rating)
}

func TestApplyMatchSkipsUnknownPlayers(t *testing.T) {
	a := newTestPlayer("a", 400)
	players := map[string]*models.Player{"a": a}

	m := testMatch(time.Now(), []string{"a"}, []string{"ghost"}, 5, 2, map[string]int{"a": 400, "ghost": 400})
	ApplyMatch(m, players)

	assert.Equal(t, 1, a.Wins)
}

func TestApplyMatchStreaks(t *testing.T) {
	a := newTestPlayer("a", 400)
	b := newTestPlayer("b", 400)
	players := map[string]*models.Player{"a": a, "b": b}

	ratings := func() map[string]int {
		return map[string]int{"a": a.Rating, "b": b.Rating}
	}

	base := time.Now()
	ApplyMatch(testMatch(base, []string{"a"}, []string{"b"}, 5, 1, ratings()), players)
	ApplyMatch(testMatch(base.Add(time.Minute), []string{"a"}, []string{"b"}, 5, 2, ratings()), players)
	ApplyMatch(testMatch(base.Add(2*time.Minute), []string{"a"}, []string{"b"}, 5, 3, ratings()), players)
	assert.Equal(t, 3, a.CurrentStreak)
	assert.Equal(t, 3, a.MaxStreak)

	ApplyMatch(testMatch(base.Add(3*time.Minute), []string{"a"}, []string{"b"}, 0, 5, ratings()), players)
	assert.Equal(t, 0, a.CurrentStreak)
	assert.Equal(t, 3, a.MaxStreak, "max streak keeps the historical peak")
	assert.Equal(t, 1, a.Crawls)
	assert.Equal(t, 1, b.CurrentStreak)
}

func TestRecomputeMatchesIncrementalApplication(t *testing.T) {
	incremental := map[string]*models.Player{
		"a": newTestPlayer("a", models.StartingRating),
		"b": newTestPlayer("b", models.StartingRating),
		"c": newTestPlayer("c", models.StartingRating),
	}
	ratings := func() map[string]int {
		out := make(map[string]int, len(incremental))
		for id, p := range incremental {
			out[id] = p.Rating
		}
		return out
	}

	base := time.Now()
	var log []models.Match
	fixtures := []struct {
		teamA, teamB   []string
		scoreA, scoreB int
	}{
		{[]string{"a"}, []string{"b"}, 5, 3},
		{[]string{"b"}, []string{"c"}, 5, 0},
		{[]string{"c"}, []string{"a"}, 7, 5},
		{[]string{"a"}, []string{"c"}, 5, 4},
	}
	for i, f := range fixtures {
		m := testMatch(base.Add(time.Duration(i)*time.Minute), f.teamA, f.teamB, f.scoreA, f.scoreB, ratings())
		ApplyMatch(m, incremental)
		log = append(log, m)
	}

	replayed := []*models.Player{
		newTestPlayer("a", 999),
		newTestPlayer("b", 999),
		newTestPlayer("c", 999),
	}
	// Hand the log over newest-first: Recompute must sort it itself.
	shuffled := []models.Match{log[3], log[1], log[2], log[0]}
	Recompute(replayed, shuffled)

	for _, p := range replayed {
		want := incremental[p.ID]
		assert.Equal(t, want.Rating, p.Rating, "rating of %s", p.ID)
		assert.Equal(t, want.Wins, p.Wins, "wins of %s", p.ID)
		assert.Equal(t, want.Losses, p.Losses, "losses of %s", p.ID)
		assert.Equal(t, want.CurrentStreak, p.CurrentStreak, "streak of %s", p.ID)
		assert.Equal(t, want.MaxStreak, p.MaxStreak, "max streak of %s", p.ID)
		assert.Equal(t, want.Crawls, p.Crawls, "crawls of %s", p.ID)
		assert.Equal(t, want.GoalsFor, p.GoalsFor, "goals for of %s", p.ID)
	}
}

func TestRecomputeReversesDeletedMatch(t *testing.T) {
	players := map[string]*models.Player{
		"a": newTestPlayer("a", models.StartingRating),
		"b": newTestPlayer("b", models.StartingRating),
	}
	ratings := func() map[string]int {
		return map[string]int{"a": players["a"].Rating, "b": players["b"].Rating}
	}

	base := time.Now()
	first := testMatch(base, []string{"a"}, []string{"b"}, 5, 2, ratings())
	ApplyMatch(first, players)

	ratingAfterFirst := players["a"].Rating
	winsAfterFirst := players["a"].Wins

	second := testMatch(base.Add(time.Minute), []string{"a"}, []string{"b"}, 5, 0, ratings())
	ApplyMatch(second, players)
	require.NotEqual(t, ratingAfterFirst, players["a"].Rating)

	// Deleting the newest match and replaying the rest lands exactly
	// on the pre-match state.
	Recompute([]*models.Player{players["a"], players["b"]}, []models.Match{first})

	assert.Equal(t, ratingAfterFirst, players["a"].Rating)
	assert.Equal(t, winsAfterFirst, players["a"].Wins)
	assert.Equal(t, 0, players["b"].Crawls)
}

func TestRecomputeResetsTournamentWins(t *testing.T) {
	p := newTestPlayer("a", 700)
	p.TournamentWins = 2

	Recompute([]*models.Player{p}, nil)

	// Tournament rewards live on tournament records, not in the match
	// log, so a replay cannot bring them back.
	assert.Equal(t, 0, p.TournamentWins)
	assert.Equal(t, models.StartingRating, p.Rating)
}

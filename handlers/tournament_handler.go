package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gonect/foosball-ladder/middleware"
	"github.com/gonect/foosball-ladder/models"
	"github.com/gonect/foosball-ladder/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		TeamSize string `json:"team_size"`
		Teams    []struct {
			Name      string   `json:"name"`
			PlayerIDs []string `json:"player_ids"`
		} `json:"teams"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	teamSize := models.MatchType1v1
	if input.TeamSize == string(models.MatchType2v2) {
		teamSize = models.MatchType2v2
	}

	create := services.CreateTournamentInput{
		Name:     input.Name,
		TeamSize: teamSize,
	}
	for _, team := range input.Teams {
		create.Teams = append(create.Teams, services.TournamentTeamInput{
			Name:      team.Name,
			PlayerIDs: team.PlayerIDs,
		})
	}

	tournament, err := h.tournamentService.Create(r.Context(), create)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tournament, err := h.tournamentService.GetByID(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.Delete(r.Context(), chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitScore records a result for one bracket match and returns the
// advanced tournament.
func (h *TournamentHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ScoreA int `json:"score_a"`
		ScoreB int `json:"score_b"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	tournament, err := h.tournamentService.SubmitScore(r.Context(), services.SubmitScoreInput{
		TournamentID: chi.URLParam(r, "tournamentID"),
		MatchID:      chi.URLParam(r, "matchID"),
		ScoreA:       input.ScoreA,
		ScoreB:       input.ScoreB,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	// Audit trail: which account entered the result.
	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		slog.Info("bracket score submitted",
			"tournament_id", tournament.ID,
			"match_id", chi.URLParam(r, "matchID"),
			"user_id", userID,
		)
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gonect/foosball-ladder/middleware"
	"github.com/gonect/foosball-ladder/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) Record(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamAIDs []string `json:"team_a_ids"`
		TeamBIDs []string `json:"team_b_ids"`
		ScoreA   int      `json:"score_a"`
		ScoreB   int      `json:"score_b"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	result, err := h.matchService.Record(r.Context(), services.RecordMatchInput{
		TeamAIDs: input.TeamAIDs,
		TeamBIDs: input.TeamBIDs,
		ScoreA:   input.ScoreA,
		ScoreB:   input.ScoreB,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	// Audit trail: which account entered the result.
	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		slog.Info("match submitted", "match_id", result.Match.ID, "user_id", userID)
	}

	response := jsonResponse{
		"match":   result.Match,
		"players": result.Players,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// Delete removes a match; every player's statistics are rebuilt from
// the remaining history before the call returns.
func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.matchService.Delete(r.Context(), chi.URLParam(r, "matchID")); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

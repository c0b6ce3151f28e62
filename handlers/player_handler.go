package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gonect/foosball-ladder/services"
)

// maxAvatarBytes caps avatar uploads at 5MB.
const maxAvatarBytes = 5 << 20

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       string `json:"name"`
		Nickname   string `json:"nickname"`
		Department string `json:"department"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	player, err := h.playerService.Create(r.Context(), services.CreatePlayerInput{
		Name:       input.Name,
		Nickname:   input.Nickname,
		Department: input.Department,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	player, err := h.playerService.GetByID(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	response := jsonResponse{
		"player": player,
		"level":  player.Level(),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

// List returns the leaderboard: the roster ordered by rating.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		serverErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       *string `json:"name"`
		Nickname   *string `json:"nickname"`
		Department *string `json:"department"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, err)
		return
	}

	player, err := h.playerService.Update(r.Context(), chi.URLParam(r, "playerID"), services.UpdatePlayerInput{
		Name:       input.Name,
		Nickname:   input.Nickname,
		Department: input.Department,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.playerService.Delete(r.Context(), chi.URLParam(r, "playerID")); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadAvatar accepts a multipart form with the file under "avatar".
func (h *PlayerHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		badRequestResponse(w, err)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		badRequestResponse(w, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	player, err := h.playerService.UploadAvatar(r.Context(), chi.URLParam(r, "playerID"), header.Filename, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, err)
	}
}

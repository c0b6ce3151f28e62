package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/gonect/foosball-ladder/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub               wsHub
	tournamentService services.TournamentService
	log               *slog.Logger
}

// wsHub is the part of the bracket hub the handler needs.
type wsHub interface {
	Subscribe(conn *websocket.Conn, tournamentID string)
}

func NewWebSocketHandler(hub wsHub, tournamentService services.TournamentService, log *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tournamentService: tournamentService, log: log}
}

// ServeWs upgrades the connection and subscribes it to live updates of
// one tournament. Clients connect to /ws/tournaments/{tournamentID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		http.Error(w, "missing tournament id", http.StatusBadRequest)
		return
	}

	if _, err := h.tournamentService.GetByID(r.Context(), tournamentID); err != nil {
		if errors.Is(err, services.ErrTournamentNotFound) {
			http.NotFound(w, r)
			return
		}
		serverErrorResponse(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "tournament_id", tournamentID, "error", err)
		return
	}

	h.hub.Subscribe(conn, tournamentID)
}

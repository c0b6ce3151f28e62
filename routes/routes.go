package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/gonect/foosball-ladder/handlers"
	"github.com/gonect/foosball-ladder/middleware"
	"github.com/gonect/foosball-ladder/models"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Match      *handlers.MatchHandler
	Tournament *handlers.TournamentHandler
	Dashboard  *handlers.DashboardHandler
	WebSocket  *handlers.WebSocketHandler
}

// SetupRoutes builds the full router. Reads are public, mutations need
// an authenticated user, deletes need an admin.
func SetupRoutes(h Handlers, jwtSecret string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Post("/auth/register", h.Auth.Register)
	router.Post("/auth/login", h.Auth.Login)

	router.Get("/dashboard", h.Dashboard.Stats)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.List)
		r.Get("/{playerID}", h.Player.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Player.Create)
			r.Patch("/{playerID}", h.Player.Update)
			r.Put("/{playerID}/avatar", h.Player.UploadAvatar)
		})
		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Delete("/{playerID}", h.Player.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Match.Record)
		})
		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Delete("/{matchID}", h.Match.Delete)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.List)
		r.Get("/{tournamentID}", h.Tournament.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Tournament.Create)
			r.Post("/{tournamentID}/matches/{matchID}/score", h.Tournament.SubmitScore)
		})
		r.Group(func(r chi.Router) {
			r.Use(authenticate, adminOnly)
			r.Delete("/{tournamentID}", h.Tournament.Delete)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	return router
}

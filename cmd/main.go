package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gonect/foosball-ladder/brackets"
	"github.com/gonect/foosball-ladder/config"
	"github.com/gonect/foosball-ladder/db"
	"github.com/gonect/foosball-ladder/handlers"
	"github.com/gonect/foosball-ladder/repositories"
	"github.com/gonect/foosball-ladder/routes"
	"github.com/gonect/foosball-ladder/services"
	"github.com/gonect/foosball-ladder/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Avatar storage is optional: without a bucket the endpoints report
	// the feature as disabled instead of failing startup.
	var uploader storage.FileUploader
	if cfg.S3.Configured() {
		uploader, err = storage.NewS3Uploader(cfg.S3)
		if err != nil {
			logger.Error("failed to initialize avatar storage", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("avatar storage initialized", slog.String("bucket", cfg.S3.Bucket))
	} else {
		logger.Info("avatar storage not configured, avatar uploads disabled")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, logger)
	playerService := services.NewPlayerService(playerRepo, uploader, logger)
	matchService := services.NewMatchService(matchRepo, playerRepo, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, playerRepo, wsHub, logger)
	dashboardService := services.NewDashboardService(playerRepo, matchRepo, tournamentRepo)
	logger.Info("services initialized")

	router := routes.SetupRoutes(routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Player:     handlers.NewPlayerHandler(playerService),
		Match:      handlers.NewMatchHandler(matchService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, tournamentService, logger),
	}, cfg.JWTSecretKey)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

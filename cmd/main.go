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

	"github.com/campuscup/intramurals/cache"
	"github.com/campuscup/intramurals/config"
	"github.com/campuscup/intramurals/db"
	"github.com/campuscup/intramurals/handlers"
	"github.com/campuscup/intramurals/live"
	"github.com/campuscup/intramurals/middleware"
	"github.com/campuscup/intramurals/repositories"
	api "github.com/campuscup/intramurals/routes"
	"github.com/campuscup/intramurals/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	txRunner := db.NewSerializableRunner(dbConn)

	// Кэш таблицы сезона (опционально)
	var leaderboardCache services.LeaderboardCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewLeaderboardCache(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisCache.Close()
		leaderboardCache = redisCache
		logger.Info("leaderboard cache connected")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	teamSeasonRepo := repositories.NewPostgresTeamSeasonRepository(dbConn)
	ratingRepo := repositories.NewPostgresRatingRepository(dbConn)
	wagerRepo := repositories.NewPostgresWagerRepository(dbConn)
	parlayRepo := repositories.NewPostgresParlayRepository(dbConn)
	bettorRepo := repositories.NewPostgresBettorRepository(dbConn)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	ledger := services.NewStandingsLedger(teamSeasonRepo)
	ratingService := services.NewRatingService(txRunner, ratingRepo)
	bracketService := services.NewBracketService(txRunner, matchRepo, ratingRepo, logger)
	rankService := services.NewRankService(teamSeasonRepo, leaderboardCache, logger)
	wagerService := services.NewWagerService(txRunner, wagerRepo, parlayRepo, bettorRepo, matchRepo, cfg.WagerWorkers, logger)
	settlementService := services.NewSettlementService(
		txRunner,
		sportRepo,
		matchRepo,
		ledger,
		ratingService,
		bracketService,
		rankService,
		wagerService,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	auth := middleware.NewAuthenticator(cfg.JWTSecretKey)
	settlementHandler := handlers.NewSettlementHandler(settlementService)
	leaderboardHandler := handlers.NewLeaderboardHandler(rankService)
	wagerHandler := handlers.NewWagerHandler(wagerService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, auth, settlementHandler, leaderboardHandler, wagerHandler, webSocketHandler)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
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

package routes

import (
	"github.com/campuscup/intramurals/handlers"
	"github.com/campuscup/intramurals/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	settlementHandler *handlers.SettlementHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	wagerHandler *handlers.WagerHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Публичные маршруты
	router.Get("/seasons/{year}/leaderboard", leaderboardHandler.GetLeaderboardHandler)
	router.Get("/ws/seasons/{year}", webSocketHandler.ServeWs)

	// Подсчёт матча - только для арбитров и администраторов
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.Authorize(middleware.RoleScorer, middleware.RoleAdmin))

		r.Post("/matches/{matchID}/settle", settlementHandler.SettleMatchHandler)
	})

	// Ставки - любой аутентифицированный пользователь
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Post("/wagers", wagerHandler.PlaceParlayHandler)
	})
}

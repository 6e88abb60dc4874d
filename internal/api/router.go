package api

import (
	"net/http"

	"github.com/wutims/draftengine/internal/api/handlers"
	"github.com/wutims/draftengine/internal/api/middleware"
	"github.com/wutims/draftengine/internal/config"
	"github.com/wutims/draftengine/internal/repository"
	"github.com/wutims/draftengine/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config, recommendHandler *handlers.RecommendHandler) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Recommendation engine routes
			r.Route("/recommend", func(r chi.Router) {
				r.Post("/simulate", recommendHandler.CreateSimulator)
				r.Get("/simulate/{id}", recommendHandler.GetSimulatorState)
				r.Post("/simulate/{id}/action", recommendHandler.SubmitSimulatorAction)
				r.Post("/simulate/{id}/enemy-action", recommendHandler.TriggerEnemyAction)
				r.Post("/simulate/{id}/rerank", recommendHandler.RerankSimulatorPicks)
				r.Post("/replay/{id}/step", recommendHandler.ReplayStep)
				r.Post("/replay/{id}/play", recommendHandler.ReplayPlay)
				r.Post("/replay/{id}/pause", recommendHandler.ReplayPause)
				r.Post("/quality", recommendHandler.AnalyzeQuality)
			})
		})
	})

	return r
}

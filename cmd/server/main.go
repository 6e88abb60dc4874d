package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/wutims/draftengine/internal/api"
	"github.com/wutims/draftengine/internal/api/handlers"
	"github.com/wutims/draftengine/internal/config"
	"github.com/wutims/draftengine/internal/draftsvc"
	"github.com/wutims/draftengine/internal/knowledge"
	"github.com/wutims/draftengine/internal/llm"
	"github.com/wutims/draftengine/internal/recommend"
	"github.com/wutims/draftengine/internal/repository/postgres"
	"github.com/wutims/draftengine/internal/service"
	"github.com/wutims/draftengine/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize services
	services := service.NewServices(repos, cfg)

	// Initialize the recommendation engine
	store, err := knowledge.Load(cfg.KnowledgeDataDir)
	if err != nil {
		log.Fatalf("failed to load knowledge store: %v", err)
	}
	session.SetIdleTTL(cfg.SessionIdleTTL)
	rosterOf := func(teamID string) ([]recommend.RosterPlayer, bool) {
		id, err := uuid.Parse(teamID)
		if err != nil {
			return nil, false
		}
		players, err := repos.MatchData.TeamRoster(context.Background(), id)
		if err != nil || len(players) == 0 {
			return nil, false
		}
		out := make([]recommend.RosterPlayer, 0, len(players))
		for _, p := range players {
			out = append(out, recommend.RosterPlayer{Name: p.Name, Role: p.Role})
		}
		return out, true
	}
	engine := draftsvc.NewEngine(store, rosterOf)
	quality := draftsvc.NewQualityAnalyzer(store)

	var cache *goredis.Client
	if cfg.RedisAddr != "" {
		cache = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	}
	reranker := llm.NewReranker(cfg.LLMAPIKey, cfg.LLMTimeout, llm.NewResponseCache(cache), nil)
	if cfg.LLMModel != "" {
		reranker = reranker.WithModel(cfg.LLMModel)
	}

	replays := session.NewReplayManager()
	simulators := session.NewSimulatorManager()
	reaper := session.NewReaper(replays, simulators)
	if err := reaper.Start(cfg.ReaperSchedule); err != nil {
		log.Fatalf("failed to start session reaper: %v", err)
	}

	recommendHandler := handlers.NewRecommendHandler(engine, quality, replays, simulators, reranker, repos.MatchData)

	// Initialize router
	router := api.NewRouter(services, repos, cfg, recommendHandler)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	reaper.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

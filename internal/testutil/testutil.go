package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wutims/draftengine/internal/api"
	"github.com/wutims/draftengine/internal/api/handlers"
	"github.com/wutims/draftengine/internal/config"
	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/draftsvc"
	"github.com/wutims/draftengine/internal/knowledge"
	"github.com/wutims/draftengine/internal/llm"
	"github.com/wutims/draftengine/internal/repository"
	repoPostgres "github.com/wutims/draftengine/internal/repository/postgres"
	"github.com/wutims/draftengine/internal/service"
	"github.com/wutims/draftengine/internal/session"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_league_draft"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.MatchTeam{},
		&domain.MatchSeries{},
		&domain.MatchGame{},
		&domain.MatchRosterEntry{},
		&domain.MatchDraftAction{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"match_draft_actions",
		"match_roster_entries",
		"match_games",
		"match_series",
		"match_teams",
		"user_sessions",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
		KnowledgeDataDir:   "",
		LLMTimeout:         2 * time.Second,
		SessionIdleTTL:     3600 * time.Second,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server     *httptest.Server
	DB         *TestDB
	Repos      *repository.Repositories
	Services   *service.Services
	Config     *config.Config
	Engine     *draftsvc.Engine
	Replays    *session.ReplayManager
	Simulators *session.SimulatorManager
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()

	repos := repoPostgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg)

	store, err := knowledge.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load empty knowledge store: %v", err)
	}
	engine := draftsvc.NewEngine(store, nil)
	quality := draftsvc.NewQualityAnalyzer(store)
	reranker := llm.NewReranker("", 0, nil, nil)
	replays := session.NewReplayManager()
	simulators := session.NewSimulatorManager()
	recommendHandler := handlers.NewRecommendHandler(engine, quality, replays, simulators, reranker, repos.MatchData)

	router := api.NewRouter(services, repos, cfg, recommendHandler)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:     server,
		DB:         testDB,
		Repos:      repos,
		Services:   services,
		Config:     cfg,
		Engine:     engine,
		Replays:    replays,
		Simulators: simulators,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

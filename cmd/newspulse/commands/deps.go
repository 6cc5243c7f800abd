package commands

import (
	"context"
	"fmt"

	"github.com/ekurt/newspulse/internal/engine"
	"github.com/ekurt/newspulse/internal/external/finnhub"
	"github.com/ekurt/newspulse/internal/external/gemini"
	"github.com/ekurt/newspulse/internal/external/yahoo"
	"github.com/ekurt/newspulse/internal/history"
	"github.com/ekurt/newspulse/internal/pool"
	"github.com/ekurt/newspulse/internal/realtime"
	"github.com/ekurt/newspulse/internal/scanner"
	"github.com/ekurt/newspulse/internal/universe"
	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/database"
	"github.com/ekurt/newspulse/pkg/httputil"
	"github.com/ekurt/newspulse/pkg/kvstore"
	"github.com/ekurt/newspulse/pkg/logger"
)

// keyPrefix namespaces every Redis key this service writes
const keyPrefix = "newspulse"

// stack holds the wired application dependencies shared by all commands
type stack struct {
	cfg      *config.Config
	logger   *logger.Logger
	repo     *pool.Repository
	poolMgr  *pool.Manager
	scanner  *scanner.Scanner
	measurer *scanner.Measurer
	gemini   *gemini.Client
	history  *history.Repository // nil when the archive is disabled
	hub      *realtime.Hub

	kvClient *kvstore.Client
	db       *database.DB // nil when the archive is disabled
}

// initStack wires the full dependency graph from configuration.
// Callers must invoke Close when done.
func initStack() (*stack, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to Redis (pool + leaderboard documents)
	kvClient, err := kvstore.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	store := kvstore.NewStore(kvClient, keyPrefix)

	// 4. Create HTTP clients. Finnhub gets the shared Redis token bucket
	// so multiple processes stay inside one API budget; the scraper and
	// Gemini clients are unthrottled.
	finnhubHTTP := httputil.New(log).
		WithRateLimiter(kvstore.NewRateLimiter(kvClient, keyPrefix), kvstore.FinnhubRateLimit)
	webHTTP := httputil.New(log)

	// 5. Create external API clients
	finnhubClient := finnhub.NewClient(cfg, finnhubHTTP, log)
	geminiClient := gemini.NewClient(cfg, webHTTP, log)

	var fallback scanner.FallbackNewsProvider
	if cfg.Yahoo.Enabled {
		fallback = yahoo.NewClient(cfg, webHTTP, log)
	}

	// 6. Create pool repository and manager
	repo := pool.NewRepository(store, log)
	poolMgr := pool.NewManager(cfg.Engine.PoolCapacity, cfg.Engine.LeaderboardTopN)

	// 7. Connect to the measured-event archive when enabled
	var (
		db       *database.DB
		hist     *history.Repository
		archiver scanner.Archiver
	)
	if cfg.Database.Enabled {
		db, err = database.New(cfg)
		if err != nil {
			kvClient.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		hist = history.NewRepository(db, log)
		if err := hist.Init(context.Background()); err != nil {
			db.Close()
			kvClient.Close()
			return nil, fmt.Errorf("init history schema: %w", err)
		}
		archiver = hist
	}

	// 8. Create realtime hub (leaderboard push to websocket clients)
	hub := realtime.NewHub(log)

	// 9. Create engine, universe, scanner, measurer
	eng := engine.New()
	uni := universe.New(cfg.Scan.Symbols)

	scan := scanner.New(finnhubClient, fallback, finnhubClient, eng, poolMgr, repo, uni, hub, cfg, log)
	measure := scanner.NewMeasurer(finnhubClient, eng, poolMgr, repo, archiver, hub, cfg, log)

	return &stack{
		cfg:      cfg,
		logger:   log,
		repo:     repo,
		poolMgr:  poolMgr,
		scanner:  scan,
		measurer: measure,
		gemini:   geminiClient,
		history:  hist,
		hub:      hub,
		kvClient: kvClient,
		db:       db,
	}, nil
}

// Close releases the stack's connections
func (s *stack) Close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.kvClient != nil {
		s.kvClient.Close()
	}
}

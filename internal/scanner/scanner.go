// Package scanner orchestrates the scan pass: fetch headlines and
// candles per symbol, score them, and fold the results into the pool.
package scanner

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/internal/engine"
	"github.com/ekurt/newspulse/internal/pool"
	"github.com/ekurt/newspulse/internal/universe"
	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/logger"
)

// FallbackNewsProvider supplies headlines when the primary provider
// returns nothing for a symbol
type FallbackNewsProvider interface {
	Headlines(ctx context.Context, symbol string, limit int) ([]contracts.NewsEvent, error)
}

// LeaderboardPublisher pushes a rebuilt leaderboard to live subscribers
type LeaderboardPublisher interface {
	PublishLeaderboard(view *contracts.LeaderboardView)
}

// Scanner orchestrates news scanning and scoring
// SSOT: scan pass orchestration lives in this package
type Scanner struct {
	news      contracts.NewsProvider
	fallback  FallbackNewsProvider // optional
	candles   contracts.CandleProvider
	engine    *engine.Engine
	poolMgr   *pool.Manager
	repo      *pool.Repository
	universe  *universe.Universe
	publisher LeaderboardPublisher // optional
	cfg       *config.Config
	logger    *logger.Logger
}

// New creates a Scanner. fallback and publisher may be nil.
func New(
	news contracts.NewsProvider,
	fallback FallbackNewsProvider,
	candles contracts.CandleProvider,
	eng *engine.Engine,
	poolMgr *pool.Manager,
	repo *pool.Repository,
	uni *universe.Universe,
	publisher LeaderboardPublisher,
	cfg *config.Config,
	log *logger.Logger,
) *Scanner {
	return &Scanner{
		news:      news,
		fallback:  fallback,
		candles:   candles,
		engine:    eng,
		poolMgr:   poolMgr,
		repo:      repo,
		universe:  uni,
		publisher: publisher,
		cfg:       cfg,
		logger:    log.WithField("module", "scanner"),
	}
}

// ScanResult summarizes one scan pass
type ScanResult struct {
	Symbols   int       `json:"symbols"`
	Scored    int       `json:"scored"`
	Failed    int       `json:"failed"`
	PoolItems int       `json:"poolItems"`
	AsOf      time.Time `json:"asOf"`
}

// symbolResult carries one worker's output
type symbolResult struct {
	symbol  string
	records []*contracts.ImpactRecord
	err     error
}

// Scan runs one full scan pass. Per-symbol failures are logged and
// skipped; the pass only fails when the pool cannot be loaded or saved.
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	symbols := s.universe.Symbols()
	now := time.Now().UTC()

	s.logger.WithFields(map[string]interface{}{
		"symbols": len(symbols),
		"workers": s.cfg.Scan.Workers,
	}).Info("Starting news scan")

	symbolCh := make(chan string, len(symbols))
	resultCh := make(chan symbolResult, len(symbols))

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Scan.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.scanWorker(ctx, workerID, symbolCh, resultCh, now)
		}(i)
	}

	for _, sym := range symbols {
		symbolCh <- sym
	}
	close(symbolCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Collect results; merging stays single-threaded
	var scored []*contracts.ImpactRecord
	failed := 0
	for res := range resultCh {
		if res.err != nil {
			failed++
			continue
		}
		scored = append(scored, res.records...)
	}

	p, err := s.repo.LoadPool(ctx)
	if err != nil {
		return nil, err
	}

	p.Items = s.poolMgr.Merge(p.Items, scored)
	if err := s.repo.SavePool(ctx, p); err != nil {
		return nil, err
	}

	if err := s.rebuildLeaderboard(ctx, p, now); err != nil {
		return nil, err
	}

	result := &ScanResult{
		Symbols:   len(symbols),
		Scored:    len(scored),
		Failed:    failed,
		PoolItems: len(p.Items),
		AsOf:      now,
	}

	s.logger.WithFields(map[string]interface{}{
		"scored":     result.Scored,
		"failed":     result.Failed,
		"pool_items": result.PoolItems,
	}).Info("News scan completed")

	return result, nil
}

// scanWorker processes symbols from the channel: one candle fetch and
// one news fetch per symbol, then pure scoring
func (s *Scanner) scanWorker(ctx context.Context, workerID int, symbolCh <-chan string, resultCh chan<- symbolResult, now time.Time) {
	for sym := range symbolCh {
		select {
		case <-ctx.Done():
			resultCh <- symbolResult{symbol: sym, err: ctx.Err()}
			return
		default:
		}

		records, err := s.scanSymbol(ctx, sym, now)
		if err != nil {
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"worker": workerID,
				"symbol": sym,
			}).Error("Failed to scan symbol")
			resultCh <- symbolResult{symbol: sym, err: err}
			continue
		}

		s.logger.WithFields(map[string]interface{}{
			"worker": workerID,
			"symbol": sym,
			"count":  len(records),
		}).Debug("Scanned symbol")

		resultCh <- symbolResult{symbol: sym, records: records}
	}
}

// scanSymbol fetches and scores the newest headlines for one symbol
func (s *Scanner) scanSymbol(ctx context.Context, symbol string, now time.Time) ([]*contracts.ImpactRecord, error) {
	newsFrom := now.AddDate(0, 0, -s.cfg.Scan.NewsLookbackDays)

	events, err := s.news.CompanyNews(ctx, symbol, newsFrom, now)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	if len(events) == 0 && s.fallback != nil {
		events, err = s.fallback.Headlines(ctx, symbol, s.cfg.Scan.MaxNewsPerSymbol)
		if err != nil {
			// Fallback failures never fail the symbol
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Fallback headlines failed")
			events = nil
		}
	}

	if len(events) == 0 {
		return nil, nil
	}

	// Newest first, capped per symbol
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].PublishedAt.After(events[j].PublishedAt)
	})
	if len(events) > s.cfg.Scan.MaxNewsPerSymbol {
		events = events[:s.cfg.Scan.MaxNewsPerSymbol]
	}

	candleFrom := now.AddDate(0, 0, -s.cfg.Engine.CandleLookbackDays)
	series, err := s.candles.DailyCandles(ctx, symbol, candleFrom, now)
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}

	records := make([]*contracts.ImpactRecord, 0, len(events))
	for _, ev := range events {
		records = append(records, s.engine.ScoreEvent(ev, series, now))
	}

	return records, nil
}

// rebuildLeaderboard derives, persists, and publishes the ranked view
func (s *Scanner) rebuildLeaderboard(ctx context.Context, p *contracts.Pool, asOf time.Time) error {
	view := s.poolMgr.ReduceLeaderboard(p.Items, asOf)
	if err := s.repo.SaveLeaderboard(ctx, view); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.PublishLeaderboard(view)
	}
	return nil
}

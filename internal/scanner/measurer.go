package scanner

import (
	"context"
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/internal/engine"
	"github.com/ekurt/newspulse/internal/pool"
	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/logger"
)

// Archiver persists measured records to long-term storage
type Archiver interface {
	Archive(ctx context.Context, records []*contracts.ImpactRecord) error
}

// Measurer runs the measurement pass: pick eligible provisional
// records, apply their realized outcome, rebuild the leaderboard.
// SSOT: measurement orchestration lives here
type Measurer struct {
	candles   contracts.CandleProvider
	engine    *engine.Engine
	poolMgr   *pool.Manager
	repo      *pool.Repository
	archiver  Archiver             // optional
	publisher LeaderboardPublisher // optional
	cfg       *config.Config
	logger    *logger.Logger
}

// NewMeasurer creates a Measurer. archiver and publisher may be nil.
func NewMeasurer(
	candles contracts.CandleProvider,
	eng *engine.Engine,
	poolMgr *pool.Manager,
	repo *pool.Repository,
	archiver Archiver,
	publisher LeaderboardPublisher,
	cfg *config.Config,
	log *logger.Logger,
) *Measurer {
	return &Measurer{
		candles:   candles,
		engine:    eng,
		poolMgr:   poolMgr,
		repo:      repo,
		archiver:  archiver,
		publisher: publisher,
		cfg:       cfg,
		logger:    log.WithField("module", "measurer"),
	}
}

// MeasureResult summarizes one measurement pass
type MeasureResult struct {
	Eligible int       `json:"eligible"`
	Measured int       `json:"measured"`
	TooEarly int       `json:"tooEarly"`
	Failed   int       `json:"failed"`
	AsOf     time.Time `json:"asOf"`
}

// Measure runs one measurement pass. Candles are fetched at most once
// per symbol per pass; records whose outcome has not printed yet stay
// provisional and get picked up on a later pass.
func (m *Measurer) Measure(ctx context.Context) (*MeasureResult, error) {
	now := time.Now().UTC()

	p, err := m.repo.LoadPool(ctx)
	if err != nil {
		return nil, err
	}

	eligible := m.poolMgr.MeasureEligible(
		p.Items, now,
		m.cfg.Engine.MeasureMinScore,
		float64(m.cfg.Engine.MinAgeHours),
		m.cfg.Engine.MeasureMaxItems,
	)

	m.logger.WithFields(map[string]interface{}{
		"eligible":   len(eligible),
		"pool_items": len(p.Items),
	}).Info("Starting measurement pass")

	result := &MeasureResult{Eligible: len(eligible), AsOf: now}
	if len(eligible) == 0 {
		return result, nil
	}

	// Per-pass candle cache: many records share a symbol. Fetch
	// failures are cached too so a broken symbol costs one call, not
	// one per record.
	cache := make(map[string]*contracts.CandleSeries)
	failed := make(map[string]bool)
	candleFrom := now.AddDate(0, 0, -m.cfg.Engine.CandleLookbackDays)

	var measured []*contracts.ImpactRecord
	for _, rec := range eligible {
		if failed[rec.Symbol] {
			result.Failed++
			continue
		}

		series, ok := cache[rec.Symbol]
		if !ok {
			series, err = m.candles.DailyCandles(ctx, rec.Symbol, candleFrom, now)
			if err != nil {
				m.logger.WithError(err).WithField("symbol", rec.Symbol).Error("Failed to fetch candles")
				failed[rec.Symbol] = true
				result.Failed++
				continue
			}
			cache[rec.Symbol] = series
		}

		if m.engine.Measure(rec, series, now) {
			result.Measured++
			measured = append(measured, rec)
		} else {
			result.TooEarly++
		}
	}

	if err := m.repo.SavePool(ctx, p); err != nil {
		return nil, err
	}

	view := m.poolMgr.ReduceLeaderboard(p.Items, now)
	if err := m.repo.SaveLeaderboard(ctx, view); err != nil {
		return nil, err
	}
	if m.publisher != nil {
		m.publisher.PublishLeaderboard(view)
	}

	if m.archiver != nil && len(measured) > 0 {
		if err := m.archiver.Archive(ctx, measured); err != nil {
			// Archive failures must not lose the measurement itself
			m.logger.WithError(err).Error("Failed to archive measured records")
		}
	}

	m.logger.WithFields(map[string]interface{}{
		"measured":  result.Measured,
		"too_early": result.TooEarly,
		"failed":    result.Failed,
	}).Info("Measurement pass completed")

	return result, nil
}

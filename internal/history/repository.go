// Package history archives measured records to PostgreSQL for offline
// analysis. The Redis pool document stays the live working set; this is
// the durable trail that survives pool eviction.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/pkg/database"
	"github.com/ekurt/newspulse/pkg/logger"
)

// Repository persists measured impact records
// SSOT: all measured-record SQL lives in this package
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a history repository
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: log.WithField("module", "history"),
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS measured_events (
	event_key         TEXT PRIMARY KEY,
	symbol            TEXT NOT NULL,
	headline          TEXT NOT NULL,
	category          TEXT NOT NULL DEFAULT '',
	published_at      TIMESTAMPTZ NOT NULL,
	url               TEXT NOT NULL DEFAULT '',
	ret_pre5          DOUBLE PRECISION,
	ret_1d            DOUBLE PRECISION,
	ret_5d            DOUBLE PRECISION,
	priced_in         BOOLEAN,
	expected_impact   INTEGER NOT NULL,
	realized_impact   INTEGER NOT NULL,
	score             INTEGER NOT NULL,
	confidence        INTEGER NOT NULL,
	expected_dir      INTEGER NOT NULL DEFAULT 0,
	realized_dir      INTEGER NOT NULL DEFAULT 0,
	bull_trap         BOOLEAN,
	technical_context TEXT NOT NULL DEFAULT '',
	measured_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_measured_events_symbol ON measured_events (symbol);
CREATE INDEX IF NOT EXISTS idx_measured_events_measured_at ON measured_events (measured_at DESC);
`

// Init creates the archive schema if it does not exist
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init history schema: %w", err)
	}
	return nil
}

// Archive upserts measured records by event key. Re-archiving the same
// record is a no-op overwrite, so retried measure passes stay safe.
func (r *Repository) Archive(ctx context.Context, records []*contracts.ImpactRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		if rec.MeasuredAt == nil {
			continue
		}
		batch.Queue(`
			INSERT INTO measured_events (
				event_key, symbol, headline, category, published_at, url,
				ret_pre5, ret_1d, ret_5d, priced_in,
				expected_impact, realized_impact, score, confidence,
				expected_dir, realized_dir, bull_trap, technical_context, measured_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
			ON CONFLICT (event_key) DO UPDATE SET
				ret_pre5 = EXCLUDED.ret_pre5,
				ret_1d = EXCLUDED.ret_1d,
				ret_5d = EXCLUDED.ret_5d,
				priced_in = EXCLUDED.priced_in,
				realized_impact = EXCLUDED.realized_impact,
				score = EXCLUDED.score,
				confidence = EXCLUDED.confidence,
				realized_dir = EXCLUDED.realized_dir,
				bull_trap = EXCLUDED.bull_trap,
				technical_context = EXCLUDED.technical_context,
				measured_at = EXCLUDED.measured_at`,
			rec.Key(), rec.Symbol, rec.Headline, rec.Type, rec.PublishedAt, rec.URL,
			rec.RetPre5, rec.Ret1d, rec.Ret5d, rec.PricedIn,
			rec.ExpectedImpact, rec.RealizedImpact, rec.Score, rec.Confidence,
			rec.ExpectedDir, rec.RealizedDir, rec.BullTrap, rec.TechnicalContext, rec.MeasuredAt,
		)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("archive record: %w", err)
		}
	}

	r.logger.WithField("count", batch.Len()).Debug("Archived measured records")
	return nil
}

// ListRecent returns the most recently measured records, optionally
// filtered by symbol
func (r *Repository) ListRecent(ctx context.Context, symbol string, limit int) ([]*contracts.ImpactRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT symbol, headline, category, published_at, url,
		       ret_pre5, ret_1d, ret_5d, priced_in,
		       expected_impact, realized_impact, score, confidence,
		       expected_dir, realized_dir, bull_trap, technical_context, measured_at
		FROM measured_events`
	args := []interface{}{}
	if symbol != "" {
		query += ` WHERE symbol = $1 ORDER BY measured_at DESC LIMIT $2`
		args = append(args, symbol, limit)
	} else {
		query += ` ORDER BY measured_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list measured events: %w", err)
	}
	defer rows.Close()

	var records []*contracts.ImpactRecord
	for rows.Next() {
		var rec contracts.ImpactRecord
		var measuredAt time.Time
		if err := rows.Scan(
			&rec.Symbol, &rec.Headline, &rec.Type, &rec.PublishedAt, &rec.URL,
			&rec.RetPre5, &rec.Ret1d, &rec.Ret5d, &rec.PricedIn,
			&rec.ExpectedImpact, &rec.RealizedImpact, &rec.Score, &rec.Confidence,
			&rec.ExpectedDir, &rec.RealizedDir, &rec.BullTrap, &rec.TechnicalContext, &measuredAt,
		); err != nil {
			return nil, fmt.Errorf("scan measured event: %w", err)
		}
		rec.MeasuredAt = &measuredAt
		records = append(records, &rec)
	}

	return records, rows.Err()
}

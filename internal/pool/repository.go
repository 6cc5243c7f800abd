package pool

import (
	"context"
	"fmt"
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/pkg/kvstore"
	"github.com/ekurt/newspulse/pkg/logger"
)

// Repository persists the pool and leaderboard documents.
// Single-writer: only the scan and measure passes write, one at a time.
type Repository struct {
	store contracts.DocumentStore
	log   *logger.Logger
}

// NewRepository creates a repository over the document store
func NewRepository(store contracts.DocumentStore, log *logger.Logger) *Repository {
	return &Repository{store: store, log: log}
}

// LoadPool reads the pool document. A missing document yields an empty
// pool, not an error.
func (r *Repository) LoadPool(ctx context.Context) (*contracts.Pool, error) {
	var p contracts.Pool
	found, err := r.store.Get(ctx, kvstore.PoolKey, &p)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	if !found {
		r.log.Debug("pool document missing, starting empty")
		return &contracts.Pool{Items: []*contracts.ImpactRecord{}}, nil
	}
	return &p, nil
}

// SavePool writes the pool document
func (r *Repository) SavePool(ctx context.Context, p *contracts.Pool) error {
	p.AsOf = time.Now().UTC()
	if err := r.store.Set(ctx, kvstore.PoolKey, p, kvstore.TTLNone); err != nil {
		return fmt.Errorf("save pool: %w", err)
	}
	r.log.WithField("items", len(p.Items)).Debug("pool document saved")
	return nil
}

// LoadLeaderboard reads the persisted leaderboard view, if any
func (r *Repository) LoadLeaderboard(ctx context.Context) (*contracts.LeaderboardView, bool, error) {
	var v contracts.LeaderboardView
	found, err := r.store.Get(ctx, kvstore.LeaderboardKey, &v)
	if err != nil {
		return nil, false, fmt.Errorf("load leaderboard: %w", err)
	}
	return &v, found, nil
}

// SaveLeaderboard writes the derived leaderboard view with a TTL so a
// stalled scheduler cannot serve stale ranks forever
func (r *Repository) SaveLeaderboard(ctx context.Context, v *contracts.LeaderboardView) error {
	if err := r.store.Set(ctx, kvstore.LeaderboardKey, v, kvstore.TTLLeaderboard); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	return nil
}

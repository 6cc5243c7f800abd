package jobs

import (
	"context"
	"time"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/internal/pool"
	"github.com/ekurt/newspulse/pkg/config"
	"github.com/ekurt/newspulse/pkg/logger"
)

// Provisional records below the measurement threshold will never be
// measured; after this long they are dead weight in the pool.
const stalePoolAge = 14 * 24 * time.Hour

// PoolMaintenanceJob prunes dead records and re-derives the leaderboard
type PoolMaintenanceJob struct {
	poolMgr *pool.Manager
	repo    *pool.Repository
	cfg     *config.Config
	logger  *logger.Logger
}

// NewPoolMaintenanceJob creates a maintenance job
func NewPoolMaintenanceJob(mgr *pool.Manager, repo *pool.Repository, cfg *config.Config, log *logger.Logger) *PoolMaintenanceJob {
	return &PoolMaintenanceJob{poolMgr: mgr, repo: repo, cfg: cfg, logger: log}
}

// Name returns the job name
func (j *PoolMaintenanceJob) Name() string {
	return "pool_maintenance"
}

// Schedule returns the cron schedule (daily at 06:00 UTC, before the
// US session)
func (j *PoolMaintenanceJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run prunes stale low-score provisional records, re-applies the pool
// invariants, and rebuilds the persisted leaderboard
func (j *PoolMaintenanceJob) Run(ctx context.Context) error {
	now := time.Now().UTC()

	p, err := j.repo.LoadPool(ctx)
	if err != nil {
		return err
	}

	kept := make([]*contracts.ImpactRecord, 0, len(p.Items))
	pruned := 0
	for _, rec := range p.Items {
		stale := rec.State() == contracts.StateProvisional &&
			rec.Score < j.cfg.Engine.MeasureMinScore &&
			now.Sub(rec.PublishedAt) > stalePoolAge
		if stale {
			pruned++
			continue
		}
		kept = append(kept, rec)
	}

	p.Items = j.poolMgr.Merge(kept, nil)
	if err := j.repo.SavePool(ctx, p); err != nil {
		return err
	}

	view := j.poolMgr.ReduceLeaderboard(p.Items, now)
	if err := j.repo.SaveLeaderboard(ctx, view); err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"pruned":     pruned,
		"pool_items": len(p.Items),
	}).Info("Pool maintenance completed")

	return nil
}

// Package jobs holds the scheduled job implementations.
package jobs

import (
	"context"

	"github.com/ekurt/newspulse/internal/scanner"
	"github.com/ekurt/newspulse/pkg/logger"
)

// NewsScanJob runs the scan pass on a fixed cadence
type NewsScanJob struct {
	scanner *scanner.Scanner
	logger  *logger.Logger
}

// NewNewsScanJob creates a news scan job
func NewNewsScanJob(s *scanner.Scanner, log *logger.Logger) *NewsScanJob {
	return &NewsScanJob{scanner: s, logger: log}
}

// Name returns the job name
func (j *NewsScanJob) Name() string {
	return "news_scan"
}

// Schedule returns the cron schedule (every 30 minutes)
func (j *NewsScanJob) Schedule() string {
	return "0 */30 * * * *"
}

// Run executes one scan pass
func (j *NewsScanJob) Run(ctx context.Context) error {
	result, err := j.scanner.Scan(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"scored":     result.Scored,
		"failed":     result.Failed,
		"pool_items": result.PoolItems,
	}).Info("Scheduled news scan completed")

	return nil
}

package jobs

import (
	"context"

	"github.com/ekurt/newspulse/internal/scanner"
	"github.com/ekurt/newspulse/pkg/logger"
)

// ImpactMeasureJob runs the measurement pass on a fixed cadence
type ImpactMeasureJob struct {
	measurer *scanner.Measurer
	logger   *logger.Logger
}

// NewImpactMeasureJob creates a measurement job
func NewImpactMeasureJob(m *scanner.Measurer, log *logger.Logger) *ImpactMeasureJob {
	return &ImpactMeasureJob{measurer: m, logger: log}
}

// Name returns the job name
func (j *ImpactMeasureJob) Name() string {
	return "impact_measure"
}

// Schedule returns the cron schedule (hourly, offset from the scan)
func (j *ImpactMeasureJob) Schedule() string {
	return "0 15 * * * *"
}

// Run executes one measurement pass
func (j *ImpactMeasureJob) Run(ctx context.Context) error {
	result, err := j.measurer.Measure(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"eligible":  result.Eligible,
		"measured":  result.Measured,
		"too_early": result.TooEarly,
	}).Info("Scheduled measurement completed")

	return nil
}

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ekurt/newspulse/internal/scheduler"
	"github.com/ekurt/newspulse/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the job scheduler",
	Long: `Starts the scheduler daemon or manages registered jobs.

Registered jobs:
- news_scan: every 30 minutes (fetch headlines, score events)
- impact_measure: hourly at :15 (measure matured events)
- pool_maintenance: daily at 06:00 UTC (prune stale records)

Subcommands:
  start   - Start the scheduler daemon
  list    - List registered jobs
  run     - Run a specific job immediately
  status  - Show job execution history

Example:
  go run ./cmd/newspulse scheduler start
  go run ./cmd/newspulse scheduler list
  go run ./cmd/newspulse scheduler run news_scan`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		Long: `Starts the scheduler and schedules all registered jobs.

The scheduler runs until interrupted with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a specific job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}

	schedulerStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show job execution history",
		RunE:  showStatus,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
	schedulerCmd.AddCommand(schedulerStatusCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== NewsPulse Scheduler ===")

	sched, st, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer st.Close()

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, st, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer st.Close()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	sched, st, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer st.Close()

	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Println("Job started (running in background)")
	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	sched, st, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer st.Close()

	fmt.Println("Job history:")
	fmt.Println()

	for _, jobName := range sched.GetAllJobs() {
		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			continue
		}

		fmt.Printf("📊 %s\n", jobName)
		fmt.Printf("   Total Runs: %d\n", len(history.Results))
		fmt.Printf("   Success Rate: %.1f%%\n", history.GetSuccessRate()*100)

		for _, result := range history.GetLatestResults(3) {
			status := "ok"
			if !result.Success {
				status = "failed: " + result.Error
			}
			fmt.Printf("   %s (%s) - %s\n",
				result.StartTime.Format("2006-01-02 15:04:05"),
				result.Duration.Round(0),
				status)
		}

		fmt.Println()
	}

	return nil
}

func initScheduler() (*scheduler.Scheduler, *stack, error) {
	st, err := initStack()
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(st.logger)

	sched.AddJob(jobs.NewNewsScanJob(st.scanner, st.logger))
	sched.AddJob(jobs.NewImpactMeasureJob(st.measurer, st.logger))
	sched.AddJob(jobs.NewPoolMaintenanceJob(st.poolMgr, st.repo, st.cfg, st.logger))

	return sched, st, nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// measureCmd represents the measure command
var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Run one measurement pass",
	Long: `Measures the realized price impact of matured high-score events
and rebuilds the leaderboard.

Example:
  go run ./cmd/newspulse measure`,
	RunE: runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	fmt.Println("=== NewsPulse Measure ===")

	st, err := initStack()
	if err != nil {
		return fmt.Errorf("init stack: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := st.measurer.Measure(ctx)
	if err != nil {
		return fmt.Errorf("measure: %w", err)
	}

	fmt.Println("\n✅ Measurement completed")
	fmt.Printf("   Eligible:  %d\n", result.Eligible)
	fmt.Printf("   Measured:  %d\n", result.Measured)
	fmt.Printf("   Too early: %d\n", result.TooEarly)
	fmt.Printf("   Failed:    %d\n", result.Failed)
	fmt.Printf("   Duration:  %s\n", time.Since(start).Round(time.Millisecond))

	return nil
}

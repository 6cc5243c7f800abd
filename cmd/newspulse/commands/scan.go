package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one scan pass",
	Long: `Fetches headlines for the tracked universe, scores each event,
and merges the results into the pool.

Example:
  go run ./cmd/newspulse scan`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Println("=== NewsPulse Scan ===")

	st, err := initStack()
	if err != nil {
		return fmt.Errorf("init stack: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := st.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	fmt.Println("\n✅ Scan completed")
	fmt.Printf("   Symbols:    %d\n", result.Symbols)
	fmt.Printf("   Scored:     %d\n", result.Scored)
	fmt.Printf("   Failed:     %d\n", result.Failed)
	fmt.Printf("   Pool items: %d\n", result.PoolItems)
	fmt.Printf("   Duration:   %s\n", time.Since(start).Round(time.Millisecond))

	return nil
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekurt/newspulse/internal/contracts"
	"github.com/ekurt/newspulse/internal/engine"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the pool with demo events",
	Long: `Scores a fixed set of synthetic headlines against synthetic candle
series and merges them into the pool. Useful for exercising the API and
websocket feed without live API keys.

Example:
  go run ./cmd/newspulse seed`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedEvent is one synthetic headline with its price backdrop
type seedEvent struct {
	symbol   string
	headline string
	category string
	ageHours int
	drift    float64 // daily fractional close-to-close drift before the event
}

var seedEvents = []seedEvent{
	{"AAPL", "Apple beats earnings expectations, raises full-year guidance", "earnings", 3, 0.001},
	{"NVDA", "Nvidia announces record data center revenue on AI demand surge", "earnings", 8, 0.008},
	{"TSLA", "Tesla misses delivery estimates, shares fell 6% premarket", "company", 5, -0.006},
	{"MSFT", "Microsoft wins major cloud contract, upgraded by analysts", "company", 30, 0.002},
	{"AMZN", "Amazon faces regulatory probe into marketplace practices", "company", 12, -0.001},
	{"META", "Meta announces $40 billion buyback and dividend increase", "company", 2, 0.003},
}

func runSeed(cmd *cobra.Command, args []string) error {
	fmt.Println("=== NewsPulse Seed ===")

	st, err := initStack()
	if err != nil {
		return fmt.Errorf("init stack: %w", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	eng := engine.New()

	records := make([]*contracts.ImpactRecord, 0, len(seedEvents))
	for _, se := range seedEvents {
		event := contracts.NewsEvent{
			Symbol:      se.symbol,
			Headline:    se.headline,
			Category:    se.category,
			PublishedAt: now.Add(-time.Duration(se.ageHours) * time.Hour),
		}
		series := seedSeries(now, 90, 100.0, se.drift)
		records = append(records, eng.ScoreEvent(event, series, now))
	}

	p, err := st.repo.LoadPool(ctx)
	if err != nil {
		return fmt.Errorf("load pool: %w", err)
	}
	p.Items = st.poolMgr.Merge(p.Items, records)
	if err := st.repo.SavePool(ctx, p); err != nil {
		return fmt.Errorf("save pool: %w", err)
	}

	view := st.poolMgr.ReduceLeaderboard(p.Items, now)
	if err := st.repo.SaveLeaderboard(ctx, view); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}

	fmt.Println("\n✅ Seed completed")
	fmt.Printf("   Seeded:      %d\n", len(records))
	fmt.Printf("   Pool items:  %d\n", len(p.Items))
	fmt.Printf("   Leaderboard: %d\n", len(view.Items))
	for _, rec := range view.Items {
		fmt.Printf("   %-5s score=%-3d confidence=%-2d %s\n",
			rec.Symbol, rec.Score, rec.Confidence, rec.Headline)
	}

	return nil
}

// seedSeries builds a daily close series ending on the current day, with a
// constant close-to-close drift
func seedSeries(now time.Time, days int, base, drift float64) *contracts.CandleSeries {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	times := make([]int64, days)
	closes := make([]float64, days)
	volumes := make([]int64, days)

	price := base
	for i := 0; i < days; i++ {
		times[i] = day.AddDate(0, 0, i-days+1).Unix()
		closes[i] = price
		volumes[i] = 1_000_000
		price *= 1 + drift
	}

	series, err := contracts.NewCandleSeries(times, closes, volumes)
	if err != nil {
		// Lengths are constructed together above
		panic(err)
	}
	return series
}

package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/newspulse/internal/contracts"
)

func rec(symbol, headline string, published time.Time, score int) *contracts.ImpactRecord {
	return &contracts.ImpactRecord{
		Symbol:      symbol,
		Headline:    headline,
		PublishedAt: published,
		Score:       score,
		TooEarly:    true,
	}
}

func TestMergeDeduplicates(t *testing.T) {
	m := NewManager(500, 120)
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	existing := []*contracts.ImpactRecord{
		rec("AAPL", "Apple beats earnings", at, 80),
	}
	incoming := []*contracts.ImpactRecord{
		rec("AAPL", "  apple BEATS earnings  ", at, 75), // same event, noisy text
		rec("NVDA", "NVIDIA raises guidance", at.Add(time.Hour), 85),
	}

	merged := m.Merge(existing, incoming)

	require.Len(t, merged, 2)
	keys := map[string]int{}
	for _, r := range merged {
		keys[r.Key()]++
	}
	for k, n := range keys {
		assert.Equal(t, 1, n, "duplicate key %s", k)
	}
}

func TestMergeKeepsMeasuredOverRescored(t *testing.T) {
	m := NewManager(500, 120)
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	measuredAt := at.Add(24 * time.Hour)

	measured := rec("AAPL", "Apple beats earnings", at, 92)
	measured.TooEarly = false
	measured.MeasuredAt = &measuredAt

	incoming := []*contracts.ImpactRecord{
		rec("AAPL", "Apple beats earnings", at, 80), // fresh provisional copy
	}

	merged := m.Merge([]*contracts.ImpactRecord{measured}, incoming)

	require.Len(t, merged, 1)
	assert.NotNil(t, merged[0].MeasuredAt, "measured record must survive a re-scan")
	assert.Equal(t, 92, merged[0].Score)
}

func TestMergeNewestFirstAndCapacity(t *testing.T) {
	m := NewManager(3, 120)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var existing []*contracts.ImpactRecord
	for i := 0; i < 5; i++ {
		existing = append(existing, rec("AAPL", string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour), 70))
	}

	merged := m.Merge(existing, nil)

	require.Len(t, merged, 3)
	assert.True(t, merged[0].PublishedAt.After(merged[1].PublishedAt))
	assert.True(t, merged[1].PublishedAt.After(merged[2].PublishedAt))
	// the oldest two fell off
	assert.Equal(t, "e", merged[0].Headline)
	assert.Equal(t, "c", merged[2].Headline)
}

func TestMeasureEligible(t *testing.T) {
	m := NewManager(500, 120)
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	old := now.Add(-30 * time.Hour)
	fresh := now.Add(-2 * time.Hour)

	measuredAt := now.Add(-time.Hour)
	already := rec("MSFT", "m", old, 90)
	already.MeasuredAt = &measuredAt

	items := []*contracts.ImpactRecord{
		rec("AAPL", "high score, old enough", old, 88),
		rec("NVDA", "too fresh", fresh, 95),
		rec("TSLA", "below threshold", old, 60),
		already,
		rec("AMD", "also eligible", old, 79),
	}

	eligible := m.MeasureEligible(items, now, 75, 20, 25)

	require.Len(t, eligible, 2)
	// highest provisional score first
	assert.Equal(t, "AAPL", eligible[0].Symbol)
	assert.Equal(t, "AMD", eligible[1].Symbol)
}

func TestMeasureEligibleCapped(t *testing.T) {
	m := NewManager(500, 120)
	now := time.Now()
	old := now.Add(-48 * time.Hour)

	var items []*contracts.ImpactRecord
	for i := 0; i < 40; i++ {
		items = append(items, rec("AAPL", string(rune('a'+i)), old.Add(time.Duration(i)*time.Minute), 80+i%10))
	}

	eligible := m.MeasureEligible(items, now, 75, 20, 25)
	assert.Len(t, eligible, 25)
}

func TestReduceLeaderboard(t *testing.T) {
	m := NewManager(500, 120)
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	items := []*contracts.ImpactRecord{
		rec("AAPL", "a1", at, 70),
		rec("AAPL", "a2", at.Add(time.Hour), 90), // best AAPL
		rec("NVDA", "n1", at, 85),
		rec("TSLA", "t1", at, 85),
	}

	view := m.ReduceLeaderboard(items, at)

	require.Len(t, view.Items, 3)
	assert.Equal(t, "AAPL", view.Items[0].Symbol)
	assert.Equal(t, 90, view.Items[0].Score)

	// 85-85 tie keeps pool order: NVDA appeared first
	assert.Equal(t, "NVDA", view.Items[1].Symbol)
	assert.Equal(t, "TSLA", view.Items[2].Symbol)
}

func TestReduceLeaderboardTieSameSymbolKeepsFirst(t *testing.T) {
	m := NewManager(500, 120)
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	first := rec("AAPL", "first seen", at, 85)
	second := rec("AAPL", "second seen", at.Add(time.Hour), 85)

	view := m.ReduceLeaderboard([]*contracts.ImpactRecord{first, second}, at)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "first seen", view.Items[0].Headline)
}

func TestReduceLeaderboardTopN(t *testing.T) {
	m := NewManager(500, 2)
	at := time.Now()

	items := []*contracts.ImpactRecord{
		rec("AAPL", "a", at, 90),
		rec("NVDA", "n", at, 80),
		rec("TSLA", "t", at, 70),
	}

	view := m.ReduceLeaderboard(items, at)

	require.Len(t, view.Items, 2)
	assert.Equal(t, "AAPL", view.Items[0].Symbol)
	assert.Equal(t, "NVDA", view.Items[1].Symbol)
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/newspulse/internal/contracts"
)

func testSeries(t *testing.T, closes []float64) *contracts.CandleSeries {
	t.Helper()
	times := make([]int64, len(closes))
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC).Unix()
	for i := range times {
		times[i] = base + int64(i)*86400
	}
	s, err := contracts.NewCandleSeries(times, closes, nil)
	require.NoError(t, err)
	return s
}

func TestScoreEventProvisional(t *testing.T) {
	eng := New()

	closes := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 102, 107.1, 107, 107, 107, 112.2}
	s := testSeries(t, closes)

	event := contracts.NewsEvent{
		Symbol:      "AAPL",
		Headline:    "Apple beats earnings expectations",
		Category:    "earnings",
		PublishedAt: time.Unix(s.Times[10], 0).UTC(),
	}

	rec := eng.ScoreEvent(event, s, time.Now())

	require.NotNil(t, rec)
	assert.True(t, rec.TooEarly)
	assert.Nil(t, rec.MeasuredAt)
	assert.Equal(t, contracts.StateProvisional, rec.State())

	require.NotNil(t, rec.RetPre5)
	assert.InDelta(t, 0.02, *rec.RetPre5, 1e-9)

	// beat + catalyst + surprise on a quiet pre-week
	assert.Equal(t, 80, rec.ExpectedImpact)
	assert.Equal(t, rec.ExpectedImpact, rec.Score)
	assert.Equal(t, 30, rec.Confidence)
	assert.Equal(t, 1, rec.ExpectedDir)
}

func TestScoreEventNoCandles(t *testing.T) {
	eng := New()

	event := contracts.NewsEvent{
		Symbol:      "AAPL",
		Headline:    "Apple beats earnings expectations",
		PublishedAt: time.Now(),
	}

	rec := eng.ScoreEvent(event, nil, time.Now())

	require.NotNil(t, rec)
	assert.Nil(t, rec.RetPre5)
	assert.True(t, rec.TooEarly)
	// Expected impact still computed from the headline alone
	assert.GreaterOrEqual(t, rec.ExpectedImpact, ExpectedMin)
	assert.LessOrEqual(t, rec.ExpectedImpact, ExpectedMax)
}

func TestMeasureAppliesOutcome(t *testing.T) {
	eng := New()

	closes := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 102, 107.1, 107, 107, 107, 112.2}
	s := testSeries(t, closes)

	event := contracts.NewsEvent{
		Symbol:      "AAPL",
		Headline:    "Apple beats earnings expectations",
		Category:    "earnings",
		PublishedAt: time.Unix(s.Times[10], 0).UTC(),
	}

	rec := eng.ScoreEvent(event, s, time.Now())
	now := time.Now()

	require.True(t, eng.Measure(rec, s, now))

	assert.False(t, rec.TooEarly)
	require.NotNil(t, rec.MeasuredAt)
	assert.Equal(t, contracts.StateMeasured, rec.State())

	require.NotNil(t, rec.Ret5d)
	assert.InDelta(t, 0.10, *rec.Ret5d, 1e-9)

	// |ret5d| = 10% saturates the realized scale
	assert.Equal(t, 100, rec.RealizedImpact)
	require.NotNil(t, rec.PricedIn)
	assert.False(t, *rec.PricedIn)

	// 100*0.7 + 80*0.3, no penalty
	assert.Equal(t, 94, rec.Score)
	assert.Equal(t, 90, rec.Confidence)
	assert.Equal(t, 1, rec.RealizedDir)
	require.NotNil(t, rec.BullTrap)
	assert.False(t, *rec.BullTrap)
}

func TestMeasureAtMostOnce(t *testing.T) {
	eng := New()

	closes := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 102, 107.1, 107, 107, 107, 112.2}
	s := testSeries(t, closes)

	event := contracts.NewsEvent{
		Symbol:      "AAPL",
		Headline:    "Apple beats earnings expectations",
		PublishedAt: time.Unix(s.Times[10], 0).UTC(),
	}

	rec := eng.ScoreEvent(event, s, time.Now())
	require.True(t, eng.Measure(rec, s, time.Now()))

	first := *rec.MeasuredAt
	score := rec.Score

	assert.False(t, eng.Measure(rec, s, time.Now().Add(time.Hour)))
	assert.Equal(t, first, *rec.MeasuredAt)
	assert.Equal(t, score, rec.Score)
}

func TestMeasureWithoutOutcomeStaysProvisional(t *testing.T) {
	eng := New()

	closes := []float64{100, 100, 100, 100, 100, 100, 102}
	s := testSeries(t, closes)

	event := contracts.NewsEvent{
		Symbol:      "AAPL",
		Headline:    "Apple beats earnings expectations",
		PublishedAt: time.Unix(s.Times[6], 0).UTC(), // event on the last candle
	}

	rec := eng.ScoreEvent(event, s, time.Now())

	assert.False(t, eng.Measure(rec, s, time.Now()))
	assert.True(t, rec.TooEarly)
	assert.Nil(t, rec.MeasuredAt)
}

func TestMeasurePenalizesPricedInMove(t *testing.T) {
	eng := New()

	// 8% run-up into the event, then a small 1.5% follow-through
	closes := []float64{100, 100, 100, 100, 100, 100, 108, 109.62, 109, 109, 109, 109}
	s := testSeries(t, closes)

	event := contracts.NewsEvent{
		Symbol:      "NVDA",
		Headline:    "NVIDIA beats earnings expectations",
		Category:    "earnings",
		PublishedAt: time.Unix(s.Times[6], 0).UTC(),
	}

	rec := eng.ScoreEvent(event, s, time.Now())
	require.True(t, eng.Measure(rec, s, time.Now()))

	require.NotNil(t, rec.PricedIn)
	assert.True(t, *rec.PricedIn)
	assert.Equal(t, 95, rec.Confidence)

	// The penalty must bite: combined score lands below the pure blend
	blend := CombineScore(intPtr(rec.RealizedImpact), rec.ExpectedImpact, 0)
	assert.Less(t, rec.Score, blend)
}

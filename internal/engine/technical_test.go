package engine

import (
	"testing"

	"github.com/ekurt/newspulse/internal/contracts"
)

func series(t *testing.T, closes []float64, volumes []int64) *contracts.CandleSeries {
	t.Helper()
	times := make([]int64, len(closes))
	for i := range times {
		times[i] = int64(i+1) * 86400
	}
	s, err := contracts.NewCandleSeries(times, closes, volumes)
	if err != nil {
		t.Fatalf("NewCandleSeries: %v", err)
	}
	return s
}

func TestAnalyzeTechnicalShortSeries(t *testing.T) {
	s := series(t, []float64{100, 101, 102}, nil)

	tech := AnalyzeTechnical(s, 2)

	if tech.Trend != "" {
		t.Errorf("Trend = %q, want empty (no SMA window)", tech.Trend)
	}
	if tech.RSI != nil {
		t.Errorf("RSI = %v, want nil", *tech.RSI)
	}
	if tech.Momentum != nil || tech.Breakout || tech.VolumeSpike {
		t.Error("expected no tags on a 3-candle series")
	}
}

func TestTrendFallbackSMA50Only(t *testing.T) {
	// 60 candles: enough for SMA50, not SMA200
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i) // steadily rising
	}
	s := series(t, closes, nil)

	tech := AnalyzeTechnical(s, 59)
	if tech.Trend != "Uptrend" {
		t.Errorf("Trend = %q, want Uptrend via SMA50 fallback", tech.Trend)
	}
}

func TestTrendDowntrend(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	s := series(t, closes, nil)

	tech := AnalyzeTechnical(s, 59)
	if tech.Trend != "Downtrend" {
		t.Errorf("Trend = %q, want Downtrend", tech.Trend)
	}
}

func TestRSIAllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	got := rsi(closes, 19, rsiPeriod)
	if got == nil {
		t.Fatal("rsi = nil, want 100")
	}
	if *got != 100 {
		t.Errorf("rsi = %v, want 100 when average loss is zero", *got)
	}
}

func TestRSIShortHistory(t *testing.T) {
	closes := []float64{100, 101, 102}
	if got := rsi(closes, 2, rsiPeriod); got != nil {
		t.Errorf("rsi = %v, want nil for short history", *got)
	}
}

func TestBreakoutDetection(t *testing.T) {
	// flat 25 candles then a close clearly above the 20d high
	closes := make([]float64, 26)
	for i := range closes {
		closes[i] = 100
	}
	closes[25] = 103
	s := series(t, closes, nil)

	tech := AnalyzeTechnical(s, 25)
	if !tech.Breakout {
		t.Error("Breakout = false, want true for close 3% above 20d high")
	}

	// just under the margin is not a breakout
	closes[25] = 100.1
	s2 := series(t, closes, nil)
	if AnalyzeTechnical(s2, 25).Breakout {
		t.Error("Breakout = true at the exact margin, want false")
	}
}

func TestVolumeSpike(t *testing.T) {
	closes := make([]float64, 10)
	vols := make([]int64, 10)
	for i := range closes {
		closes[i] = 100
		vols[i] = 1000
	}
	vols[9] = 2500 // > 2.3x the 6d average

	s := series(t, closes, vols)
	if !AnalyzeTechnical(s, 9).VolumeSpike {
		t.Error("VolumeSpike = false, want true for 2.5x volume")
	}

	vols[9] = 2000
	s2 := series(t, closes, vols)
	if AnalyzeTechnical(s2, 9).VolumeSpike {
		t.Error("VolumeSpike = true for 2.0x volume, want false")
	}
}

func TestNearSupportWinsOverResistance(t *testing.T) {
	// flat window: price is near both the 20d min and max; support is
	// checked first
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	s := series(t, closes, nil)

	tech := AnalyzeTechnical(s, 24)
	if !tech.NearSupport {
		t.Error("NearSupport = false, want true")
	}
	if tech.NearResistance {
		t.Error("NearResistance = true, want false (support wins)")
	}
}

func TestIsBullTrap(t *testing.T) {
	tests := []struct {
		name     string
		breakout bool
		ret1d    *float64
		ret5d    *float64
		want     bool
	}{
		{"no breakout", false, f64(-0.10), f64(-0.10), false},
		{"breakout holds", true, f64(0.01), f64(0.02), false},
		{"fails next day", true, f64(-0.04), nil, true},
		{"fails within 5d", true, f64(0.01), f64(-0.06), true},
		{"no outcome yet", true, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBullTrap(tt.breakout, tt.ret1d, tt.ret5d); got != tt.want {
				t.Errorf("IsBullTrap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextString(t *testing.T) {
	r := 75.0
	tech := Technical{Trend: "Uptrend", RSI: &r, Breakout: true}

	got := tech.ContextString("earnings")
	want := "Uptrend | RSI 75 (overbought) | 20d breakout | earnings"
	if got != want {
		t.Errorf("ContextString = %q, want %q", got, want)
	}
}

func TestContextStringEmpty(t *testing.T) {
	if got := (Technical{}).ContextString(""); got != "" {
		t.Errorf("ContextString = %q, want empty", got)
	}
}

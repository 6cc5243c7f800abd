package engine

import (
	"fmt"
	"strings"

	"github.com/ekurt/newspulse/internal/contracts"
)

// Lookback windows for the technical tags
const (
	smaShortPeriod   = 50
	smaLongPeriod    = 200
	rangePeriod      = 20 // support/resistance and breakout
	momentumPeriod   = 10
	rsiPeriod        = 14
	volumePeriod     = 6
	momentumMin      = 0.06  // 10d move worth tagging
	proximityBand    = 0.02  // within 2% of 20d min/max
	breakoutMargin   = 1.002 // close above 20d high by 0.2%
	volumeSpikeRatio = 2.3   // vs 6d average volume
	bullTrap1dDrop   = -0.03
	bullTrap5dDrop   = -0.05
)

// Technical holds the advisory tags computed at an aligned candle index.
// Informational only: nothing here feeds the numeric score beyond the
// estimator reading the composed string.
type Technical struct {
	Trend          string   // "Uptrend", "Downtrend", "Range" or ""
	Momentum       *float64 // 10d trailing return when |m| >= 6%
	NearSupport    bool
	NearResistance bool
	RSI            *float64
	Breakout       bool
	VolumeSpike    bool
}

// AnalyzeTechnical computes the technical context at idx.
// Every tag degrades to absent when the window has too little history.
func AnalyzeTechnical(series *contracts.CandleSeries, idx int) Technical {
	var t Technical

	if series == nil || idx < 0 || idx >= series.Len() {
		return t
	}

	closes := series.Closes
	price := closes[idx]

	t.Trend = trendTag(closes, idx, price)

	// Momentum: 10d trailing return, tagged only when it is large
	if idx >= momentumPeriod && closes[idx-momentumPeriod] != 0 {
		m := (price - closes[idx-momentumPeriod]) / closes[idx-momentumPeriod]
		if m >= momentumMin || m <= -momentumMin {
			t.Momentum = &m
		}
	}

	// Support/resistance proximity over the trailing 20 days.
	// Support is checked first.
	if idx >= rangePeriod {
		lo, hi := windowMinMax(closes[idx-rangePeriod : idx])
		if price <= lo*(1+proximityBand) {
			t.NearSupport = true
		} else if price >= hi*(1-proximityBand) {
			t.NearResistance = true
		}
	}

	t.RSI = rsi(closes, idx, rsiPeriod)

	// 20d breakout needs a full window plus one prior day
	if idx >= rangePeriod+1 {
		_, hi := windowMinMax(closes[idx-rangePeriod : idx])
		t.Breakout = price > hi*breakoutMargin
	}

	if series.HasVolumes() && idx >= volumePeriod {
		var sum int64
		for _, v := range series.Volumes[idx-volumePeriod : idx] {
			sum += v
		}
		avg := float64(sum) / float64(volumePeriod)
		t.VolumeSpike = avg > 0 && float64(series.Volumes[idx]) > avg*volumeSpikeRatio
	}

	return t
}

// trendTag classifies price against SMA50/SMA200
func trendTag(closes []float64, idx int, price float64) string {
	sma50 := sma(closes, idx, smaShortPeriod)
	sma200 := sma(closes, idx, smaLongPeriod)

	switch {
	case sma50 != nil && sma200 != nil:
		if price > *sma50 && *sma50 > *sma200 {
			return "Uptrend"
		}
		if price < *sma50 && *sma50 < *sma200 {
			return "Downtrend"
		}
		return "Range"
	case sma50 != nil:
		// Short history: fall back to price vs SMA50
		if price >= *sma50 {
			return "Uptrend"
		}
		return "Downtrend"
	default:
		return ""
	}
}

// sma returns the arithmetic mean of the trailing period closes ending
// at idx, or nil when the window is incomplete. No partial averages.
func sma(closes []float64, idx, period int) *float64 {
	if idx+1 < period {
		return nil
	}

	var sum float64
	for _, c := range closes[idx+1-period : idx+1] {
		sum += c
	}
	v := sum / float64(period)
	return &v
}

// rsi computes the Wilder-style RSI over the trailing `period` one-day
// changes ending at idx. Nil when history is short; 100 when the average
// loss is exactly zero.
func rsi(closes []float64, idx, period int) *float64 {
	if idx < period {
		return nil
	}

	var gains, losses float64
	for i := idx - period + 1; i <= idx; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	var v float64
	if avgLoss == 0 {
		v = 100
	} else {
		rs := avgGain / avgLoss
		v = 100 - (100 / (1 + rs))
	}

	return &v
}

func windowMinMax(window []float64) (float64, float64) {
	lo, hi := window[0], window[0]
	for _, c := range window[1:] {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

// IsBullTrap flags a breakout that immediately failed: only computable
// once realized returns exist.
func IsBullTrap(breakout bool, ret1d, ret5d *float64) bool {
	if !breakout {
		return false
	}
	if ret1d != nil && *ret1d < bullTrap1dDrop {
		return true
	}
	if ret5d != nil && *ret5d < bullTrap5dDrop {
		return true
	}
	return false
}

// ContextString composes the human-readable tag string stored on the
// record, with the catalyst category appended when known.
func (t Technical) ContextString(category string) string {
	parts := make([]string, 0, 7)

	if t.Trend != "" {
		parts = append(parts, t.Trend)
	}
	if t.Momentum != nil {
		parts = append(parts, fmt.Sprintf("momentum %+.1f%%", *t.Momentum*100))
	}
	if t.NearSupport {
		parts = append(parts, "near support")
	} else if t.NearResistance {
		parts = append(parts, "near resistance")
	}
	if t.RSI != nil {
		switch {
		case *t.RSI >= 70:
			parts = append(parts, fmt.Sprintf("RSI %.0f (overbought)", *t.RSI))
		case *t.RSI <= 30:
			parts = append(parts, fmt.Sprintf("RSI %.0f (oversold)", *t.RSI))
		default:
			parts = append(parts, fmt.Sprintf("RSI %.0f", *t.RSI))
		}
	}
	if t.Breakout {
		parts = append(parts, "20d breakout")
	}
	if t.VolumeSpike {
		parts = append(parts, "volume spike")
	}
	if category != "" {
		parts = append(parts, category)
	}

	return strings.Join(parts, " | ")
}

package contracts

import "fmt"

// CandleSeries holds a daily OHLC close series for one symbol.
// Times are Unix-second day-start timestamps, strictly increasing.
// Volumes is optional; when present it has the same length as Times.
type CandleSeries struct {
	Times   []int64   `json:"t"`
	Closes  []float64 `json:"c"`
	Volumes []int64   `json:"v,omitempty"`
}

// NewCandleSeries validates the series invariants. A length mismatch is a
// programming-contract violation and must fail loudly rather than silently
// poison downstream scores.
func NewCandleSeries(times []int64, closes []float64, volumes []int64) (*CandleSeries, error) {
	if len(times) != len(closes) {
		return nil, fmt.Errorf("candle series length mismatch: %d times vs %d closes", len(times), len(closes))
	}
	if volumes != nil && len(volumes) != len(times) {
		return nil, fmt.Errorf("candle series length mismatch: %d times vs %d volumes", len(times), len(volumes))
	}

	return &CandleSeries{
		Times:   times,
		Closes:  closes,
		Volumes: volumes,
	}, nil
}

// Len returns the number of candles
func (s *CandleSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Times)
}

// HasVolumes reports whether a volume series is present
func (s *CandleSeries) HasVolumes() bool {
	return s != nil && len(s.Volumes) == len(s.Times) && len(s.Volumes) > 0
}

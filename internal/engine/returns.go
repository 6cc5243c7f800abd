package engine

import "math"

// Returns holds the event-aligned fractional returns. Nil means the
// series lacks enough history in that direction.
type Returns struct {
	Pre5  *float64 // event-day close vs close 5 trading days before
	Next1 *float64 // close 1 trading day after vs event-day close
	Next5 *float64 // close 5 trading days after vs event-day close
}

// ComputeReturns derives pre/post event returns at an aligned index.
// Pure function of already-fetched data; a zero or non-finite base price
// nulls all three returns.
func ComputeReturns(closes []float64, idx int) Returns {
	var r Returns

	if idx < 0 || idx >= len(closes) {
		return r
	}

	base := closes[idx]
	if base == 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		return r
	}

	if idx+1 < len(closes) {
		v := (closes[idx+1] - base) / base
		r.Next1 = &v
	}

	if idx+5 < len(closes) {
		v := (closes[idx+5] - base) / base
		r.Next5 = &v
	}

	if idx-5 >= 0 && closes[idx-5] != 0 {
		v := (base - closes[idx-5]) / closes[idx-5]
		r.Pre5 = &v
	}

	return r
}

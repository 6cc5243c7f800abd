package engine

// NotFound is returned by AlignIndex when the target precedes the series start
const NotFound = -1

// AlignIndex maps a news timestamp to a candle index: the last index i
// with times[i] <= target. A timestamp on a weekend or holiday resolves
// to the most recent prior trading day, which is the intended semantics.
// times must be strictly increasing. O(log n) predecessor search.
func AlignIndex(times []int64, target int64) int {
	lo, hi := 0, len(times)-1
	ans := NotFound

	for lo <= hi {
		mid := (lo + hi) / 2
		if times[mid] <= target {
			ans = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}

	return ans
}

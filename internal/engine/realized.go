package engine

import "math"

// Post-measurement tuning
const (
	// RealizedImpact bounds: each 1% of absolute move is worth ~10
	// points on top of the 50 floor, capped at +50
	RealizedMin = 50
	RealizedMax = 100

	realizedPointsPerUnit = 1000

	// Combined score bounds
	ScoreMin = 40
	ScoreMax = 100

	// Priced-in (realized form)
	pricedInRatio      = 0.9   // pre-move dwarfs the post-move
	pricedInMinMove    = 0.005 // post-move must be non-trivial to judge
	pricedInPenaltyMax = 25
	penaltyPerUnit     = 1200

	// Confidence tiers
	confidenceBase     = 30
	confidenceWith1d   = 70
	confidenceWith5d   = 90
	confidencePricedIn = 5

	// Realized/expected blend
	realizedWeight = 0.7
	expectedWeight = 0.3

	// realizedDir deadband: moves under 0.5% are a no-call
	directionDeadband = 0.005
)

// UsedReturn picks the outcome return: 5-day supersedes 1-day.
// Nil when no outcome data exists yet.
func UsedReturn(ret1d, ret5d *float64) *float64 {
	if ret5d != nil {
		return ret5d
	}
	return ret1d
}

// RealizedImpact converts the outcome return into a [50,100] score.
// Nil when no outcome data exists.
func RealizedImpact(ret1d, ret5d *float64) *int {
	r := UsedReturn(ret1d, ret5d)
	if r == nil {
		return nil
	}

	base := clampInt(int(math.Round(math.Abs(*r)*realizedPointsPerUnit)), 0, 50)
	v := clampInt(RealizedMin+base, RealizedMin, RealizedMax)
	return &v
}

// PricedInRealized reports whether the pre-event move already used up
// the post-event move. Undecidable (nil) when either side is missing or
// the post-move is too small to judge.
func PricedInRealized(retPre5, rUsed *float64) *bool {
	if retPre5 == nil || rUsed == nil {
		return nil
	}
	if math.Abs(*rUsed) <= pricedInMinMove {
		return nil
	}

	v := math.Abs(*retPre5) > math.Abs(*rUsed)*pricedInRatio
	return &v
}

// PricedInPenalty grows with how much the pre-move exceeded the
// post-move. Zero when not priced in. Monotone in |retPre5| for a fixed
// rUsed.
func PricedInPenalty(retPre5, rUsed *float64, pricedIn *bool) int {
	if pricedIn == nil || !*pricedIn || retPre5 == nil || rUsed == nil {
		return 0
	}

	excess := math.Abs(*retPre5) - math.Abs(*rUsed)
	if excess < 0 {
		excess = 0
	}

	return clampInt(int(math.Round(excess*penaltyPerUnit)), 0, pricedInPenaltyMax)
}

// Confidence characterizes how much outcome evidence exists, not
// correctness. Monotonically non-decreasing as 1d then 5d data arrives.
func Confidence(ret1d, ret5d *float64, pricedIn *bool) int {
	c := confidenceBase
	if ret1d != nil {
		c = confidenceWith1d
	}
	if ret5d != nil {
		c = confidenceWith5d
	}
	if pricedIn != nil && *pricedIn {
		c += confidencePricedIn
	}
	return clampInt(c, 0, 100)
}

// CombineScore blends realized and expected impact, applies the
// priced-in penalty, and clamps. With no realized impact the expected
// score stands alone.
func CombineScore(realizedImpact *int, expectedImpact, penalty int) int {
	if realizedImpact == nil {
		return clampInt(expectedImpact-penalty, ScoreMin, ScoreMax)
	}

	blended := math.Round(float64(*realizedImpact)*realizedWeight + float64(expectedImpact)*expectedWeight)
	return clampInt(int(blended)-penalty, ScoreMin, ScoreMax)
}

// RealizedDirection is the sign of the outcome move, 0 inside the
// deadband or when no outcome exists
func RealizedDirection(rUsed *float64) int {
	if rUsed == nil {
		return 0
	}
	switch {
	case *rUsed > directionDeadband:
		return 1
	case *rUsed < -directionDeadband:
		return -1
	default:
		return 0
	}
}

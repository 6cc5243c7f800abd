package engine

import (
	"math"
	"strings"
)

// Expected-impact tuning. One consistent constant set; historical drafts
// of this logic disagreed on the exact weights and the differences are
// not load-bearing.
const (
	sentimentClamp   = 20   // symmetric cap on the summed keyword score
	hedgeDampen      = 0.7  // multiplier when hedging words are present
	expectedBaseline = 58   // neutral headline lands here
	catalystBonus    = 4    // earnings/guidance/eps mention
	surpriseBonus    = 6    // positive news with no prior run-up
	pricedInPenalty  = 20   // good news already rallied into
	pricedInRelief   = 10   // bad news already sold off
	runUpThreshold   = 0.05 // retPre5 beyond this = already moved
	quietThreshold   = 0.02 // retPre5 at or below this = no run-up

	// ExpectedImpact bounds
	ExpectedMin = 45
	ExpectedMax = 95
)

// Estimator scores headlines before any outcome data exists.
// Pure and deterministic given (headline, retPre5); it never consults
// post-event returns.
type Estimator struct {
	lexicon map[string]int
}

// NewEstimator creates an estimator with the default lexicon
func NewEstimator() *Estimator {
	return &Estimator{lexicon: defaultLexicon}
}

// NewEstimatorWithLexicon creates an estimator with a custom table
func NewEstimatorWithLexicon(lexicon map[string]int) *Estimator {
	return &Estimator{lexicon: lexicon}
}

// Estimate is the pre-measurement scoring result
type Estimate struct {
	Sentiment      int   // clamped, hedged keyword score
	ExpectedImpact int   // [ExpectedMin, ExpectedMax]
	PricedIn       *bool // set only when the pre-event move decided it
	Direction      int   // -1/0/1 from sentiment sign
}

// Estimate scores a headline against the pre-event return.
func (e *Estimator) Estimate(headline string, retPre5 *float64) Estimate {
	sentiment := e.sentimentScore(headline)

	expected := expectedBaseline + sentiment
	if hasCatalyst(headline) {
		expected += catalystBonus
	}

	var pricedIn *bool
	switch {
	case sentiment > 0 && retPre5 != nil && *retPre5 > runUpThreshold:
		// Good news the market already rallied into
		expected -= pricedInPenalty
		pricedIn = boolPtr(true)
	case sentiment < 0 && retPre5 != nil && *retPre5 < -runUpThreshold:
		// Bad news already sold off; limited further downside
		expected += pricedInRelief
		pricedIn = boolPtr(true)
	case sentiment > 0 && retPre5 != nil && *retPre5 <= quietThreshold:
		// Surprise with no prior run-up tends to move more
		expected += surpriseBonus
	}

	return Estimate{
		Sentiment:      sentiment,
		ExpectedImpact: clampInt(expected, ExpectedMin, ExpectedMax),
		PricedIn:       pricedIn,
		Direction:      sign(sentiment),
	}
}

// sentimentScore sums lexicon weights for substring matches, dampens on
// hedging words, and clamps symmetrically.
func (e *Estimator) sentimentScore(headline string) int {
	text := strings.ToLower(headline)

	score := 0
	for stem, weight := range e.lexicon {
		if strings.Contains(text, stem) {
			score += weight
		}
	}

	if containsHedge(text) {
		score = int(math.Round(float64(score) * hedgeDampen))
	}

	return clampInt(score, -sentimentClamp, sentimentClamp)
}

// containsHedge checks hedge words as whole tokens; substring matching
// would false-positive on words like "buyback" for "but".
func containsHedge(text string) bool {
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == ':' || r == '.'
	}) {
		if _, ok := hedgeWords[tok]; ok {
			return true
		}
	}
	return false
}

func hasCatalyst(headline string) bool {
	text := strings.ToLower(headline)
	for _, w := range catalystWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func boolPtr(b bool) *bool { return &b }

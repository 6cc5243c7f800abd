package engine

import "testing"

func f64(v float64) *float64 { return &v }

func TestEstimateStrongBeatNoRunUp(t *testing.T) {
	e := NewEstimator()

	est := e.Estimate("Company X beats earnings, raises guidance", f64(0.01))

	if est.Sentiment != sentimentClamp {
		t.Errorf("Sentiment = %d, want clamp %d", est.Sentiment, sentimentClamp)
	}
	// baseline + clamp + catalyst + surprise
	if est.ExpectedImpact < 80 || est.ExpectedImpact > 90 {
		t.Errorf("ExpectedImpact = %d, want 80..90", est.ExpectedImpact)
	}
	if est.PricedIn != nil {
		t.Errorf("PricedIn = %v, want nil", *est.PricedIn)
	}
	if est.Direction != 1 {
		t.Errorf("Direction = %d, want 1", est.Direction)
	}
}

func TestEstimateMissAlreadySoldOff(t *testing.T) {
	e := NewEstimator()

	est := e.Estimate("Company Y misses estimates, shares already fell 8% this week", f64(-0.08))

	if est.PricedIn == nil || !*est.PricedIn {
		t.Fatal("PricedIn should be true for bad news after an 8% slide")
	}
	// Relief keeps the score above the pure-sentiment floor
	floor := expectedBaseline - sentimentClamp
	if est.ExpectedImpact <= floor {
		t.Errorf("ExpectedImpact = %d, want > %d (relief applied)", est.ExpectedImpact, floor)
	}
	if est.ExpectedImpact >= expectedBaseline {
		t.Errorf("ExpectedImpact = %d, want < baseline %d", est.ExpectedImpact, expectedBaseline)
	}
	if est.Direction != -1 {
		t.Errorf("Direction = %d, want -1", est.Direction)
	}
}

func TestEstimateGoodNewsAfterRunUp(t *testing.T) {
	e := NewEstimator()

	quiet := e.Estimate("Company beats expectations", f64(0.01))
	ranUp := e.Estimate("Company beats expectations", f64(0.08))

	if ranUp.PricedIn == nil || !*ranUp.PricedIn {
		t.Fatal("PricedIn should be true after a 8% run-up into good news")
	}
	if ranUp.ExpectedImpact >= quiet.ExpectedImpact {
		t.Errorf("run-up score %d should be below quiet score %d", ranUp.ExpectedImpact, quiet.ExpectedImpact)
	}
}

func TestEstimateBounds(t *testing.T) {
	e := NewEstimator()

	headlines := []struct {
		name     string
		headline string
		retPre5  *float64
	}{
		{"max bullish", "beats earnings, raises guidance, upgrade, record high surge", f64(0.0)},
		{"max bearish", "misses, cut, downgrade, lawsuit, recall, plunge", f64(-0.10)},
		{"neutral", "Company announces annual meeting date", nil},
		{"no pre-return", "beats earnings", nil},
	}

	for _, tt := range headlines {
		t.Run(tt.name, func(t *testing.T) {
			est := e.Estimate(tt.headline, tt.retPre5)
			if est.ExpectedImpact < ExpectedMin || est.ExpectedImpact > ExpectedMax {
				t.Errorf("ExpectedImpact = %d, want within [%d,%d]", est.ExpectedImpact, ExpectedMin, ExpectedMax)
			}
		})
	}
}

func TestEstimateDeterministic(t *testing.T) {
	e := NewEstimator()

	a := e.Estimate("Company beats earnings despite weak outlook", f64(0.01))
	b := e.Estimate("Company beats earnings despite weak outlook", f64(0.01))

	if a != b {
		t.Errorf("same input gave %+v then %+v", a, b)
	}
}

func TestHedgeDampening(t *testing.T) {
	e := NewEstimator()

	plain := e.sentimentScore("profit surge expected")
	hedged := e.sentimentScore("profit surge expected, but demand uncertain")

	if plain <= 0 {
		t.Fatalf("plain sentiment = %d, want > 0", plain)
	}
	if hedged >= plain {
		t.Errorf("hedged sentiment %d should be below plain %d", hedged, plain)
	}
}

func TestHedgeWholeTokenOnly(t *testing.T) {
	e := NewEstimator()

	// "buyback" contains "but" as a substring; must not dampen
	if got := e.sentimentScore("announces share buyback"); got != 12 {
		t.Errorf("sentiment = %d, want 12 (no hedge dampening)", got)
	}
}

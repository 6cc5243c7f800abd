package engine

import "testing"

func TestRealizedImpact(t *testing.T) {
	tests := []struct {
		name  string
		ret1d *float64
		ret5d *float64
		want  *int
	}{
		{"no outcome", nil, nil, nil},
		{"1d only", f64(0.03), nil, intPtr(80)},
		{"5d supersedes 1d", f64(0.03), f64(0.01), intPtr(60)},
		{"big move caps at 100", nil, f64(-0.12), intPtr(100)},
		{"flat move floors at 50", f64(0.0), nil, intPtr(50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RealizedImpact(tt.ret1d, tt.ret5d)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("RealizedImpact = %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Errorf("RealizedImpact = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestPricedInRealized(t *testing.T) {
	t.Run("pre-move dwarfs post-move", func(t *testing.T) {
		got := PricedInRealized(f64(0.08), f64(0.02))
		if got == nil || !*got {
			t.Error("want pricedIn = true")
		}
	})

	t.Run("post-move dominates", func(t *testing.T) {
		got := PricedInRealized(f64(0.01), f64(0.05))
		if got == nil || *got {
			t.Error("want pricedIn = false")
		}
	})

	t.Run("tiny post-move is undecidable", func(t *testing.T) {
		if got := PricedInRealized(f64(0.08), f64(0.001)); got != nil {
			t.Errorf("pricedIn = %v, want nil for sub-threshold move", *got)
		}
	})

	t.Run("missing pre-return is undecidable", func(t *testing.T) {
		if got := PricedInRealized(nil, f64(0.05)); got != nil {
			t.Errorf("pricedIn = %v, want nil", *got)
		}
	})
}

func TestPricedInPenaltyMonotone(t *testing.T) {
	rUsed := f64(0.02)
	yes := boolPtr(true)

	prev := -1
	for _, pre := range []float64{0.03, 0.05, 0.08, 0.12} {
		p := PricedInPenalty(f64(pre), rUsed, yes)
		if p < prev {
			t.Fatalf("penalty not monotone: pre=%v gave %d after %d", pre, p, prev)
		}
		if p < 0 || p > pricedInPenaltyMax {
			t.Fatalf("penalty %d outside [0,%d]", p, pricedInPenaltyMax)
		}
		prev = p
	}

	if got := PricedInPenalty(f64(0.08), rUsed, boolPtr(false)); got != 0 {
		t.Errorf("penalty = %d, want 0 when not priced in", got)
	}
	if got := PricedInPenalty(f64(0.08), rUsed, nil); got != 0 {
		t.Errorf("penalty = %d, want 0 when undecided", got)
	}
}

func TestConfidenceTiers(t *testing.T) {
	tests := []struct {
		name     string
		ret1d    *float64
		ret5d    *float64
		pricedIn *bool
		want     int
	}{
		{"no outcome", nil, nil, nil, 30},
		{"1d outcome", f64(0.01), nil, nil, 70},
		{"5d outcome", f64(0.01), f64(0.02), nil, 90},
		{"5d with priced-in call", f64(0.01), f64(0.02), boolPtr(true), 95},
		{"priced-in false adds nothing", f64(0.01), nil, boolPtr(false), 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.ret1d, tt.ret5d, tt.pricedIn); got != tt.want {
				t.Errorf("Confidence = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCombineScore(t *testing.T) {
	t.Run("blend weights realized heavier", func(t *testing.T) {
		// 80*0.7 + 88*0.3 = 82.4 -> 82
		if got := CombineScore(intPtr(80), 88, 0); got != 82 {
			t.Errorf("CombineScore = %d, want 82", got)
		}
	})

	t.Run("penalty subtracts after blending", func(t *testing.T) {
		if got := CombineScore(intPtr(80), 88, 10); got != 72 {
			t.Errorf("CombineScore = %d, want 72", got)
		}
	})

	t.Run("floor", func(t *testing.T) {
		if got := CombineScore(intPtr(50), 45, 25); got != ScoreMin {
			t.Errorf("CombineScore = %d, want floor %d", got, ScoreMin)
		}
	})

	t.Run("no realized impact uses expected alone", func(t *testing.T) {
		if got := CombineScore(nil, 88, 0); got != 88 {
			t.Errorf("CombineScore = %d, want 88", got)
		}
	})
}

func TestRealizedDirection(t *testing.T) {
	if got := RealizedDirection(f64(0.03)); got != 1 {
		t.Errorf("direction = %d, want 1", got)
	}
	if got := RealizedDirection(f64(-0.03)); got != -1 {
		t.Errorf("direction = %d, want -1", got)
	}
	if got := RealizedDirection(f64(0.002)); got != 0 {
		t.Errorf("direction = %d, want 0 inside deadband", got)
	}
	if got := RealizedDirection(nil); got != 0 {
		t.Errorf("direction = %d, want 0 for nil", got)
	}
}

func intPtr(v int) *int { return &v }

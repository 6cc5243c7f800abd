package engine

import "testing"

func TestComputeReturns(t *testing.T) {
	closes := []float64{100, 105, 110, 120, 90}

	t.Run("next1 at index 0", func(t *testing.T) {
		r := ComputeReturns(closes, 0)
		if r.Next1 == nil {
			t.Fatal("Next1 = nil, want 0.05")
		}
		if *r.Next1 != 0.05 {
			t.Errorf("Next1 = %v, want 0.05", *r.Next1)
		}
		if r.Next5 != nil {
			t.Errorf("Next5 = %v, want nil (series too short)", *r.Next5)
		}
	})

	t.Run("pre5 nil without history", func(t *testing.T) {
		r := ComputeReturns(closes, 1)
		if r.Pre5 != nil {
			t.Errorf("Pre5 = %v, want nil", *r.Pre5)
		}
	})

	t.Run("pre5 with full history", func(t *testing.T) {
		long := []float64{100, 101, 102, 103, 104, 110}
		r := ComputeReturns(long, 5)
		if r.Pre5 == nil {
			t.Fatal("Pre5 = nil, want 0.10")
		}
		if diff := *r.Pre5 - 0.10; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Pre5 = %v, want 0.10", *r.Pre5)
		}
	})

	t.Run("zero base nulls everything", func(t *testing.T) {
		r := ComputeReturns([]float64{0, 100}, 0)
		if r.Next1 != nil || r.Next5 != nil || r.Pre5 != nil {
			t.Error("expected all returns nil for zero base price")
		}
	})

	t.Run("out of range index", func(t *testing.T) {
		r := ComputeReturns(closes, 9)
		if r.Next1 != nil || r.Next5 != nil || r.Pre5 != nil {
			t.Error("expected all returns nil for out-of-range index")
		}
	})
}

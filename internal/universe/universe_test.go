package universe

import "testing"

func TestNewDefaults(t *testing.T) {
	u := New(nil)
	if u.Size() == 0 {
		t.Fatal("default universe is empty")
	}
	if !u.Contains("AAPL") {
		t.Error("default universe should contain AAPL")
	}
}

func TestNewConfiguredOverridesDefaults(t *testing.T) {
	u := New([]string{"aapl", " NVDA ", "aapl", ""})

	if u.Size() != 2 {
		t.Fatalf("Size = %d, want 2 (dedup + blank removal)", u.Size())
	}
	got := u.Symbols()
	if got[0] != "AAPL" || got[1] != "NVDA" {
		t.Errorf("Symbols = %v, want [AAPL NVDA]", got)
	}
	if u.Contains("MSFT") {
		t.Error("configured universe should not fall back to defaults")
	}
}

func TestSymbolsReturnsCopy(t *testing.T) {
	u := New([]string{"AAPL", "NVDA"})
	s := u.Symbols()
	s[0] = "HACK"
	if u.Symbols()[0] != "AAPL" {
		t.Error("Symbols must return a defensive copy")
	}
}

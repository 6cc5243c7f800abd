package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8090" {
		t.Errorf("Expected Port to be 8090, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Engine.MeasureMinScore != 75 {
		t.Errorf("Expected MeasureMinScore to be 75, got %d", cfg.Engine.MeasureMinScore)
	}

	if cfg.Engine.MinAgeHours != 20 {
		t.Errorf("Expected MinAgeHours to be 20, got %d", cfg.Engine.MinAgeHours)
	}

	if cfg.Engine.CandleLookbackDays != 120 {
		t.Errorf("Expected CandleLookbackDays to be 120, got %d", cfg.Engine.CandleLookbackDays)
	}

	if cfg.Scan.Workers != 5 {
		t.Errorf("Expected Scan.Workers to be 5, got %d", cfg.Scan.Workers)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("MEASURE_MIN_SCORE", "80")
	os.Setenv("SCAN_SYMBOLS", "aapl, nvda ,TSLA")
	os.Setenv("LOG_LEVEL", "info")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("MEASURE_MIN_SCORE")
		os.Unsetenv("SCAN_SYMBOLS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Engine.MeasureMinScore != 80 {
		t.Errorf("Expected MeasureMinScore to be 80, got %d", cfg.Engine.MeasureMinScore)
	}

	// Symbols are upper-cased and trimmed
	want := []string{"AAPL", "NVDA", "TSLA"}
	if len(cfg.Scan.Symbols) != len(want) {
		t.Fatalf("Expected %d symbols, got %d", len(want), len(cfg.Scan.Symbols))
	}
	for i, s := range want {
		if cfg.Scan.Symbols[i] != s {
			t.Errorf("Symbols[%d] = %s, want %s", i, cfg.Scan.Symbols[i], s)
		}
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for invalid ENV, got nil")
	}
}

func TestValidateHistoryRequiresURL(t *testing.T) {
	os.Setenv("HISTORY_ENABLED", "true")
	os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("HISTORY_ENABLED")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when HISTORY_ENABLED is set without DATABASE_URL, got nil")
	}
}

func TestValidateBadEngineValues(t *testing.T) {
	os.Setenv("MAX_POOL_ITEMS", "0")
	defer os.Unsetenv("MAX_POOL_ITEMS")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for MAX_POOL_ITEMS=0, got nil")
	}
}

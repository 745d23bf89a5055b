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
	if cfg.Port != "8085" {
		t.Errorf("Expected Port to be 8085, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Database.MaxConns != 10 {
		t.Errorf("Expected DB MaxConns to be 10, got %d", cfg.Database.MaxConns)
	}

	if cfg.Yahoo.RateLimit != 4.0 {
		t.Errorf("Expected Yahoo RateLimit to be 4.0, got %f", cfg.Yahoo.RateLimit)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("WATCHLIST", "AAPL, MSFT ,NTPC.NS")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("WATCHLIST")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}

	want := []string{"AAPL", "MSFT", "NTPC.NS"}
	if len(cfg.Watchlist) != len(want) {
		t.Fatalf("Expected %d watchlist entries, got %d", len(want), len(cfg.Watchlist))
	}
	for i, sym := range want {
		if cfg.Watchlist[i] != sym {
			t.Errorf("Watchlist[%d] = %s, want %s", i, cfg.Watchlist[i], sym)
		}
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "qa")
	defer os.Unsetenv("ENV")

	if _, err := Load(); err == nil {
		t.Error("Expected validation error for unknown ENV")
	}
}

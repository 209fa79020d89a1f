package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test with default values
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.InspectPort != "8080" {
		t.Errorf("expected default InspectPort=8080, got %s", cfg.InspectPort)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("expected default LogLevel=info, got %s", cfg.LogLevel)
	}

	if cfg.RunHistory != 64 {
		t.Errorf("expected default RunHistory=64, got %d", cfg.RunHistory)
	}
}

func TestLoadWithEnv(t *testing.T) {
	// Test with environment variables
	_ = os.Setenv("INSPECT_PORT", "9000")
	_ = os.Setenv("LOG_LEVEL", "debug")
	_ = os.Setenv("RUN_HISTORY", "16")
	defer func() {
		_ = os.Unsetenv("INSPECT_PORT")
		_ = os.Unsetenv("LOG_LEVEL")
		_ = os.Unsetenv("RUN_HISTORY")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.InspectPort != "9000" {
		t.Errorf("expected InspectPort=9000, got %s", cfg.InspectPort)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", cfg.LogLevel)
	}

	if cfg.RunHistory != 16 {
		t.Errorf("expected RunHistory=16, got %d", cfg.RunHistory)
	}
}

func TestLoadInvalidRunHistory(t *testing.T) {
	_ = os.Setenv("RUN_HISTORY", "zero")
	defer func() { _ = os.Unsetenv("RUN_HISTORY") }()

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric RUN_HISTORY")
	}

	_ = os.Setenv("RUN_HISTORY", "-3")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative RUN_HISTORY")
	}
}

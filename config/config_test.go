package config

import (
	"testing"
)

// Test that LoadConfig returns a non-nil config and respects APPENV=test
func TestLoadConfigAndConnectDB_TestEnv(t *testing.T) {
	// Ensure APPENV=test so ConnectDB uses in-memory sqlite
	t.Setenv("APPENV", "test")

	cfg := LoadConfig()
	if cfg == nil {
		t.Fatalf("expected non-nil config")
	}

	db, err := ConnectDB()
	if err != nil {
		t.Fatalf("ConnectDB failed in test env: %v", err)
	}
	if db == nil {
		t.Fatalf("expected non-nil DB connection")
	}
}

func TestLoadConfig_Singleton(t *testing.T) {
	first := LoadConfig()
	second := LoadConfig()
	if first != second {
		t.Fatalf("expected LoadConfig to return the same instance")
	}
}

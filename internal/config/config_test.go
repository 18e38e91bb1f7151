package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.ChoicesPerHand != 3 {
		t.Fatalf("expected 3 choices per hand, got %d", cfg.ChoicesPerHand)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CHOICES_PER_HAND", "5")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Fatalf("expected port override, got %s", cfg.Port)
	}
	if cfg.ChoicesPerHand != 5 {
		t.Fatalf("expected 5 choices per hand, got %d", cfg.ChoicesPerHand)
	}
	if cfg.DBMaxOpenConns != 10 {
		t.Fatalf("expected invalid override ignored, got %d", cfg.DBMaxOpenConns)
	}
}

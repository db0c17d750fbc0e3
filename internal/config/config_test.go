package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8084" {
		t.Fatalf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.FanoutChannel != "accesos" {
		t.Fatalf("FanoutChannel = %s", cfg.FanoutChannel)
	}
	if !cfg.SweepEnabled {
		t.Fatalf("SweepEnabled should default on")
	}
	if cfg.SweepInterval != 30*time.Minute {
		t.Fatalf("SweepInterval = %s", cfg.SweepInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SWEEP_ENABLED", "false")
	t.Setenv("SWEEP_INTERVAL", "5m")

	cfg := Load()
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("HTTPAddr = %s", cfg.HTTPAddr)
	}
	if cfg.SweepEnabled {
		t.Fatalf("SweepEnabled should be off")
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Fatalf("SweepInterval = %s", cfg.SweepInterval)
	}
}

func TestDurationSecondsFallback(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL_SECONDS", "90")

	cfg := Load()
	if cfg.SweepInterval != 90*time.Second {
		t.Fatalf("SweepInterval = %s", cfg.SweepInterval)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Colony.Max != 16 {
		t.Errorf("colony.max = %d, want 16", cfg.Colony.Max)
	}
	if cfg.Boss.CapThreshold != 50000 {
		t.Errorf("boss.cap_threshold = %v, want 50000", cfg.Boss.CapThreshold)
	}
	if cfg.Chain.Follow != 0.8 {
		t.Errorf("chain.follow = %v, want 0.8", cfg.Chain.Follow)
	}
	if len(cfg.Shockwave.GiantStrengths) != 3 {
		t.Errorf("giant_strengths has %d layers, want 3", len(cfg.Shockwave.GiantStrengths))
	}
	if cfg.Derived.MixTotal < 0.999 || cfg.Derived.MixTotal > 1.001 {
		t.Errorf("mutation branch weights sum to %v, want 1", cfg.Derived.MixTotal)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("colony:\n  max: 4\nboss:\n  cap_threshold: 1000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if cfg.Colony.Max != 4 {
		t.Errorf("colony.max = %d, want 4", cfg.Colony.Max)
	}
	if cfg.Boss.CapThreshold != 1000 {
		t.Errorf("boss.cap_threshold = %v, want 1000", cfg.Boss.CapThreshold)
	}
	// Untouched fields keep their defaults
	if cfg.Colony.SplitStep != 25000 {
		t.Errorf("colony.split_step = %v, want default 25000", cfg.Colony.SplitStep)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero colonies", "colony:\n  max: 0\n"},
		{"single segment", "worm:\n  min_segments: 1\n"},
		{"decay out of range", "shockwave:\n  decay: 1.5\n"},
		{"zero divisor", "economy:\n  cap_divisor: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %q", tt.yaml)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Colony.Max = 9

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Colony.Max != 9 {
		t.Errorf("colony.max = %d after roundtrip, want 9", loaded.Colony.Max)
	}
}

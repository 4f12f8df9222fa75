package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Horizon <= 0 {
		t.Error("horizon should be positive")
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.PID.Gain == 0 {
		t.Error("controller gain should be set")
	}
	if cfg.PID.Lower > cfg.PID.Upper {
		t.Error("output limits should be ordered")
	}
	if cfg.Condenser.Unfix == "" {
		t.Error("condenser free variable should be set")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pid", "aggressive")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.PID.Gain != 5.0 {
		t.Errorf("expected gain 5, got %f", cfg.PID.Gain)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("pid", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "gentle"); cfg != nil {
		t.Error("expected nil for nonexistent case")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("condenser"); len(presets) == 0 {
		t.Error("expected presets for condenser")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent case")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := []byte("horizon: 12\npid:\n  gain: 3.5\ncondenser:\n  unfix: pressure\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Horizon != 12 {
		t.Errorf("expected horizon 12, got %f", cfg.Horizon)
	}
	if cfg.PID.Gain != 3.5 {
		t.Errorf("expected gain 3.5, got %f", cfg.PID.Gain)
	}
	if cfg.Condenser.Unfix != "pressure" {
		t.Errorf("expected unfix pressure, got %s", cfg.Condenser.Unfix)
	}
	// Untouched keys keep defaults.
	if cfg.Steps != DefaultSteps {
		t.Errorf("expected default steps, got %d", cfg.Steps)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.PID.TimeI = 7.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if back.PID.TimeI != 7.5 {
		t.Errorf("expected time_i 7.5, got %f", back.PID.TimeI)
	}
}

func TestSolverOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.SolverOptions()
	if opts["tol"] != DefaultTol {
		t.Errorf("expected tol %g, got %g", DefaultTol, opts["tol"])
	}
	if int(opts["max_iter"]) != DefaultMaxIter {
		t.Errorf("expected max_iter %d, got %g", DefaultMaxIter, opts["max_iter"])
	}
	if _, ok := opts["max_step"]; ok {
		t.Error("unset max_step should be omitted")
	}
}

package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("stock tuning invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(c Config) Config
	}{
		{"negative factor", func(c Config) Config { c.EVEmissionFactor = -0.1; return c }},
		{"cap at 1", func(c Config) Config { c.MaxCombinedReduction = 1; return c }},
		{"cap zero", func(c Config) Config { c.MaxCombinedReduction = 0; return c }},
		{"decay zero", func(c Config) Config { c.DecayConstant = 0; return c }},
		{"weights off", func(c Config) Config { c.PollutionCO2Weight = 0.9; return c }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mod(DefaultConfig()).Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	content := "decay_constant: 8\nev_emission_factor: 0.35\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DecayConstant != 8 {
		t.Errorf("decay_constant = %g, want 8", cfg.DecayConstant)
	}
	if cfg.EVEmissionFactor != 0.35 {
		t.Errorf("ev_emission_factor = %g, want 0.35", cfg.EVEmissionFactor)
	}
	// Untouched fields keep defaults.
	if cfg.MaxCombinedReduction != DefaultConfig().MaxCombinedReduction {
		t.Errorf("unset field lost default: %g", cfg.MaxCombinedReduction)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing tuning file")
	}
}

func TestLoadConfigInvalidTuning(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("decay_constant: -3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid tuning")
	}
}

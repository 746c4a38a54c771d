package sim

import (
	"errors"
	"testing"
)

func TestPolicyValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  PolicyParameters
		wantErr bool
	}{
		{"all zero", PolicyParameters{}, false},
		{"all max", PolicyParameters{EVAdoptionPct: 100, RenewableEnergyPct: 100, TreePlantationRate: MaxTreePlantationRate, IndustrialControlPct: 100}, false},
		{"moderate", PolicyParameters{EVAdoptionPct: 50, RenewableEnergyPct: 40, TreePlantationRate: 1000, IndustrialControlPct: 20}, false},
		{"ev over", PolicyParameters{EVAdoptionPct: 150}, true},
		{"ev negative", PolicyParameters{EVAdoptionPct: -1}, true},
		{"renewable over", PolicyParameters{RenewableEnergyPct: 100.01}, true},
		{"industrial negative", PolicyParameters{IndustrialControlPct: -0.5}, true},
		{"plantation negative", PolicyParameters{TreePlantationRate: -10}, true},
		{"plantation over cap", PolicyParameters{TreePlantationRate: MaxTreePlantationRate + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidPolicy) {
				t.Errorf("expected InvalidPolicy, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBaselineValidate(t *testing.T) {
	t.Parallel()

	valid := testBaseline()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid baseline rejected: %v", err)
	}

	tests := []struct {
		name string
		mod  func(b Baseline) Baseline
	}{
		{"zero emissions", func(b Baseline) Baseline { b.BaseYearEmissionsTons = 0; return b }},
		{"negative emissions", func(b Baseline) Baseline { b.BaseYearEmissionsTons = -1; return b }},
		{"negative vehicles", func(b Baseline) Baseline { b.BaseVehicleCount = -1; return b }},
		{"share over 1", func(b Baseline) Baseline { b.BaseRenewableShare = 1.2; return b }},
		{"share negative", func(b Baseline) Baseline { b.BaseRenewableShare = -0.1; return b }},
		{"negative forest", func(b Baseline) Baseline { b.BaseForestCoverUnits = -5; return b }},
		{"negative industry", func(b Baseline) Baseline { b.BaseIndustrialOutputIdx = -5; return b }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mod(valid).Validate(); !errors.Is(err, ErrInvalidBaseline) {
				t.Errorf("expected InvalidBaseline, got %v", err)
			}
		})
	}
}

func TestPolicyIsZero(t *testing.T) {
	t.Parallel()
	if !(PolicyParameters{}).IsZero() {
		t.Error("empty policy should be zero")
	}
	if (PolicyParameters{TreePlantationRate: 1}).IsZero() {
		t.Error("planting policy should not be zero")
	}
}

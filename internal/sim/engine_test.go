package sim

import (
	"errors"
	"math"
	"testing"
)

func testBaseline() Baseline {
	return Baseline{
		BaseYear:                2026,
		BaseYearEmissionsTons:   1_000_000,
		BaseVehicleCount:        5_000_000,
		BaseRenewableShare:      0.2,
		BaseForestCoverUnits:    50_000,
		BaseIndustrialOutputIdx: 100,
	}
}

func TestProjectDeterministic(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	policy := PolicyParameters{EVAdoptionPct: 37.5, RenewableEnergyPct: 62.1, TreePlantationRate: 1234, IndustrialControlPct: 18}

	a, err := e.Project(testBaseline(), policy, 30)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Project(testBaseline(), policy, 30)
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Points) != len(b.Points) {
		t.Fatalf("point counts differ: %d vs %d", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Errorf("year %d differs between identical runs: %+v vs %+v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestProjectHorizonBounds(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())

	tests := []struct {
		name    string
		horizon int
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 50, false},
		{"zero", 0, true},
		{"negative", -5, true},
		{"too long", 51, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := e.Project(testBaseline(), PolicyParameters{}, tt.horizon)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHorizon) {
					t.Fatalf("expected InvalidHorizon, got %v", err)
				}
				if r != nil {
					t.Error("expected no partial result on error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(r.Points) != tt.horizon {
				t.Errorf("expected %d points, got %d", tt.horizon, len(r.Points))
			}
		})
	}
}

func TestProjectRejectsInvalidPolicy(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())

	r, err := e.Project(testBaseline(), PolicyParameters{EVAdoptionPct: 150}, 10)
	if !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("expected InvalidPolicy, got %v", err)
	}
	if r != nil {
		t.Error("expected no partial result for invalid policy")
	}
}

func TestProjectZeroPolicyReproducesBaseline(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	baseline := testBaseline()

	r, err := e.Project(baseline, PolicyParameters{}, 10)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range r.Points {
		if p.CO2EmissionsTons != baseline.BaseYearEmissionsTons {
			t.Errorf("year %d: zero policy changed emissions: %g", p.Year, p.CO2EmissionsTons)
		}
		if p.PollutionIndex != 100 {
			t.Errorf("year %d: zero policy pollution index = %g, want 100", p.Year, p.PollutionIndex)
		}
		if p.TreeCoverUnits != baseline.BaseForestCoverUnits {
			t.Errorf("year %d: zero policy changed tree cover: %g", p.Year, p.TreeCoverUnits)
		}
	}
}

// The worked scenario from the design discussion: moderate policy over a
// 10-year horizon must decay strictly toward zero without reaching it,
// while planting accumulates linearly.
func TestProjectModerateScenario(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	policy := PolicyParameters{
		EVAdoptionPct:        50,
		RenewableEnergyPct:   40,
		TreePlantationRate:   1000,
		IndustrialControlPct: 20,
	}

	r, err := e.Project(testBaseline(), policy, 10)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Points[0].CO2EmissionsTons; got != 1_000_000 {
		t.Errorf("year 0 emissions = %g, want baseline 1000000", got)
	}
	for i := 1; i < len(r.Points); i++ {
		prev, cur := r.Points[i-1].CO2EmissionsTons, r.Points[i].CO2EmissionsTons
		if cur >= prev {
			t.Errorf("year %d: emissions not strictly decreasing (%g -> %g)", i, prev, cur)
		}
		if cur <= 0 {
			t.Errorf("year %d: emissions reached zero", i)
		}
	}

	if got := r.Points[9].TreeCoverUnits; got != 59_000 {
		t.Errorf("year 9 tree cover = %g, want 59000", got)
	}
}

func TestProjectYearsStrictlyIncreasing(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())

	r, err := e.Project(testBaseline(), PolicyParameters{EVAdoptionPct: 10}, 25)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range r.Points {
		if p.Year != i {
			t.Errorf("point %d has year %d", i, p.Year)
		}
	}
}

// More policy effort never increases emissions.
func TestProjectMonotoneInPolicyEffort(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	base := PolicyParameters{EVAdoptionPct: 20, RenewableEnergyPct: 30, IndustrialControlPct: 10}

	bump := []struct {
		name string
		mod  func(p PolicyParameters) PolicyParameters
	}{
		{"ev_adoption", func(p PolicyParameters) PolicyParameters { p.EVAdoptionPct += 30; return p }},
		{"renewable_energy", func(p PolicyParameters) PolicyParameters { p.RenewableEnergyPct += 30; return p }},
		{"industrial_controls", func(p PolicyParameters) PolicyParameters { p.IndustrialControlPct += 30; return p }},
	}

	for _, tt := range bump {
		t.Run(tt.name, func(t *testing.T) {
			lo, err := e.Project(testBaseline(), base, 20)
			if err != nil {
				t.Fatal(err)
			}
			hi, err := e.Project(testBaseline(), tt.mod(base), 20)
			if err != nil {
				t.Fatal(err)
			}
			for i := range lo.Points {
				if hi.Points[i].CO2EmissionsTons > lo.Points[i].CO2EmissionsTons {
					t.Errorf("year %d: more %s increased emissions (%g > %g)",
						i, tt.name, hi.Points[i].CO2EmissionsTons, lo.Points[i].CO2EmissionsTons)
				}
			}
		})
	}
}

func TestProjectRenewableBelowBaselineMixEarnsNoCredit(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	baseline := testBaseline() // 20% renewable already

	below, err := e.Project(baseline, PolicyParameters{RenewableEnergyPct: 10}, 10)
	if err != nil {
		t.Fatal(err)
	}
	none, err := e.Project(baseline, PolicyParameters{}, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range below.Points {
		if below.Points[i].CO2EmissionsTons != none.Points[i].CO2EmissionsTons {
			t.Errorf("year %d: sub-baseline renewable policy was credited", i)
		}
	}
}

func TestProjectTreeCoverNonDecreasing(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())

	for _, rate := range []float64{0, 500, 10_000} {
		r, err := e.Project(testBaseline(), PolicyParameters{TreePlantationRate: rate}, 15)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(r.Points); i++ {
			if r.Points[i].TreeCoverUnits < r.Points[i-1].TreeCoverUnits {
				t.Errorf("rate %g year %d: tree cover decreased", rate, i)
			}
		}
	}
}

func TestProjectAllValuesNonNegative(t *testing.T) {
	t.Parallel()
	// Push the reduction to the cap; nothing may go below zero.
	e := NewEngine(DefaultConfig())
	policy := PolicyParameters{EVAdoptionPct: 100, RenewableEnergyPct: 100, IndustrialControlPct: 100}

	r, err := e.Project(testBaseline(), policy, 50)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range r.Points {
		if p.CO2EmissionsTons < 0 || p.PollutionIndex < 0 || p.TreeCoverUnits < 0 {
			t.Errorf("year %d: negative metric: %+v", p.Year, p)
		}
	}
}

func TestCombinedReductionCapped(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.EVEmissionFactor = 0.9
	cfg.RenewableEmissionFactor = 0.9
	cfg.IndustrialEmissionFactor = 0.9
	e := NewEngine(cfg)

	got := e.combinedReduction(testBaseline(), PolicyParameters{EVAdoptionPct: 100, RenewableEnergyPct: 100, IndustrialControlPct: 100})
	if got != cfg.MaxCombinedReduction {
		t.Errorf("combined reduction = %g, want cap %g", got, cfg.MaxCombinedReduction)
	}
}

func TestProjectRejectsInvalidBaseline(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())

	baseline := testBaseline()
	baseline.BaseYearEmissionsTons = 0

	_, err := e.Project(baseline, PolicyParameters{}, 10)
	if !errors.Is(err, ErrInvalidBaseline) {
		t.Fatalf("expected InvalidBaseline, got %v", err)
	}
}

func TestPollutionIndexMonotoneInCO2(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	baseline := testBaseline()

	r, err := e.Project(baseline, PolicyParameters{EVAdoptionPct: 80, RenewableEnergyPct: 70, IndustrialControlPct: 60}, 20)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(r.Points); i++ {
		if r.Points[i].PollutionIndex > r.Points[i-1].PollutionIndex {
			t.Errorf("year %d: pollution index rose while emissions fell", i)
		}
	}
	if r.Points[0].PollutionIndex > 100 {
		t.Errorf("year 0 pollution index = %g, want <= 100", r.Points[0].PollutionIndex)
	}
}

func TestPollutionIndexNoIndustrialBaseline(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	baseline := testBaseline()
	baseline.BaseIndustrialOutputIdx = 0

	r, err := e.Project(baseline, PolicyParameters{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range r.Points {
		if p.PollutionIndex != 100 {
			t.Errorf("year %d: index = %g, want 100 with no policy", p.Year, p.PollutionIndex)
		}
	}
}

func TestFingerprintStability(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())
	policy := PolicyParameters{EVAdoptionPct: 50}

	a := e.Fingerprint(testBaseline(), policy, 10)
	b := e.Fingerprint(testBaseline(), policy, 10)
	if a != b {
		t.Error("fingerprint not stable for identical inputs")
	}

	if c := e.Fingerprint(testBaseline(), policy, 11); c == a {
		t.Error("fingerprint ignored horizon change")
	}

	other := NewEngine(func() Config { c := DefaultConfig(); c.DecayConstant = 7; return c }())
	if d := other.Fingerprint(testBaseline(), policy, 10); d == a {
		t.Error("fingerprint ignored tuning change")
	}
}

func TestCumulativeAvoidedCO2(t *testing.T) {
	t.Parallel()
	e := NewEngine(DefaultConfig())

	zero, err := e.Project(testBaseline(), PolicyParameters{}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := zero.CumulativeAvoidedCO2(); got != 0 {
		t.Errorf("zero policy avoided %g tons, want 0", got)
	}

	some, err := e.Project(testBaseline(), PolicyParameters{EVAdoptionPct: 50}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := some.CumulativeAvoidedCO2(); got <= 0 {
		t.Errorf("active policy avoided %g tons, want > 0", got)
	}
	if math.IsNaN(some.CumulativeCO2()) {
		t.Error("cumulative emissions is NaN")
	}
}

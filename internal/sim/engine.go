package sim

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
)

// MinHorizonYears and MaxHorizonYears bound the projection horizon. Fifty
// years is already well past the useful range of an illustrative model.
const (
	MinHorizonYears = 1
	MaxHorizonYears = 50
)

// ProjectionPoint is one projected year. Year is a 0-based offset from the
// baseline year.
type ProjectionPoint struct {
	Year             int     `json:"year"`
	CO2EmissionsTons float64 `json:"co2_emissions_tons"`
	PollutionIndex   float64 `json:"pollution_index"`
	TreeCoverUnits   float64 `json:"tree_cover_units"`
}

// ProjectionResult owns an ordered year series plus the validated inputs it
// was derived from. It is immutable once produced.
type ProjectionResult struct {
	Baseline     Baseline          `json:"baseline"`
	Policy       PolicyParameters  `json:"policy"`
	HorizonYears int               `json:"horizon_years"`
	Points       []ProjectionPoint `json:"points"`
}

// CumulativeCO2 sums emissions over the whole horizon.
func (r *ProjectionResult) CumulativeCO2() float64 {
	var total float64
	for _, p := range r.Points {
		total += p.CO2EmissionsTons
	}
	return total
}

// CumulativeAvoidedCO2 sums the gap between the flat business-as-usual
// trajectory and the projected one. Non-negative for any valid policy.
func (r *ProjectionResult) CumulativeAvoidedCO2() float64 {
	var total float64
	for _, p := range r.Points {
		if avoided := r.Baseline.BaseYearEmissionsTons - p.CO2EmissionsTons; avoided > 0 {
			total += avoided
		}
	}
	return total
}

// Engine computes projections. It is stateless: every call is a pure
// function of its inputs and the fixed tuning, so identical inputs always
// reproduce identical output. That determinism is what makes external
// result caching correct.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// combinedReduction derives the yearly reduction fraction from the policy.
// The renewable term is floored at zero: a policy cannot be credited for
// being below the current baseline mix.
func (e *Engine) combinedReduction(baseline Baseline, policy PolicyParameters) float64 {
	evReduction := policy.EVAdoptionPct / 100 * e.cfg.EVEmissionFactor
	renewableReduction := (policy.RenewableEnergyPct/100 - baseline.BaseRenewableShare) * e.cfg.RenewableEmissionFactor
	if renewableReduction < 0 {
		renewableReduction = 0
	}
	industrialReduction := policy.IndustrialControlPct / 100 * e.cfg.IndustrialEmissionFactor

	combined := evReduction + renewableReduction + industrialReduction
	if combined > e.cfg.MaxCombinedReduction {
		combined = e.cfg.MaxCombinedReduction
	}
	return combined
}

// Project runs the policy against the baseline over horizonYears and
// returns the year-by-year series. All-or-nothing: no partial result is
// ever returned.
func (e *Engine) Project(baseline Baseline, policy PolicyParameters, horizonYears int) (*ProjectionResult, error) {
	if horizonYears < MinHorizonYears || horizonYears > MaxHorizonYears {
		return nil, errorf(KindInvalidHorizon, "horizon must be in [%d,%d] years, got %d", MinHorizonYears, MaxHorizonYears, horizonYears)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if err := baseline.Validate(); err != nil {
		return nil, err
	}

	combined := e.combinedReduction(baseline, policy)
	industrialReduction := policy.IndustrialControlPct / 100 * e.cfg.IndustrialEmissionFactor

	points := make([]ProjectionPoint, horizonYears)
	for t := 0; t < horizonYears; t++ {
		// Exponential approach rather than a step: adoption ramps over
		// time, with DecayConstant controlling the ramp speed.
		ramp := float64(t) / e.cfg.DecayConstant
		co2 := baseline.BaseYearEmissionsTons * math.Pow(1-combined, ramp)
		trees := baseline.BaseForestCoverUnits + policy.TreePlantationRate*float64(t)

		points[t] = ProjectionPoint{
			Year:             t,
			CO2EmissionsTons: floorZero(co2),
			PollutionIndex:   floorZero(e.pollutionIndex(baseline, co2, industrialReduction, ramp)),
			TreeCoverUnits:   floorZero(trees),
		}
	}

	return &ProjectionResult{
		Baseline:     baseline,
		Policy:       policy,
		HorizonYears: horizonYears,
		Points:       points,
	}, nil
}

// pollutionIndex blends the CO2 ratio with the industrial load ratio,
// normalized so that the no-policy baseline year maps to 100. When the
// baseline has no industrial output the whole weight falls on CO2.
func (e *Engine) pollutionIndex(baseline Baseline, co2 float64, industrialReduction, ramp float64) float64 {
	co2Ratio := co2 / baseline.BaseYearEmissionsTons

	if baseline.BaseIndustrialOutputIdx <= 0 {
		return 100 * co2Ratio
	}

	industrialRatio := math.Pow(1-industrialReduction, ramp)
	return 100 * (e.cfg.PollutionCO2Weight*co2Ratio + e.cfg.PollutionIndustrialWeight*industrialRatio)
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// projectionKey is the canonical serialization hashed by Fingerprint.
type projectionKey struct {
	Baseline Baseline         `json:"baseline"`
	Policy   PolicyParameters `json:"policy"`
	Horizon  int              `json:"horizon"`
	Config   Config           `json:"config"`
}

// Fingerprint returns a stable content hash of a projection's inputs,
// including the engine tuning. Two calls with the same fingerprint are
// guaranteed to produce identical output, so the fingerprint is a safe
// cache key.
func (e *Engine) Fingerprint(baseline Baseline, policy PolicyParameters, horizonYears int) string {
	key := projectionKey{Baseline: baseline, Policy: policy, Horizon: horizonYears, Config: e.cfg}
	data, _ := json.Marshal(key)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

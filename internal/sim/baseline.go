package sim

// Baseline holds the starting-state constants a projection is anchored to.
// It is an immutable value: loaded once per run and passed into every call,
// so concurrent requests with different baselines never interfere.
type Baseline struct {
	BaseYear                 int     `json:"base_year" yaml:"base_year"`
	BaseYearEmissionsTons    float64 `json:"base_year_emissions_tons" yaml:"base_year_emissions_tons"`
	BaseVehicleCount         int64   `json:"base_vehicle_count" yaml:"base_vehicle_count"`
	BaseRenewableShare       float64 `json:"base_renewable_share" yaml:"base_renewable_share"`
	BaseForestCoverUnits     float64 `json:"base_forest_cover_units" yaml:"base_forest_cover_units"`
	BaseIndustrialOutputIdx  float64 `json:"base_industrial_output_index" yaml:"base_industrial_output_index"`
}

// Validate checks the baseline for plausibility. Garbage constants are
// rejected here rather than propagated into the engine.
func (b Baseline) Validate() error {
	if b.BaseYearEmissionsTons <= 0 {
		return errorf(KindInvalidBaseline, "base year emissions must be > 0, got %g", b.BaseYearEmissionsTons)
	}
	if b.BaseVehicleCount < 0 {
		return errorf(KindInvalidBaseline, "vehicle count must be >= 0, got %d", b.BaseVehicleCount)
	}
	if b.BaseRenewableShare < 0 || b.BaseRenewableShare > 1 {
		return errorf(KindInvalidBaseline, "renewable share must be in [0,1], got %g", b.BaseRenewableShare)
	}
	if b.BaseForestCoverUnits < 0 {
		return errorf(KindInvalidBaseline, "forest cover must be >= 0, got %g", b.BaseForestCoverUnits)
	}
	if b.BaseIndustrialOutputIdx < 0 {
		return errorf(KindInvalidBaseline, "industrial output index must be >= 0, got %g", b.BaseIndustrialOutputIdx)
	}
	return nil
}

// Equal reports whether two baselines describe the same starting state.
// Comparisons across different baselines are meaningless, so the
// comparator rejects them.
func (b Baseline) Equal(other Baseline) bool {
	return b == other
}

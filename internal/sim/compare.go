package sim

import "sort"

// BAUScenarioName names the implicit business-as-usual run every scenario
// is diffed against.
const BAUScenarioName = "bau"

// NamedResult pairs a scenario name with its projection.
type NamedResult struct {
	Name   string            `json:"name"`
	Result *ProjectionResult `json:"result"`
}

// DeltaPoint is the per-year metric difference between two scenarios
// (To minus From).
type DeltaPoint struct {
	Year           int     `json:"year"`
	CO2Delta       float64 `json:"co2_delta"`
	PollutionDelta float64 `json:"pollution_delta"`
	TreeCoverDelta float64 `json:"tree_cover_delta"`
}

// ScenarioDelta holds the year-aligned differences of one scenario pair.
type ScenarioDelta struct {
	From   string       `json:"from"`
	To     string       `json:"to"`
	Points []DeltaPoint `json:"points"`
}

// ComparisonResult owns a set of named projections sharing one baseline
// and horizon, pairwise deltas, and a ranking by cumulative emissions.
// Scenario order preserves input order.
type ComparisonResult struct {
	Baseline     Baseline        `json:"baseline"`
	HorizonYears int             `json:"horizon_years"`
	Scenarios    []NamedResult   `json:"scenarios"`
	Deltas       []ScenarioDelta `json:"deltas"`

	// Ranking lists scenario names best-first by lowest cumulative
	// emissions, ties broken by input order.
	Ranking []string `json:"ranking"`
}

// Compare projects every named policy against the same baseline and
// horizon and assembles the aligned, diffable result set. Fewer than two
// scenarios is rejected: there is nothing to compare.
func (e *Engine) Compare(baseline Baseline, policies []NamedPolicy, horizonYears int) (*ComparisonResult, error) {
	if len(policies) < 2 {
		return nil, errorf(KindEmptyScenarioSet, "need at least 2 scenarios, got %d", len(policies))
	}

	results := make([]NamedResult, 0, len(policies))
	for _, np := range policies {
		r, err := e.Project(baseline, np.Policy, horizonYears)
		if err != nil {
			return nil, err
		}
		results = append(results, NamedResult{Name: np.Name, Result: r})
	}

	return buildComparison(results)
}

// NewComparison assembles a ComparisonResult from precomputed projections.
// All results must share an identical baseline and horizon length;
// mismatched inputs fail rather than producing a misleading diff.
func NewComparison(results []NamedResult) (*ComparisonResult, error) {
	if len(results) < 2 {
		return nil, errorf(KindEmptyScenarioSet, "need at least 2 projections, got %d", len(results))
	}
	return buildComparison(results)
}

func buildComparison(results []NamedResult) (*ComparisonResult, error) {
	first := results[0].Result
	for _, nr := range results[1:] {
		if nr.Result.HorizonYears != first.HorizonYears || len(nr.Result.Points) != len(first.Points) {
			return nil, errorf(KindMismatchedHorizon, "scenario %q has horizon %d, want %d", nr.Name, nr.Result.HorizonYears, first.HorizonYears)
		}
		if !nr.Result.Baseline.Equal(first.Baseline) {
			return nil, errorf(KindMismatchedBaseline, "scenario %q was projected from a different baseline", nr.Name)
		}
	}

	cmp := &ComparisonResult{
		Baseline:     first.Baseline,
		HorizonYears: first.HorizonYears,
		Scenarios:    results,
	}

	// Every scenario against business-as-usual, then every ordered pair.
	bau := bauSeries(first.Baseline, first.HorizonYears)
	for _, nr := range results {
		cmp.Deltas = append(cmp.Deltas, diffSeries(BAUScenarioName, nr.Name, bau, nr.Result.Points))
	}
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			cmp.Deltas = append(cmp.Deltas, diffSeries(results[i].Name, results[j].Name, results[i].Result.Points, results[j].Result.Points))
		}
	}

	cmp.Ranking = rankByCumulativeCO2(results)
	return cmp, nil
}

// bauSeries is the trajectory of the all-zero policy: flat emissions,
// index pinned at 100, no planting. Derivable without running the engine.
func bauSeries(baseline Baseline, horizonYears int) []ProjectionPoint {
	points := make([]ProjectionPoint, horizonYears)
	for t := range points {
		points[t] = ProjectionPoint{
			Year:             t,
			CO2EmissionsTons: baseline.BaseYearEmissionsTons,
			PollutionIndex:   100,
			TreeCoverUnits:   baseline.BaseForestCoverUnits,
		}
	}
	return points
}

func diffSeries(from, to string, a, b []ProjectionPoint) ScenarioDelta {
	delta := ScenarioDelta{From: from, To: to, Points: make([]DeltaPoint, len(a))}
	for t := range a {
		delta.Points[t] = DeltaPoint{
			Year:           a[t].Year,
			CO2Delta:       b[t].CO2EmissionsTons - a[t].CO2EmissionsTons,
			PollutionDelta: b[t].PollutionIndex - a[t].PollutionIndex,
			TreeCoverDelta: b[t].TreeCoverUnits - a[t].TreeCoverUnits,
		}
	}
	return delta
}

func rankByCumulativeCO2(results []NamedResult) []string {
	type ranked struct {
		name  string
		total float64
		order int
	}
	rs := make([]ranked, len(results))
	for i, nr := range results {
		rs[i] = ranked{name: nr.Name, total: nr.Result.CumulativeCO2(), order: i}
	}
	// Stable sort keeps input order for equal cumulative emissions.
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].total < rs[j].total
	})

	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.name
	}
	return names
}

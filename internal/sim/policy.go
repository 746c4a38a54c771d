package sim

// MaxTreePlantationRate caps the yearly plantation rate (area units per
// year). Anything above this is a data-entry error, not an ambitious
// policy.
const MaxTreePlantationRate = 1_000_000

// PolicyParameters describes one scenario's inputs. All percentage fields
// are 0-100 levers matching the original dashboard sliders.
type PolicyParameters struct {
	EVAdoptionPct        float64 `json:"ev_adoption"`
	RenewableEnergyPct   float64 `json:"renewable_energy"`
	TreePlantationRate   float64 `json:"tree_plantation_rate"`
	IndustrialControlPct float64 `json:"industrial_controls"`
}

// Validate rejects out-of-range parameters. Values are never clamped:
// silent clamping would hide user error and corrupt scenario comparisons.
func (p PolicyParameters) Validate() error {
	if err := checkPct("ev_adoption", p.EVAdoptionPct); err != nil {
		return err
	}
	if err := checkPct("renewable_energy", p.RenewableEnergyPct); err != nil {
		return err
	}
	if err := checkPct("industrial_controls", p.IndustrialControlPct); err != nil {
		return err
	}
	if p.TreePlantationRate < 0 || p.TreePlantationRate > MaxTreePlantationRate {
		return errorf(KindInvalidPolicy, "tree_plantation_rate must be in [0,%d], got %g", MaxTreePlantationRate, p.TreePlantationRate)
	}
	return nil
}

// IsZero reports whether the policy applies no levers at all, i.e. the
// business-as-usual scenario.
func (p PolicyParameters) IsZero() bool {
	return p == PolicyParameters{}
}

func checkPct(field string, v float64) error {
	if v < 0 || v > 100 {
		return errorf(KindInvalidPolicy, "%s must be in [0,100], got %g", field, v)
	}
	return nil
}

// NamedPolicy pairs a scenario name with its parameters for comparison
// runs. Input order is preserved in comparison output.
type NamedPolicy struct {
	Name   string           `json:"name"`
	Policy PolicyParameters `json:"policy"`
}

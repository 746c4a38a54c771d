package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable constants of the projection model. The exact
// values are policy of this deployment, not physics, so they live in
// configuration rather than hard-coded in the engine. Zero values are
// replaced by defaults at load time.
type Config struct {
	// EVEmissionFactor scales full EV adoption into a yearly emission
	// reduction fraction (transport share of national emissions).
	EVEmissionFactor float64 `yaml:"ev_emission_factor"`

	// RenewableEmissionFactor scales renewable grid share gained over the
	// baseline mix. A policy below the current mix earns no credit.
	RenewableEmissionFactor float64 `yaml:"renewable_emission_factor"`

	// IndustrialEmissionFactor scales industrial emission controls.
	IndustrialEmissionFactor float64 `yaml:"industrial_emission_factor"`

	// MaxCombinedReduction caps the summed reduction fraction so emissions
	// never go negative and credit never compounds unrealistically.
	MaxCombinedReduction float64 `yaml:"max_combined_reduction"`

	// DecayConstant models adoption ramp speed in years. Real policies ramp
	// over time rather than jumping instantly.
	DecayConstant float64 `yaml:"decay_constant"`

	// PollutionCO2Weight and PollutionIndustrialWeight blend the two
	// pollution index terms. They must sum to 1.
	PollutionCO2Weight        float64 `yaml:"pollution_co2_weight"`
	PollutionIndustrialWeight float64 `yaml:"pollution_industrial_weight"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		EVEmissionFactor:          0.30,
		RenewableEmissionFactor:   0.40,
		IndustrialEmissionFactor:  0.25,
		MaxCombinedReduction:      0.95,
		DecayConstant:             5.0,
		PollutionCO2Weight:        0.7,
		PollutionIndustrialWeight: 0.3,
	}
}

// LoadConfig reads a YAML tuning file, filling unset fields from defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read tuning file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse tuning file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects tunings that would break the engine's guarantees.
func (c Config) Validate() error {
	if c.EVEmissionFactor < 0 || c.RenewableEmissionFactor < 0 || c.IndustrialEmissionFactor < 0 {
		return fmt.Errorf("emission factors must be >= 0")
	}
	if c.MaxCombinedReduction <= 0 || c.MaxCombinedReduction >= 1 {
		return fmt.Errorf("max_combined_reduction must be in (0,1), got %g", c.MaxCombinedReduction)
	}
	if c.DecayConstant <= 0 {
		return fmt.Errorf("decay_constant must be > 0, got %g", c.DecayConstant)
	}
	weightSum := c.PollutionCO2Weight + c.PollutionIndustrialWeight
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("pollution weights must sum to 1, got %g", weightSum)
	}
	return nil
}

// Package baseline supplies the starting-state constants the projection
// engine anchors to. Providers only read; the engine never mutates a
// Baseline.
package baseline

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

// Provider loads a Baseline from some read-only source.
type Provider interface {
	Load() (sim.Baseline, error)
}

// Default returns the built-in national baseline for the 2026 run year.
func Default() sim.Baseline {
	return sim.Baseline{
		BaseYear:                2026,
		BaseYearEmissionsTons:   1_000_000,
		BaseVehicleCount:        5_000_000,
		BaseRenewableShare:      0.2,
		BaseForestCoverUnits:    50_000,
		BaseIndustrialOutputIdx: 100,
	}
}

// StaticProvider serves a fixed baseline, typically Default().
type StaticProvider struct {
	Baseline sim.Baseline
}

func NewStaticProvider(b sim.Baseline) *StaticProvider {
	return &StaticProvider{Baseline: b}
}

func (p *StaticProvider) Load() (sim.Baseline, error) {
	if err := p.Baseline.Validate(); err != nil {
		return sim.Baseline{}, err
	}
	return p.Baseline, nil
}

// FileProvider reads a baseline from a YAML file, for deployments with
// region-specific constants.
type FileProvider struct {
	Path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (p *FileProvider) Load() (sim.Baseline, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return sim.Baseline{}, &sim.Error{Kind: sim.KindDataUnavailable, Message: "read baseline file: " + err.Error()}
	}

	var b sim.Baseline
	if err := yaml.Unmarshal(data, &b); err != nil {
		return sim.Baseline{}, &sim.Error{Kind: sim.KindDataUnavailable, Message: "parse baseline file: " + err.Error()}
	}
	if err := b.Validate(); err != nil {
		return sim.Baseline{}, err
	}
	return b, nil
}
